package middleware

import (
	"context"
	"net/http"

	"mucevher-backend/internal/domain"

	"golang.org/x/text/language"
)

var localeMatcher = language.NewMatcher([]language.Tag{language.Turkish, language.English})

var matchedLocales = []domain.Locale{domain.LocaleTR, domain.LocaleEN}

// LocaleMiddleware negotiates the display locale: an explicit ?locale= wins,
// then Accept-Language, then the default.
func LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := negotiateLocale(r)
		w.Header().Set("Content-Language", string(locale))
		ctx := context.WithValue(r.Context(), domain.LocaleContextKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func negotiateLocale(r *http.Request) domain.Locale {
	if l, ok := domain.ParseLocale(r.URL.Query().Get("locale")); ok {
		return l
	}

	header := r.Header.Get("Accept-Language")
	if header == "" {
		return domain.DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return domain.DefaultLocale
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return domain.DefaultLocale
	}
	return matchedLocales[idx]
}
