package domain

import "context"

type ContextKey string

const (
	SessionContextKey ContextKey = "session"
	LocaleContextKey  ContextKey = "locale"
)

// SessionFromContext returns the anonymous storefront session ID.
func SessionFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionContextKey).(string)
	return id, ok && id != ""
}

// LocaleFromContext returns the negotiated locale or the default.
func LocaleFromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(LocaleContextKey).(Locale); ok {
		return l
	}
	return DefaultLocale
}
