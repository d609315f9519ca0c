package middleware

import (
	"context"
	"net/http"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/utils"
)

// NewSessionMiddleware resolves the anonymous storefront session. A missing
// or invalid token starts a fresh session; the new token is returned both as
// a cookie and in the response header for non-browser clients.
func NewSessionMiddleware(signer *utils.SessionSigner, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if token, err := utils.ExtractSessionToken(r); err == nil {
				if id, err := signer.Parse(token); err == nil {
					sessionID = id
				} else {
					logger.WithContext(r.Context()).Debug().Err(err).Msg("Discarding invalid session token")
				}
			}

			if sessionID == "" {
				sessionID = utils.GenerateSessionID()
				token, err := signer.Issue(sessionID)
				if err != nil {
					logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to issue session token")
					utils.WriteError(w, http.StatusInternalServerError, "Failed to start session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     utils.SessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(signer.TTL().Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(utils.SessionHeaderName, token)
			}

			sessionLogger := logger.WithSessionID(*logger.WithContext(r.Context()), sessionID)
			ctx := logger.NewContext(r.Context(), &sessionLogger)
			ctx = context.WithValue(ctx, domain.SessionContextKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
