package middleware

import (
	"net/http"

	"movie-review/internal/data/repository"
	"movie-review/internal/session"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// LoadSession attaches a request-scoped session to the context. A signed
// cookie naming a live server-side session makes it authenticated; anything
// else (no cookie, bad signature, revoked or expired row) leaves it anonymous.
func LoadSession(manager *session.Manager, sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.New()
			sess.FlashNow(manager.ReadFlash(w, r))

			token, ok, err := manager.ReadToken(r)
			if err != nil {
				logger.Warn("Rejected session cookie", zap.Error(err))
				manager.Expire(w)
			}

			if ok {
				row, err := sessionRepo.FindValidSession(r.Context(), token)
				switch {
				case err != nil:
					logger.Error("Failed to validate session", zap.Error(err))
				case row == nil:
					logger.Debug("Session expired or revoked")
					manager.Expire(w)
				default:
					sess.Restore(row.UserID, row.Token)
				}
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

// RequireLogin redirects anonymous visitors to loginPath.
func RequireLogin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.FromContext(r.Context()).IsLoggedIn() {
				utils.Redirect(w, r, loginPath)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthenticated sends logged-in visitors to path, e.g. away from
// the login and registration forms.
func RedirectIfAuthenticated(path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.FromContext(r.Context()).IsLoggedIn() {
				utils.Redirect(w, r, path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
