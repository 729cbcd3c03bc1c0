package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const sessionCookieName = "session"

// SessionConfig is the cookie policy: 30-minute absolute lifetime,
// HTTP-only, SameSite=Lax, Secure outside development.
type SessionConfig struct {
	TTL           time.Duration
	SecureCookies bool
}

// EnsureSession issues an anonymous session cookie when the request does not
// carry one. Nothing reads the session yet, but the cookie policy is part of
// the external contract.
func EnsureSession(config SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(sessionCookieName); err != nil {
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    uuid.NewString(),
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(config.TTL.Seconds()),
				})
			}
			next.ServeHTTP(w, r)
		})
	}
}
