package middleware

import (
	"context"
	"net/http"

	"github.com/keijiban-dev/keijiban/internal/csrf"
	"github.com/keijiban-dev/keijiban/internal/logger"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
)

type csrfContextKey string

const csrfTokenContextKey csrfContextKey = "csrf_token"

// CSRFConfig holds CSRF middleware configuration
type CSRFConfig struct {
	SecureCookies bool // Use Secure flag on cookies (requires HTTPS)
}

// GenerateCSRFToken middleware generates and sets CSRF token cookie
func GenerateCSRFToken(config CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(csrfCookieName)
			var token string

			if err != nil || cookie.Value == "" {
				token, err = csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   86400, // 24 hours
				})
			} else {
				token = cookie.Value
			}

			// Store token in context for template rendering
			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateCSRFToken middleware validates CSRF token from form submission.
// Rejections are a generic 400, no internal detail leaks.
func ValidateCSRFToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only unsafe methods carry a token
			if r.Method != http.MethodPost && r.Method != http.MethodPut &&
				r.Method != http.MethodPatch && r.Method != http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing or invalid", http.StatusBadRequest)
				return
			}

			if r.Form == nil {
				if err := r.ParseForm(); err != nil {
					logger.Log.Error("failed to parse form", "error", err)
					http.Error(w, "Invalid form data", http.StatusBadRequest)
					return
				}
			}

			if !csrf.ValidateToken(cookie.Value, r.FormValue(csrfFormField)) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token missing or invalid", http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetCSRFTokenFromContext retrieves CSRF token from request context
func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}
