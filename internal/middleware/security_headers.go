package middleware

import "net/http"

// contentSecurityPolicy matches what the board serves: self-hosted pages with
// inline styles and data: images allowed, nothing framed.
const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; frame-ancestors 'none'"

// SecurityHeaders attaches the static response security headers.
// isHTTPS: if true, adds Strict-Transport-Security header
func SecurityHeaders(isHTTPS bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			// Clickjacking protection
			headers.Set("X-Frame-Options", "DENY")

			// Prevent MIME type sniffing
			headers.Set("X-Content-Type-Options", "nosniff")

			// Legacy XSS protection (older browsers)
			headers.Set("X-XSS-Protection", "1; mode=block")

			// Referrer policy for privacy
			headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			headers.Set("Content-Security-Policy", contentSecurityPolicy)

			// HSTS - only when using HTTPS
			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
