package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/keijiban-dev/keijiban/internal/middleware/ratelimiter"
)

// RateLimit rejects over-limit requests with 429. Identity defaults to the
// client IP via GetIP.
func RateLimit(rl *ratelimiter.KeyedRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the real client IP from RemoteAddr
// Does NOT trust X-Real-IP or X-Forwarded-For headers (no reverse proxy)
func GetIP(r *http.Request) (string, error) {
	// Only trust RemoteAddr - can't be spoofed (comes from TCP connection)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}
