package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/keijiban-dev/keijiban/internal/middleware"
	"github.com/keijiban-dev/keijiban/internal/middleware/metrics"
	rl "github.com/keijiban-dev/keijiban/internal/middleware/ratelimiter"
	"github.com/keijiban-dev/keijiban/internal/setup"
)

// New creates and configures the mux router with all the routes.
// Rate limits are per client IP and per route: thread creation is the
// strictest, posting the loosest.
func New(deps *setup.Dependencies) *mux.Router {
	cfg := deps.Config
	h := deps.Handler

	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)
	r.Use(mw.SecurityHeaders(cfg.Server.SecureCookies()))
	r.Use(metrics.Middleware)

	// Probes and metrics sit outside the session/CSRF chain
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	pages := r.NewRoute().Subrouter()
	pages.Use(mw.EnsureSession(mw.SessionConfig{
		TTL:           time.Duration(cfg.Session.TTL) * time.Minute,
		SecureCookies: cfg.Server.SecureCookies(),
	}))
	pages.Use(mw.GenerateCSRFToken(mw.CSRFConfig{SecureCookies: cfg.Server.SecureCookies()}))
	pages.Use(mw.ValidateCSRFToken())

	pages.HandleFunc("/", h.ListThreads).Methods("GET")
	pages.Handle("/", mw.RateLimit(rl.PerMinute(cfg.Limits.CreateThread), mw.GetIP)(http.HandlerFunc(h.CreateThread))).Methods("POST")

	pages.HandleFunc("/{thread:[0-9]+}", h.GetThread).Methods("GET")
	pages.Handle("/{thread:[0-9]+}", mw.RateLimit(rl.PerMinute(cfg.Limits.CreatePost), mw.GetIP)(http.HandlerFunc(h.CreatePost))).Methods("POST")

	pages.HandleFunc("/{thread:[0-9]+}/replyto-{post:[0-9]+}", h.GetReplyContext).Methods("GET")
	pages.Handle("/{thread:[0-9]+}/replyto-{post:[0-9]+}", mw.RateLimit(rl.PerMinute(cfg.Limits.CreateReply), mw.GetIP)(http.HandlerFunc(h.CreateReply))).Methods("POST")

	return r
}
