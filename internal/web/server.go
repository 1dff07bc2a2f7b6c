// Package web provides the HTTP server and handlers for the map set
// application: set CRUD, country assignment, YAML import/export and the
// change-event stream the map UI listens on.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mapknit/mapknit/internal/config"
	"github.com/mapknit/mapknit/internal/importer"
	"github.com/mapknit/mapknit/internal/metrics"
	"github.com/mapknit/mapknit/internal/store"
	"github.com/mapknit/mapknit/internal/web/middleware"
)

// Server is the HTTP server for the map set application.
type Server struct {
	store   *store.Store
	parser  *importer.Parser
	svg     []byte
	metrics *metrics.Metrics
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a Server over the shared state store. svg is the raw
// map document served to the rendering side; this layer treats it strictly
// as data.
func NewServer(st *store.Store, parser *importer.Parser, svg []byte, m *metrics.Metrics, cfg *config.Config) *Server {
	s := &Server{
		store:   st,
		parser:  parser,
		svg:     svg,
		metrics: m,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Rate.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))

	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		// The map document for the rendering side.
		r.Get("/map", s.handleMap)

		// Set CRUD
		r.Get("/sets", s.handleListSets)
		r.Post("/sets", s.handleCreateSet)
		r.Put("/sets/{id}", s.handleUpdateSet)
		r.Delete("/sets/{id}", s.handleDeleteSet)

		// Assignments and derived reads
		r.Get("/assignments", s.handleAssignments)
		r.Put("/assignments/{countryID}", s.handleAssign)
		r.Get("/colors", s.handleColors)

		// Map name
		r.Get("/name", s.handleGetName)
		r.Put("/name", s.handleSetName)

		// Bulk flows
		r.Get("/export", s.handleExport)
		r.Post("/reset", s.handleReset)

		// Import gets its own, stricter rate limit.
		r.Group(func(r chi.Router) {
			if s.cfg.Rate.Enabled {
				limiter := newRateLimiter(s.cfg.Rate.ImportLimit, time.Minute)
				r.Use(limiter.middleware)
			}
			r.Post("/import", s.handleImport)
		})

		// Change notifications for the UI.
		r.Get("/events", s.handleEvents)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout, // 0 keeps the event stream open
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'")

		next.ServeHTTP(w, r)
	})
}

// rateLimiter implements a simple token bucket rate limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every minute.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1,
			lastReset: time.Now(),
		}
		return true
	}

	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			ip = realIP
		}

		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			respondJSON(w, http.StatusTooManyRequests, ErrorResponse{
				Error: "rate limit exceeded",
				Code:  "RATE001",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
