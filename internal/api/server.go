// Package api provides the HTTP API server and handlers for the Ubugingo content service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ubugingoapp/ubugingo-server/internal/ratelimit"
	"github.com/ubugingoapp/ubugingo-server/internal/service"
	"github.com/ubugingoapp/ubugingo-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   *store.Store
	content *service.ContentService
	limiter *ratelimit.KeyedRateLimiter
	router  *chi.Mux
	logger  *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// limiter may be nil to disable rate limiting (tests).
func NewServer(store *store.Store, content *service.ContentService, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		store:   store,
		content: content,
		limiter: limiter,
		router:  chi.NewRouter(),
		logger:  logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}

// setupRoutes configures all HTTP routes. Paths match the legacy content
// server consumed by the mobile clients.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/audio", func(r chi.Router) {
			r.Get("/", s.handleListAudio)
			r.Get("/{book}", s.handleListBookAudio)
			r.Get("/{book}/{chapter}", s.handleGetAudio)
		})
		r.Get("/books/{testament}", s.handleListBooks)
	})
}
