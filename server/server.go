// Package server provides HTTP server management and lifecycle handling for
// the generics API. It includes server setup, middleware configuration,
// route management, and graceful shutdown capabilities with proper error
// handling and logging.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxbridge/generics-api/config"
	"github.com/rxbridge/generics-api/data"
	"github.com/rxbridge/generics-api/handlers"
	"github.com/rxbridge/generics-api/interfaces"
	"github.com/rxbridge/generics-api/logging"
	"github.com/rxbridge/generics-api/metrics"

	_ "net/http/pprof"
)

// Server represents the HTTP server
type Server struct {
	server      *http.Server
	router      chi.Router
	container   *data.Container
	config      *config.Config
	rateLimiter *RateLimiter
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, container *data.Container, validator interfaces.InputValidator) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:      router,
		container:   container,
		config:      cfg,
		rateLimiter: NewRateLimiter(),
	}

	server.setupMiddleware()
	server.setupRoutes(validator)

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(metrics.Middleware)
	s.router.Use(s.rateLimiter.Middleware)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(validator interfaces.InputValidator) {
	h := handlers.New(s.container, validator)

	s.router.Post("/catalogs/{catalog}/rows", h.UploadCatalog)
	s.router.Get("/catalogs/{catalog}/search", h.SearchCatalog)
	s.router.Get("/salt/{query}", h.SearchBySalt)
	s.router.Get("/health", h.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server
func (s *Server) Start() error {
	// Start profiling server if in development mode
	if s.config.Env == "dev" {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.rateLimiter.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// startProfilingServer starts the pprof profiling server in development mode
func (s *Server) startProfilingServer() {
	go func() {
		logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			logging.Error("Profiling server failed", "error", err)
		}
	}()
}
