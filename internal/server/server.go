package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"neighborly/internal/config"
	"neighborly/internal/core"
	"neighborly/internal/logger"
)

// Planner is what the HTTP layer needs from the generation core.
type Planner interface {
	Plan(ctx context.Context, req core.PlanningRequest) *core.Plan
	Enabled() bool
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	planner    Planner
	config     config.Server
	metrics    config.Metrics
	log        *slog.Logger
	renderer   *TemplateRenderer
}

// New creates a new HTTP server instance
func New(planner Planner, cfg config.Server, metrics config.Metrics) (*Server, error) {
	log := logger.Get()

	renderer, err := NewTemplateRenderer(cfg.DevMode, cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		planner:  planner,
		config:   cfg,
		metrics:  metrics,
		log:      log,
		renderer: renderer,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
	}

	return s, nil
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Three sequential model calls must fit inside the request timeout
	s.router.Use(middleware.Timeout(s.config.WriteTimeoutDuration()))

	s.router.Use(securityHeaders)

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "HX-Request", "HX-Target"},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any major browsers
		}))
	}

	if s.config.RateLimit.Enabled {
		s.router.Use(middleware.Throttle(s.config.RateLimit.MaxConcurrent))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	if s.metrics.Enabled {
		s.router.Handle(s.metrics.Path, promhttp.Handler())
	}

	// Web routes (HTML pages)
	s.router.Get("/", s.handleIndexPage)
	s.router.With(noCache).Post("/", s.handlePlanForm)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/plan", s.handlePlanAPI)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.httpServer.ReadTimeout,
		"write_timeout", s.httpServer.WriteTimeout,
		"llm_enabled", s.planner.Enabled(),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}

// ShutdownTimeout is how long Shutdown may wait for in-flight requests.
func (s *Server) ShutdownTimeout() time.Duration {
	return s.config.ShutdownTimeoutDuration()
}
