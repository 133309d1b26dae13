// Package server provides the HTTP API of the galois solver: solving
// equations, drawing random ones, listing and applying root symmetries.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/galois/internal/config"
	apperrors "github.com/agbru/galois/internal/errors"
	"github.com/agbru/galois/internal/logging"
	"github.com/agbru/galois/internal/service"
	"github.com/agbru/galois/internal/solver"
)

// Server represents the HTTP server for the galois API.
// It wraps the standard http.Server and adds application-specific configuration
// and graceful shutdown capabilities.
type Server struct {
	registry       *solver.Registry
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	mux            *http.ServeMux
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a new Server instance with the given solver registry and configuration.
// It initializes the HTTP server with timeouts and a request multiplexer.
//
// Parameters:
//   - registry: The solvers to dispatch to (nil uses solver.DefaultRegistry).
//   - cfg: The application configuration (port, precision, etc.).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(registry *solver.Registry, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		registry:       registry,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewSolverService(s.registry, nil).WithMaxUnitRoots(s.securityConfig.MaxUnitRoots)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()

	// Apply middleware chain: Security -> RateLimit -> Logging -> Metrics -> Handler
	mux.HandleFunc("/solve", s.wrapWithMiddleware(s.handleSolve))
	mux.HandleFunc("/random", s.wrapWithMiddleware(s.handleRandom))
	mux.HandleFunc("/actions", s.wrapWithMiddleware(s.handleActions))
	mux.HandleFunc("/apply", s.wrapWithMiddleware(s.handleApply))
	mux.HandleFunc("/unit-roots", s.wrapWithMiddleware(s.handleUnitRoots))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/solvers", s.wrapWithMiddleware(s.handleSolvers))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))
	s.mux = mux

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// Handler returns the server's routes with their middleware, for embedding
// or for tests driven by httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	// Apply in reverse order: Security -> RateLimit -> Logging -> Metrics -> Handler
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles system
// signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.Int("precision", s.cfg.Precision),
			logging.Duration("request_timeout", s.timeouts.RequestTimeout),
			logging.Int("max_unit_roots", s.securityConfig.MaxUnitRoots),
		)
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /solve?coeffs=<c_n,...,c_0>[&precision=<p>]")
		s.logger.Println("  GET /random?degree=<2-4>[&seed=<seed>]")
		s.logger.Println("  GET /actions?degree=<2-4>")
		s.logger.Println("  GET /apply?coeffs=<c_n,...,c_0>&action=<id>")
		s.logger.Println("  GET /unit-roots?n=<n>")
		s.logger.Println("  GET /health, /solvers, /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Info("shutdown signal received, initiating graceful shutdown")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}
