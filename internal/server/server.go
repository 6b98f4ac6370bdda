package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"semantic-exit/internal/metrics"
)

const (
	ReadTimeout  = 15 * time.Second
	WriteTimeout = 15 * time.Second
	IdleTimeout  = 60 * time.Second
)

// Options configures the lookup API.
type Options struct {
	Addr            string
	RateLimit       rate.Limit // Requests per second per client
	RateBurst       int
	ShutdownTimeout time.Duration
}

// Server exposes the exit code registry over HTTP.
type Server struct {
	opts   Options
	logger *zap.Logger
	router *mux.Router
}

func New(opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	metrics.Init()

	router := mux.NewRouter()
	router.Use(LoggingMiddleware(s.logger))
	router.Use(MetricsMiddleware)
	router.Use(SecurityHeadersMiddleware)
	if s.opts.RateLimit > 0 {
		router.Use(RateLimitMiddleware(s.opts.RateLimit, s.opts.RateBurst))
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", HealthHandler).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/codes", ListCodesHandler).Methods(http.MethodGet)
	api.HandleFunc("/codes/{status}", ExplainHandler).Methods(http.MethodGet)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	return router
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("lookup API listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down lookup API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
