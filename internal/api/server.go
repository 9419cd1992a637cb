// Package api exposes the classification pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lueurxax/tweet-classifier/internal/platform/observability"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// NewRouter mounts /api plus the health and metrics endpoints.
func NewRouter(classifier Classifier, logger *zerolog.Logger, checks ...observability.ReadinessCheck) http.Handler {
	router := chi.NewRouter()

	router.Use(RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(AccessLog(logger))
	router.Use(chiMiddleware.Recoverer)

	handler := NewHandler(classifier, logger)
	router.Method(http.MethodGet, "/api", handler)
	router.Method(http.MethodPost, "/api", handler)

	router.Get("/healthz", observability.HealthzHandler())
	router.Get("/readyz", observability.ReadyzHandler(checks...))
	router.Handle("/metrics", observability.MetricsHandler())

	return router
}

type Server struct {
	addr    string
	handler http.Handler
	logger  *zerolog.Logger
}

func NewServer(addr string, handler http.Handler, logger *zerolog.Logger) *Server {
	return &Server{addr: addr, handler: handler, logger: logger}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

		defer cancel()

		//nolint:errcheck,contextcheck // shutdown in signal handler is best-effort, non-inherited context intentional
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", s.addr).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}
