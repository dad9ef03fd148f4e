// Package server exposes the snapshot, transaction, and planning operations
// over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/harwellgs/pocketsage/internal/plan"
	"github.com/harwellgs/pocketsage/internal/service"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr string
}

// Server wires the HTTP boundary to the core components.
type Server struct {
	logger    *slog.Logger
	store     service.SessionStore
	link      service.LinkProvider
	composer  *plan.Composer
	sourceFor func(accessToken string) service.TransactionSource
	httpSrv   *http.Server
	now       func() time.Time
}

// New creates a server. sourceFor binds a stored session's access token to a
// transaction source; link may be nil when account linking is not configured.
func New(cfg Config, store service.SessionStore, link service.LinkProvider, composer *plan.Composer, sourceFor func(accessToken string) service.TransactionSource) *Server {
	s := &Server{
		logger:    slog.Default().With("component", "server"),
		store:     store,
		link:      link,
		composer:  composer,
		sourceFor: sourceFor,
		now:       time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/v1/transactions", s.handleTransactions)
	mux.HandleFunc("POST /api/v1/plan", s.handlePlan)
	mux.HandleFunc("POST /api/v1/link/token", s.handleLinkToken)
	mux.HandleFunc("POST /api/v1/link/exchange", s.handleLinkExchange)

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withMiddleware(mux),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.httpSrv.Addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpSrv.Shutdown(ctx)
}
