// Package server exposes the documentation engine over HTTP: resolved
// documents, version listings, sidebar trees, health, and Prometheus
// metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/service"
)

// Server wraps one http.Server around the documentation service.
type Server struct {
	cfg       *config.Config
	svc       *service.Service
	httpSrv   *http.Server
	startTime time.Time
}

// New constructs the HTTP wiring. registry may be nil to disable the
// /metrics endpoint.
func New(cfg *config.Config, svc *service.Service, registry *prometheus.Registry) *Server {
	s := &Server{
		cfg:       cfg,
		svc:       svc,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/versions", s.handleVersions)
	mux.HandleFunc("GET /api/docs/{version}/{slug...}", s.handleDocument)
	mux.HandleFunc("GET /api/sidebar/{version}", s.handleSidebar)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(registry))
	}

	addr := cfg.Serve.Addr
	if addr == "" {
		addr = config.DefaultServeAddr
	}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           withMiddleware(slog.Default(), mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start binds the listener and serves in a background goroutine. Binding
// happens synchronously so port conflicts surface as a startup error.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.httpSrv.Addr, err)
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("HTTP server started", slog.String("addr", s.httpSrv.Addr))
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}
