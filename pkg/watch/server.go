package watch

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"rustrial-os/confgen/pkg/telemetry/health"
	"rustrial-os/confgen/pkg/telemetry/metrics"
)

// Server is the watch-mode observability listener. It serves Prometheus
// scrapes on /metrics and the health probe endpoints.
type Server struct {
	addr       string
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
}

// NewServer builds the listener surface. A nil checker mounts probes
// with no readiness checks, which always answer ready.
func NewServer(addr string, collector *metrics.Collector, checker *health.Checker, version, commit, buildTime string) *Server {
	if checker == nil {
		checker = health.New(0)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	health.Mount(mux, checker, version, commit, buildTime)

	return &Server{
		addr: addr,
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: slog.Default().With("component", "watch.server"),
	}
}

// Start binds the address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind metrics listener: %w", err)
	}
	s.listener = ln

	s.logger.Info("metrics listener started", "addr", ln.Addr().String())

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("metrics listener failed", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address. With a ":0" configuration this is the
// kernel-assigned port.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Shutdown drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
