package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// DefaultMaxBodyBytes is the request body ceiling for POST /compress.
const DefaultMaxBodyBytes = 10 << 20 // 10 MiB

// Config holds the HTTP front-end parameters.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string
	// MaxBodyBytes limits POST /compress bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// Logger receives request logs. Nil means slog.Default().
	Logger *slog.Logger
}

// Server exposes the compression pipeline over HTTP. It is stateless
// apart from the process-wide counters reported by /metrics.
type Server struct {
	cfg Config
	log *slog.Logger
	mux *http.ServeMux
}

// New builds a server with all routes registered.
func New(cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg: cfg,
		log: cfg.Logger,
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /compress", s.handleCompress)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)
	return s
}

// Handler returns the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.log.Info("server listening", "addr", s.cfg.Addr, "max_body_bytes", s.cfg.MaxBodyBytes)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}
