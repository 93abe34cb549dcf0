package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// Server exposes /metrics until Close is called.
type Server struct {
	srv *http.Server
	l   net.Listener
}

// Listen binds addr and starts serving in the background. Errors from the
// serving goroutine are logged.
func Listen(addr string, g prometheus.Gatherer) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		srv: &http.Server{Handler: Handler(g), ReadHeaderTimeout: 5 * time.Second},
		l:   l,
	}
	go func() {
		if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to serve metrics", "error", err)
		}
	}()
	slog.Info("Metrics server listening", "address", l.Addr().String())
	return s, nil
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() string {
	return s.l.Addr().String()
}

func (s *Server) Close(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
