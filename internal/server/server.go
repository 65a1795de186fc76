package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"Mansoor88-6/time-tracking-api/internal/config"

	"go.uber.org/zap"
)

// Server owns the HTTP listener lifecycle.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func New(cfg config.HTTPServerConfig, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Start binds the listener and serves in the background. Bind errors
// are returned directly; later serve errors arrive on the channel.
func (s *Server) Start() (<-chan error, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, err
	}
	return s.Serve(ln), nil
}

// Serve runs the server on ln in a goroutine.
func (s *Server) Serve(ln net.Listener) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("address", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown stops accepting connections and waits for in-flight
// requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown error", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
