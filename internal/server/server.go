package server

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/handler/http"
	"github.com/MKhiriev/keychain-vault/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer creates the storage server. It fails when no listen address is
// configured.
func NewServer(handler *http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" || handler == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Serve(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.server.Addr, err)
	}
	return s.serveListener(ctx, ln)
}

func (s *server) serveListener(ctx context.Context, ln net.Listener) error {
	idleConnectionsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	if err := s.httpServer.serve(ln); err != nil {
		_ = ln.Close()
		return err
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
