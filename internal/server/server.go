package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/handler"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer builds the HTTP server from handlers. bg runs next to it and is
// stopped together with it; it may be nil.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}
	if bg == nil {
		bg = workers.NewWorkers()
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    bg,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() error {
	return s.Run(context.Background())
}

func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	ln, err := s.httpServer.listen()
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.httpServer.server.Addr, err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.httpServer.serve(ln)
	})

	g.Go(func() error {
		s.logger.Info().Msg("Launching workers")
		return s.workers.Run(gCtx)
	})

	// stop the HTTP server on a signal or when a worker fails
	g.Go(func() error {
		<-gCtx.Done()
		return s.httpServer.shutdown()
	})

	if err = g.Wait(); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
