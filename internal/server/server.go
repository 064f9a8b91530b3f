// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/handler"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/workers"
)

const shutdownTimeout = 15 * time.Second

type server struct {
	transports []transport
	workers    *workers.Workers

	// stop cancels the run context; set while run is active.
	mu   sync.Mutex
	stop context.CancelFunc

	logger *logger.Logger
}

// NewServer creates the transports enabled in cfg. bgWorkers may be nil.
func NewServer(handlers *handler.Handlers, bgWorkers *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		workers: bgWorkers,
		logger:  logger,
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.transports = append(servers.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.transports = append(servers.transports, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(servers.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		s.stop()
	}
}

// run starts the workers and every transport, and blocks until ctx is done
// or a transport fails. Transports are then shut down and workers awaited.
func (s *server) run(parent context.Context) error {
	if len(s.transports) == 0 {
		return errNoServersToRun
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	s.mu.Lock()
	s.stop = cancel
	s.mu.Unlock()

	var background sync.WaitGroup
	if s.workers != nil {
		background.Go(func() {
			s.workers.Run(ctx)
		})
	}

	for _, t := range s.transports {
		s.logger.Info().Msgf("launching %s server", t.name())
		background.Go(func() {
			if err := t.serve(); err != nil {
				s.logger.Err(err).Msgf("%s server stopped with error", t.name())
				cancel()
			}
		})
	}

	<-ctx.Done()
	s.logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	for _, t := range s.transports {
		if err := t.shutdown(shutdownCtx); err != nil {
			s.logger.Err(err).Msgf("%s server shutdown failed", t.name())
		}
	}

	background.Wait()
	s.logger.Info().Msg("server shutdown gracefully")

	return nil
}
