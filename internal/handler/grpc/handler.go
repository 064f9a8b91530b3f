// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc implements the gRPC transport of the marketplace: the
// standard grpc.health.v1.Health service backed by a database check.
package grpc

import (
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name that reports the marketplace
// itself. The empty name reports the server as a whole and is equivalent.
const ServiceName = "vm-marketplace"

const defaultWatchInterval = 5 * time.Second

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger so that
// gRPC method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// watchInterval is how often Watch re-checks the database.
	watchInterval time.Duration

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services:      services,
		watchInterval: defaultWatchInterval,
		logger:        logger,
	}
}

// Register attaches every gRPC service of the handler to server.
func (h *Handler) Register(server *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(server, h)
}
