// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until a termination signal arrives or a transport fails,
// then shuts everything down. Shutdown may be called to stop early.
type Server interface {
	RunServer()
	Shutdown()
}

// transport is a single listener managed by the server.
type transport interface {
	name() string

	// serve blocks until the transport stops. A graceful stop is not an
	// error.
	serve() error
	shutdown(ctx context.Context) error
}
