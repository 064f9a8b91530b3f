// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext is returned by a protected handler that runs
	// without the auth middleware having stored a user.
	ErrNoUserInContext = errors.New("no authenticated user in context")

	ErrInvalidJSON           = errors.New("invalid JSON body")
	ErrInvalidQueryParameter = errors.New("invalid query parameter")
	ErrInvalidPathParameter  = errors.New("invalid path parameter")
)
