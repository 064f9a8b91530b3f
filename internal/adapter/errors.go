// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
	ErrWebhookSecretMissing = errors.New("webhook secret is not configured")
	ErrInvalidWebhook       = errors.New("invalid webhook payload or signature")
	ErrGatewayFailure       = errors.New("payment gateway request failed")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
)
