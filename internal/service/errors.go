// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("incorrect email or password")
	ErrInactiveUser           = errors.New("inactive user")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrNotEnoughPermissions    = errors.New("not enough permissions")

	ErrVMNotFound     = errors.New("vm not found")
	ErrVMNotAvailable = errors.New("vm is not available for purchase")

	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentsNotConfigured  = errors.New("payments are not configured")
	ErrPaymentProviderFailure = errors.New("payment provider request failed")
	ErrWebhookNotConfigured   = errors.New("webhook secret is not configured")
	ErrInvalidWebhook         = errors.New("invalid webhook payload or signature")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrDatabaseUnavailable   = errors.New("database is unavailable")
)
