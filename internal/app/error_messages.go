// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// marketplace server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// the "detail" field of HTTP error responses or into "message" fields of
// success responses. Keeping them in one place ensures consistent wording
// throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when input fails validation and no
	// more specific rule message is available.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"

	MsgNotFound         = "Not Found"
	MsgMethodNotAllowed = "Method Not Allowed"

	// MsgNotAuthenticated is returned when a protected route is called
	// without a usable "Authorization: Bearer" header.
	MsgNotAuthenticated = "Not authenticated"

	// MsgInvalidCredentials is returned for both an unknown email and a
	// wrong password.
	MsgInvalidCredentials = "Incorrect email or password"

	MsgEmailAlreadyRegistered = "Email already registered"
	MsgInactiveUser           = "Inactive user"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "Token has expired"

	// MsgCouldNotValidateCredentials is returned when a JWT bearer token
	// cannot be verified, is revoked or names a user that no longer exists.
	MsgCouldNotValidateCredentials = "Could not validate credentials"

	MsgNotEnoughPermissions = "Not enough permissions"

	MsgVMNotFound     = "VM not found"
	MsgVMNotAvailable = "VM is not available for purchase"

	MsgPaymentNotFound        = "Payment not found"
	MsgPaymentsNotConfigured  = "Payment processing is not configured"
	MsgPaymentProviderFailure = "Payment provider error"
	MsgWebhookNotConfigured   = "Webhook secret not configured"
	MsgInvalidWebhook         = "Invalid payload or signature"

	MsgDatabaseUnavailable = "Database connection failed"

	// Success messages.
	MsgUserRegistered   = "User registered successfully"
	MsgLoggedOut        = "Successfully logged out"
	MsgVMDeleted        = "VM deleted successfully"
	MsgWebhookProcessed = "success"
)
