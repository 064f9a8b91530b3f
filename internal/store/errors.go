// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an INSERT into users violates the
	// unique email constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a lookup by email or id matches no user.
	ErrUserNotFound = errors.New("user was not found")

	// ErrVMNotFound is returned when a query, update or delete targets a
	// virtual machine id that does not exist.
	ErrVMNotFound = errors.New("virtual machine was not found")

	// ErrPaymentNotFound is returned when no payment matches the given id (and
	// owner) or processor id.
	ErrPaymentNotFound = errors.New("payment was not found")

	// ErrPaymentAlreadyExists is returned when a processor object id is
	// mirrored twice.
	ErrPaymentAlreadyExists = errors.New("payment already exists")

	// ErrUnknownUserReference is returned when a payment references a user
	// id that is not present in users.
	ErrUnknownUserReference = errors.New("referenced user does not exist")

	// ErrPaymentStatusConflict is returned by a compare-and-set status update
	// when the stored status no longer equals the expected one.
	ErrPaymentStatusConflict = errors.New("payment status changed concurrently")

	// ErrConstraintViolation is returned for CHECK constraint failures such as
	// an unknown enum value or a negative price.
	ErrConstraintViolation = errors.New("data violates a table constraint")

	// ErrUnsupportedDSN is returned when the DSN scheme names no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)
