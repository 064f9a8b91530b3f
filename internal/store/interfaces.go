// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/vm-marketplace/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists marketplace accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// VMRepository persists virtual machine listings.
type VMRepository interface {
	ListVMs(ctx context.Context, filter models.VMFilter) (models.VMPage, error)
	GetVM(ctx context.Context, id int64) (models.VirtualMachine, error)
	CreateVM(ctx context.Context, vm models.VirtualMachine) (models.VirtualMachine, error)
	UpdateVM(ctx context.Context, id int64, update models.VMUpdate) (models.VirtualMachine, error)
	DeleteVM(ctx context.Context, id int64) error
}

// PaymentRepository persists the local mirror of processor payments.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (models.Payment, error)
	GetUserPayment(ctx context.Context, userID, paymentID int64) (models.Payment, error)

	// FindPaymentByProcessorID matches processorID against both the
	// stripe_payment_id and the stripe_payment_intent_id columns.
	FindPaymentByProcessorID(ctx context.Context, processorID string) (models.Payment, error)

	// UpdatePaymentStatus moves payment id from status from to status to.
	// A non-empty paymentIntentID is recorded as well. It returns
	// ErrPaymentStatusConflict when the stored status is no longer from.
	UpdatePaymentStatus(ctx context.Context, id int64, from, to models.PaymentStatus, paymentIntentID string) (models.Payment, error)

	CountPayments(ctx context.Context) (int64, error)
}

// TokenRepository keeps the identifiers of revoked JWTs until they expire.
type TokenRepository interface {
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// HealthRepository answers database diagnostics.
type HealthRepository interface {
	Ping(ctx context.Context) error
	SelectOne(ctx context.Context) (int, error)
	Driver() string
}
