// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/models"
)

var paymentRowColumns = []string{"id", "stripe_payment_id", "stripe_payment_intent_id", "amount", "currency", "status", "user_id", "created_at", "updated_at"}

func newTestPaymentRepo(t *testing.T) (*paymentRepository, sqlmock.Sqlmock) {
	db, mock, raw := newMockDB(t)
	t.Cleanup(func() { _ = raw.Close() })
	return &paymentRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreatePayment_Success(t *testing.T) {
	repo, mock := newTestPaymentRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs("cs_test_1", nil, 10.0, "usd", "pending", int64(4), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).
			AddRow(1, "cs_test_1", nil, 10.0, "usd", "pending", 4, now, nil))

	created, err := repo.CreatePayment(context.Background(), models.Payment{
		StripePaymentID: "cs_test_1",
		Amount:          10,
		Currency:        "usd",
		UserID:          4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, models.PaymentStatusPending, created.Status)
	assert.Nil(t, created.StripePaymentIntentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_ConstraintErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{name: "duplicate processor id", code: pgerrcode.UniqueViolation, want: ErrPaymentAlreadyExists},
		{name: "unknown user", code: pgerrcode.ForeignKeyViolation, want: ErrUnknownUserReference},
		{name: "bad status", code: pgerrcode.CheckViolation, want: ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestPaymentRepo(t)
			mock.ExpectQuery("INSERT INTO payments").WillReturnError(pgError(tt.code))

			_, err := repo.CreatePayment(context.Background(), models.Payment{StripePaymentID: "pi_1", UserID: 1})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetUserPayment_ScopedToOwner(t *testing.T) {
	repo, mock := newTestPaymentRepo(t)

	mock.ExpectQuery("SELECT id, stripe_payment_id").
		WithArgs(int64(10), int64(2)).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	_, err := repo.GetUserPayment(context.Background(), 2, 10)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPaymentByProcessorID_MatchesIntent(t *testing.T) {
	repo, mock := newTestPaymentRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("stripe_payment_id = \\$1 OR stripe_payment_intent_id = \\$1").
		WithArgs("pi_1").
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).
			AddRow(3, "cs_1", "pi_1", 5.0, "usd", "completed", 1, now, now))

	payment, err := repo.FindPaymentByProcessorID(context.Background(), "pi_1")
	require.NoError(t, err)
	require.NotNil(t, payment.StripePaymentIntentID)
	assert.Equal(t, "pi_1", *payment.StripePaymentIntentID)
	assert.Equal(t, "cs_1", payment.StripePaymentID)
}

func TestUpdatePaymentStatus_Success(t *testing.T) {
	repo, mock := newTestPaymentRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE payments SET").
		WithArgs("completed", "pi_9", sqlmock.AnyArg(), int64(7), "pending").
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).
			AddRow(7, "cs_9", "pi_9", 5.0, "usd", "completed", 1, now, now))

	updated, err := repo.UpdatePaymentStatus(context.Background(), 7, models.PaymentStatusPending, models.PaymentStatusCompleted, "pi_9")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatus_Conflict(t *testing.T) {
	repo, mock := newTestPaymentRepo(t)

	mock.ExpectQuery("UPDATE payments SET").
		WithArgs("failed", nil, sqlmock.AnyArg(), int64(7), "pending").
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	_, err := repo.UpdatePaymentStatus(context.Background(), 7, models.PaymentStatusPending, models.PaymentStatusFailed, "")
	assert.ErrorIs(t, err, ErrPaymentStatusConflict)
}

func TestCountPayments(t *testing.T) {
	repo, mock := newTestPaymentRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	count, err := repo.CountPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), count)
}
