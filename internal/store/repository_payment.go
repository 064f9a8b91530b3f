// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/models"
)

type paymentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPaymentRepository constructs a [PaymentRepository] over the "payments"
// table.
func NewPaymentRepository(db *DB, logger *logger.Logger) PaymentRepository {
	logger.Debug().Msg("creating payment repository")
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment models.Payment) (models.Payment, error) {
	log := logger.FromContext(ctx)

	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	created, err := scanPayment(r.db.QueryRowContext(ctx, createPayment,
		payment.StripePaymentID,
		nullString(payment.StripePaymentIntentID),
		payment.Amount,
		payment.Currency,
		string(payment.Status),
		payment.UserID,
		time.Now().UTC(),
	))
	if err != nil {
		log.Err(err).
			Str("func", "*paymentRepository.CreatePayment").
			Str("stripe_payment_id", payment.StripePaymentID).
			Msg("error inserting payment")

		switch r.db.classify(err) {
		case UniqueViolation:
			return models.Payment{}, ErrPaymentAlreadyExists
		case ForeignKeyViolation:
			return models.Payment{}, ErrUnknownUserReference
		case CheckViolation:
			return models.Payment{}, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		default:
			return models.Payment{}, wrapDBError(err)
		}
	}

	return created, nil
}

// GetUserPayment returns payment paymentID only when it belongs to userID.
func (r *paymentRepository) GetUserPayment(ctx context.Context, userID, paymentID int64) (models.Payment, error) {
	payment, err := scanPayment(r.db.QueryRowContext(ctx, getUserPayment, paymentID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, ErrPaymentNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "*paymentRepository.GetUserPayment").
			Int64("payment_id", paymentID).
			Msg("error selecting payment")
		return models.Payment{}, wrapDBError(err)
	}
	return payment, nil
}

func (r *paymentRepository) FindPaymentByProcessorID(ctx context.Context, processorID string) (models.Payment, error) {
	payment, err := scanPayment(r.db.QueryRowContext(ctx, findPaymentByProcessorID, processorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, ErrPaymentNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "*paymentRepository.FindPaymentByProcessorID").
			Str("processor_id", processorID).
			Msg("error selecting payment")
		return models.Payment{}, wrapDBError(err)
	}
	return payment, nil
}

func (r *paymentRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to models.PaymentStatus, paymentIntentID string) (models.Payment, error) {
	log := logger.FromContext(ctx)

	var intent *string
	if paymentIntentID != "" {
		intent = &paymentIntentID
	}

	updated, err := scanPayment(r.db.QueryRowContext(ctx, updatePaymentStatus,
		string(to),
		nullString(intent),
		time.Now().UTC(),
		id,
		string(from),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, ErrPaymentStatusConflict
		}
		log.Err(err).
			Str("func", "*paymentRepository.UpdatePaymentStatus").
			Int64("payment_id", id).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("error updating payment status")
		return models.Payment{}, wrapDBError(err)
	}

	return updated, nil
}

func (r *paymentRepository) CountPayments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countPayments).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*paymentRepository.CountPayments").Msg("error counting payments")
		return 0, wrapDBError(err)
	}
	return count, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scanPayment(row rowScanner) (models.Payment, error) {
	var (
		payment models.Payment
		intent  sql.NullString
	)
	err := row.Scan(
		&payment.ID,
		&payment.StripePaymentID,
		&intent,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.UserID,
		timeScanner{&payment.CreatedAt},
		nullTimeScanner{&payment.UpdatedAt},
	)
	if err != nil {
		return models.Payment{}, fmt.Errorf("scan payment: %w", err)
	}
	if intent.Valid {
		payment.StripePaymentIntentID = &intent.String
	}
	return payment, nil
}
