// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PaymentStatus is the lifecycle state of a payment mirrored from the
// payment processor.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// paymentTransitions lists the statuses reachable from each status.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusFailed:    {PaymentStatusCompleted},
	PaymentStatusCompleted: {PaymentStatusRefunded},
}

// IsValid reports whether s is one of the known statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether a payment in status s may move to next.
// Moving to the current status is always allowed and is a no-op.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payment is the local mirror of one payment-processor checkout session or
// payment intent.
type Payment struct {
	ID int64 `json:"id"`

	// StripePaymentID is the processor object that created this row
	// (checkout session id or payment intent id).
	StripePaymentID string `json:"stripe_payment_id"`

	// StripePaymentIntentID is the payment intent behind a checkout session.
	// It is learnt from the checkout completion event.
	StripePaymentIntentID *string `json:"stripe_payment_intent_id,omitempty"`

	// Amount is expressed in major currency units.
	Amount   float64       `json:"amount"`
	Currency string        `json:"currency"`
	Status   PaymentStatus `json:"status"`
	UserID   int64         `json:"user_id"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Payment model.
func (p Payment) TableName() string {
	return "payments"
}
