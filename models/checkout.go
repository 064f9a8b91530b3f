// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CheckoutRequest is the payload of POST /stripe/create-checkout-session.
type CheckoutRequest struct {
	// Amount is expressed in the smallest currency unit (cents).
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	VMID     *int64            `json:"vm_id,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CheckoutResponse is returned after a checkout session has been created.
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	PaymentID int64  `json:"payment_id"`
	URL       string `json:"url"`
}

// PaymentIntentRequest is the payload of POST /stripe/create-payment-intent.
type PaymentIntentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	VMID     *int64            `json:"vm_id,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// PaymentIntentResponse is returned after a payment intent has been created.
type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    int64  `json:"payment_id"`
	ID           string `json:"id"`
}

// TestProductResponse describes the product and price created by
// POST /stripe/create-test-product.
type TestProductResponse struct {
	ProductID string `json:"product_id"`
	PriceID   string `json:"price_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// PaymentStatusResponse is returned by GET /stripe/payment-status/{id}.
type PaymentStatusResponse struct {
	ID        int64         `json:"id"`
	Status    PaymentStatus `json:"status"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

// NewPaymentStatusResponse projects a payment into its public status view.
func NewPaymentStatusResponse(p Payment) PaymentStatusResponse {
	return PaymentStatusResponse{
		ID:        p.ID,
		Status:    p.Status,
		Amount:    p.Amount,
		Currency:  p.Currency,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CheckoutSessionParams is what the payment service asks the processor for.
type CheckoutSessionParams struct {
	AmountCents int64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the processor's answer to CheckoutSessionParams.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentIntentParams is what the payment service asks the processor for
// when the client confirms the payment itself.
type PaymentIntentParams struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

// PaymentIntent is the processor's answer to PaymentIntentParams.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// TestProduct is a processor product with one price.
type TestProduct struct {
	ProductID   string
	PriceID     string
	AmountCents int64
	Currency    string
}

// WebhookEventKind enumerates the processor events the marketplace reacts to.
type WebhookEventKind string

const (
	WebhookCheckoutCompleted WebhookEventKind = "checkout.session.completed"
	WebhookCheckoutExpired   WebhookEventKind = "checkout.session.expired"
	WebhookPaymentSucceeded  WebhookEventKind = "payment_intent.succeeded"
	WebhookPaymentFailed     WebhookEventKind = "payment_intent.payment_failed"
	WebhookChargeRefunded    WebhookEventKind = "charge.refunded"
)

// WebhookEvent is a verified processor event reduced to what the payment
// service needs.
type WebhookEvent struct {
	ID   string
	Kind WebhookEventKind

	// ObjectID is the id of the session or payment intent the event is about.
	// For charge events it is the charge's payment intent.
	ObjectID string

	// PaymentIntentID is set for checkout sessions that carry one.
	PaymentIntentID string
}
