// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound integrations of the marketplace.
//
// [PaymentGateway] is the payment processor seen from the payment service;
// the Stripe implementation lives in stripe.go. [MarketplaceClient] is the
// REST client used by vmmarketctl to query a running server.
//
// Transport failures are reported through the sentinel values in errors.go so
// callers can use [errors.Is] regardless of the protocol underneath.
package adapter

import (
	"context"

	"github.com/MKhiriev/vm-marketplace/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// PaymentGateway creates processor-side payment objects and verifies the
// webhooks the processor sends back.
type PaymentGateway interface {
	// CreateCheckoutSession creates a hosted checkout page for a single line
	// item. Returns [ErrGatewayNotConfigured] when no secret key is set.
	CreateCheckoutSession(ctx context.Context, params models.CheckoutSessionParams) (models.CheckoutSession, error)

	// CreatePaymentIntent creates an intent the client confirms with its
	// client secret.
	CreatePaymentIntent(ctx context.Context, params models.PaymentIntentParams) (models.PaymentIntent, error)

	// CreateTestProduct creates a product with one fixed price.
	CreateTestProduct(ctx context.Context) (models.TestProduct, error)

	// ParseWebhook verifies signature against payload and decodes the event.
	// Returns [ErrWebhookSecretMissing] when no webhook secret is set and
	// [ErrInvalidWebhook] when verification or decoding fails.
	ParseWebhook(payload []byte, signature string) (models.WebhookEvent, error)
}

// MarketplaceClient talks to a running marketplace server over HTTP.
type MarketplaceClient interface {
	// DatabaseReport calls GET /test/test-db.
	DatabaseReport(ctx context.Context) (models.DBReport, error)

	// Version calls GET /version.
	Version(ctx context.Context) (string, error)
}
