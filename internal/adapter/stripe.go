// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/models"
)

const (
	testProductName        = "Test VM Instance"
	testProductDescription = "A test virtual machine instance for payment testing"
	testProductAmountCents = 1000
	testProductCurrency    = "usd"
)

type stripeGateway struct {
	api           *client.API
	configured    bool
	webhookSecret string

	logger *logger.Logger
}

// NewStripeGateway constructs the Stripe implementation of [PaymentGateway].
// An empty secret key leaves the gateway unconfigured: every API call returns
// [ErrGatewayNotConfigured] while webhooks still verify.
func NewStripeGateway(cfg config.Payments, log *logger.Logger) PaymentGateway {
	return newStripeGateway(cfg, nil, log)
}

// newStripeGateway lets tests point the client at a fake API backend.
func newStripeGateway(cfg config.Payments, backends *stripe.Backends, log *logger.Logger) *stripeGateway {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, backends)

	return &stripeGateway{
		api:           api,
		configured:    cfg.StripeSecretKey != "",
		webhookSecret: cfg.StripeWebhookSecret,
		logger:        log,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params models.CheckoutSessionParams) (models.CheckoutSession, error) {
	if !g.configured {
		return models.CheckoutSession{}, ErrGatewayNotConfigured
	}

	sessionParams := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(params.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
					UnitAmount: stripe.Int64(params.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx
	for k, v := range params.Metadata {
		sessionParams.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*stripeGateway.CreateCheckoutSession").Msg("stripe rejected checkout session")
		return models.CheckoutSession{}, mapStripeError("create checkout session", err)
	}

	return models.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, params models.PaymentIntentParams) (models.PaymentIntent, error) {
	if !g.configured {
		return models.PaymentIntent{}, ErrGatewayNotConfigured
	}

	intentParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.AmountCents),
		Currency: stripe.String(strings.ToLower(params.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intentParams.Context = ctx
	for k, v := range params.Metadata {
		intentParams.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(intentParams)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*stripeGateway.CreatePaymentIntent").Msg("stripe rejected payment intent")
		return models.PaymentIntent{}, mapStripeError("create payment intent", err)
	}

	return models.PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// CreateTestProduct creates the "Test VM Instance" product with a 10.00 usd
// price.
func (g *stripeGateway) CreateTestProduct(ctx context.Context) (models.TestProduct, error) {
	if !g.configured {
		return models.TestProduct{}, ErrGatewayNotConfigured
	}
	log := logger.FromContext(ctx)

	productParams := &stripe.ProductParams{
		Name:        stripe.String(testProductName),
		Description: stripe.String(testProductDescription),
	}
	productParams.Context = ctx

	product, err := g.api.Products.New(productParams)
	if err != nil {
		log.Err(err).Str("func", "*stripeGateway.CreateTestProduct").Msg("stripe rejected product")
		return models.TestProduct{}, mapStripeError("create product", err)
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(product.ID),
		UnitAmount: stripe.Int64(testProductAmountCents),
		Currency:   stripe.String(testProductCurrency),
	}
	priceParams.Context = ctx

	price, err := g.api.Prices.New(priceParams)
	if err != nil {
		log.Err(err).Str("func", "*stripeGateway.CreateTestProduct").Str("product_id", product.ID).Msg("stripe rejected price")
		return models.TestProduct{}, mapStripeError("create price", err)
	}

	return models.TestProduct{
		ProductID:   product.ID,
		PriceID:     price.ID,
		AmountCents: testProductAmountCents,
		Currency:    testProductCurrency,
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and reduces the event to
// a [models.WebhookEvent]. Events the marketplace does not react to come back
// with their raw type as Kind and an empty ObjectID.
func (g *stripeGateway) ParseWebhook(payload []byte, signature string) (models.WebhookEvent, error) {
	if g.webhookSecret == "" {
		return models.WebhookEvent{}, ErrWebhookSecretMissing
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return models.WebhookEvent{}, fmt.Errorf("%w: %w", ErrInvalidWebhook, err)
	}

	result := models.WebhookEvent{ID: event.ID, Kind: models.WebhookEventKind(event.Type)}
	if event.Data == nil {
		return result, nil
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionExpired:
		var session stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
			return models.WebhookEvent{}, fmt.Errorf("%w: decode checkout session: %w", ErrInvalidWebhook, err)
		}
		result.ObjectID = session.ID
		if session.PaymentIntent != nil {
			result.PaymentIntentID = session.PaymentIntent.ID
		}

	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
		var intent stripe.PaymentIntent
		if err = json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return models.WebhookEvent{}, fmt.Errorf("%w: decode payment intent: %w", ErrInvalidWebhook, err)
		}
		result.ObjectID = intent.ID

	case stripe.EventTypeChargeRefunded:
		var charge stripe.Charge
		if err = json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return models.WebhookEvent{}, fmt.Errorf("%w: decode charge: %w", ErrInvalidWebhook, err)
		}
		if charge.PaymentIntent != nil {
			result.ObjectID = charge.PaymentIntent.ID
		}
	}

	return result, nil
}
