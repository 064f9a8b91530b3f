// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MKhiriev/vm-marketplace/internal/adapter"
	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/store"
	"github.com/MKhiriev/vm-marketplace/internal/validators"
	"github.com/MKhiriev/vm-marketplace/models"
)

const (
	defaultProductName = "VM Deployment"
	defaultCurrency    = "usd"

	successPath = "/payment/success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/payment/cancel"
)

// webhookStatuses maps the processor events the marketplace reacts to onto
// the payment status they imply.
var webhookStatuses = map[models.WebhookEventKind]models.PaymentStatus{
	models.WebhookCheckoutCompleted: models.PaymentStatusCompleted,
	models.WebhookCheckoutExpired:   models.PaymentStatusFailed,
	models.WebhookPaymentSucceeded:  models.PaymentStatusCompleted,
	models.WebhookPaymentFailed:     models.PaymentStatusFailed,
	models.WebhookChargeRefunded:    models.PaymentStatusRefunded,
}

type paymentService struct {
	paymentRepository store.PaymentRepository
	vmRepository      store.VMRepository
	gateway           adapter.PaymentGateway
	validator         validators.Validator

	frontendURL string
	currency    string

	logger *logger.Logger
}

func NewPaymentService(
	paymentRepository store.PaymentRepository,
	vmRepository store.VMRepository,
	gateway adapter.PaymentGateway,
	cfg config.Payments,
	logger *logger.Logger,
) PaymentService {
	logger.Debug().Msg("creating payment service")

	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	return &paymentService{
		paymentRepository: paymentRepository,
		vmRepository:      vmRepository,
		gateway:           gateway,
		validator:         validators.NewMarketplaceValidator(),
		frontendURL:       strings.TrimRight(cfg.FrontendURL, "/"),
		currency:          currency,
		logger:            logger,
	}
}

// paymentDraft is a validated purchase ready to be sent to the processor.
type paymentDraft struct {
	amountCents int64
	currency    string
	productName string
	metadata    map[string]string
}

func (p *paymentService) CreateCheckoutSession(ctx context.Context, userID int64, request models.CheckoutRequest) (models.CheckoutResponse, error) {
	log := logger.FromContext(ctx)

	if err := p.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Msg("checkout request rejected")
		return models.CheckoutResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	draft, err := p.prepare(ctx, userID, request.Amount, request.Currency, request.VMID, request.Metadata)
	if err != nil {
		return models.CheckoutResponse{}, err
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, models.CheckoutSessionParams{
		AmountCents: draft.amountCents,
		Currency:    draft.currency,
		ProductName: draft.productName,
		SuccessURL:  p.frontendURL + successPath,
		CancelURL:   p.frontendURL + cancelPath,
		Metadata:    draft.metadata,
	})
	if err != nil {
		return models.CheckoutResponse{}, mapGatewayError(err)
	}

	payment, err := p.record(ctx, userID, session.ID, draft)
	if err != nil {
		return models.CheckoutResponse{}, err
	}

	log.Info().Int64("payment_id", payment.ID).Str("session_id", session.ID).Msg("checkout session created")
	return models.CheckoutResponse{
		SessionID: session.ID,
		PaymentID: payment.ID,
		URL:       session.URL,
	}, nil
}

func (p *paymentService) CreatePaymentIntent(ctx context.Context, userID int64, request models.PaymentIntentRequest) (models.PaymentIntentResponse, error) {
	log := logger.FromContext(ctx)

	if err := p.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Msg("payment intent request rejected")
		return models.PaymentIntentResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	draft, err := p.prepare(ctx, userID, request.Amount, request.Currency, request.VMID, request.Metadata)
	if err != nil {
		return models.PaymentIntentResponse{}, err
	}

	intent, err := p.gateway.CreatePaymentIntent(ctx, models.PaymentIntentParams{
		AmountCents: draft.amountCents,
		Currency:    draft.currency,
		Metadata:    draft.metadata,
	})
	if err != nil {
		return models.PaymentIntentResponse{}, mapGatewayError(err)
	}

	payment, err := p.record(ctx, userID, intent.ID, draft)
	if err != nil {
		return models.PaymentIntentResponse{}, err
	}

	log.Info().Int64("payment_id", payment.ID).Str("payment_intent_id", intent.ID).Msg("payment intent created")
	return models.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		PaymentID:    payment.ID,
		ID:           intent.ID,
	}, nil
}

func (p *paymentService) CreateTestProduct(ctx context.Context) (models.TestProductResponse, error) {
	product, err := p.gateway.CreateTestProduct(ctx)
	if err != nil {
		return models.TestProductResponse{}, mapGatewayError(err)
	}

	return models.TestProductResponse{
		ProductID: product.ProductID,
		PriceID:   product.PriceID,
		Amount:    product.AmountCents,
		Currency:  product.Currency,
	}, nil
}

// GetPaymentStatus returns the payment only if it belongs to userID.
func (p *paymentService) GetPaymentStatus(ctx context.Context, userID, paymentID int64) (models.PaymentStatusResponse, error) {
	payment, err := p.paymentRepository.GetUserPayment(ctx, userID, paymentID)
	if errors.Is(err, store.ErrPaymentNotFound) {
		return models.PaymentStatusResponse{}, ErrPaymentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("payment_id", paymentID).Msg("getting payment failed")
		return models.PaymentStatusResponse{}, fmt.Errorf("getting payment failed: %w", err)
	}

	return models.NewPaymentStatusResponse(payment), nil
}

func (p *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	log := logger.FromContext(ctx)

	event, err := p.gateway.ParseWebhook(payload, signature)
	switch {
	case errors.Is(err, adapter.ErrWebhookSecretMissing):
		log.Error().Msg("webhook received but no webhook secret is configured")
		return ErrWebhookNotConfigured
	case errors.Is(err, adapter.ErrInvalidWebhook):
		log.Warn().Err(err).Msg("webhook rejected")
		return fmt.Errorf("%w: %w", ErrInvalidWebhook, err)
	case err != nil:
		log.Err(err).Msg("webhook parsing failed")
		return fmt.Errorf("webhook parsing failed: %w", err)
	}

	log = &logger.Logger{Logger: log.With().Str("event_id", event.ID).Str("event_type", string(event.Kind)).Logger()}

	status, ok := webhookStatuses[event.Kind]
	if !ok {
		log.Info().Msg("webhook event ignored")
		return nil
	}
	if event.ObjectID == "" {
		log.Warn().Msg("webhook event carries no payment reference")
		return nil
	}

	payment, err := p.paymentRepository.FindPaymentByProcessorID(ctx, event.ObjectID)
	if errors.Is(err, store.ErrPaymentNotFound) {
		log.Warn().Str("object_id", event.ObjectID).Msg("webhook for unknown payment")
		return nil
	}
	if err != nil {
		log.Err(err).Str("object_id", event.ObjectID).Msg("payment lookup failed")
		return fmt.Errorf("payment lookup failed: %w", err)
	}

	if payment.Status == status {
		log.Debug().Int64("payment_id", payment.ID).Msg("payment already in target status")
		return nil
	}
	if !payment.Status.CanTransitionTo(status) {
		log.Warn().
			Int64("payment_id", payment.ID).
			Str("from", string(payment.Status)).
			Str("to", string(status)).
			Msg("payment status transition not allowed")
		return nil
	}

	updated, err := p.paymentRepository.UpdatePaymentStatus(ctx, payment.ID, payment.Status, status, event.PaymentIntentID)
	if errors.Is(err, store.ErrPaymentStatusConflict) {
		log.Warn().Int64("payment_id", payment.ID).Msg("payment status changed concurrently")
		return nil
	}
	if err != nil {
		log.Err(err).Int64("payment_id", payment.ID).Msg("payment status update failed")
		return fmt.Errorf("payment status update failed: %w", err)
	}

	log.Info().
		Int64("payment_id", updated.ID).
		Str("from", string(payment.Status)).
		Str("to", string(updated.Status)).
		Msg("payment status updated")
	return nil
}

// prepare resolves the optional listing, the amount and the currency of a
// purchase and builds the processor metadata.
func (p *paymentService) prepare(ctx context.Context, userID, amount int64, currency string, vmID *int64, metadata map[string]string) (paymentDraft, error) {
	draft := paymentDraft{
		amountCents: amount,
		currency:    strings.ToLower(currency),
		productName: defaultProductName,
		metadata:    make(map[string]string, len(metadata)+2),
	}
	if draft.currency == "" {
		draft.currency = p.currency
	}
	for k, v := range metadata {
		draft.metadata[k] = v
	}
	draft.metadata["user_id"] = strconv.FormatInt(userID, 10)

	if vmID != nil {
		vm, err := p.vmRepository.GetVM(ctx, *vmID)
		if errors.Is(err, store.ErrVMNotFound) {
			return paymentDraft{}, ErrVMNotFound
		}
		if err != nil {
			logger.FromContext(ctx).Err(err).Int64("vm_id", *vmID).Msg("getting vm for payment failed")
			return paymentDraft{}, fmt.Errorf("getting vm for payment failed: %w", err)
		}
		if vm.Status != models.VMStatusAvailable {
			return paymentDraft{}, ErrVMNotAvailable
		}

		draft.productName = vm.Name
		draft.metadata["vm_id"] = strconv.FormatInt(vm.ID, 10)
		if draft.amountCents == 0 {
			draft.amountCents = int64(math.Round(vm.Price * 100))
		}
	}

	if draft.amountCents <= 0 {
		return paymentDraft{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidAmount)
	}

	return draft, nil
}

// record mirrors a processor object as a pending payment.
func (p *paymentService) record(ctx context.Context, userID int64, processorID string, draft paymentDraft) (models.Payment, error) {
	payment, err := p.paymentRepository.CreatePayment(ctx, models.Payment{
		StripePaymentID: processorID,
		Amount:          float64(draft.amountCents) / 100,
		Currency:        draft.currency,
		Status:          models.PaymentStatusPending,
		UserID:          userID,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("processor_id", processorID).Msg("saving payment failed")
		return models.Payment{}, fmt.Errorf("saving payment failed: %w", err)
	}

	return payment, nil
}

func mapGatewayError(err error) error {
	if errors.Is(err, adapter.ErrGatewayNotConfigured) {
		return ErrPaymentsNotConfigured
	}
	return fmt.Errorf("%w: %w", ErrPaymentProviderFailure, err)
}
