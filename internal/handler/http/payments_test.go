// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/MKhiriev/vm-marketplace/internal/app"
	"github.com/MKhiriev/vm-marketplace/internal/service"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── checkout / intent / product ──────────────────────────────────────────────

func TestCreateCheckoutSession(t *testing.T) {
	router, m := newTestRouter(t)
	user := regularUser()
	m.expectAuthenticated(user)
	vmID := int64(2)
	m.payments.EXPECT().CreateCheckoutSession(gomock.Any(), user.ID, models.CheckoutRequest{
		Amount: 1999, Currency: "usd", VMID: &vmID,
	}).Return(models.CheckoutResponse{SessionID: "cs_1", PaymentID: 11, URL: "https://checkout"}, nil)

	rec := doRequest(router, http.MethodPost, "/stripe/create-checkout-session",
		`{"amount":1999,"currency":"usd","vm_id":2}`, bearer())

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[models.CheckoutResponse](t, rec)
	assert.Equal(t, "cs_1", body.SessionID)
	assert.Equal(t, int64(11), body.PaymentID)
}

func TestCreateCheckoutSession_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{"vm sold", service.ErrVMNotAvailable, http.StatusBadRequest, app.MsgVMNotAvailable},
		{"vm missing", service.ErrVMNotFound, http.StatusNotFound, app.MsgVMNotFound},
		{"no stripe key", service.ErrPaymentsNotConfigured, http.StatusServiceUnavailable, app.MsgPaymentsNotConfigured},
		{
			"stripe down",
			fmt.Errorf("%w: %w", service.ErrPaymentProviderFailure, assert.AnError),
			http.StatusBadGateway,
			app.MsgPaymentProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			m.expectAuthenticated(regularUser())
			m.payments.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(models.CheckoutResponse{}, tt.serviceErr)

			rec := doRequest(router, http.MethodPost, "/stripe/create-checkout-session", `{"amount":100}`, bearer())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
		})
	}
}

func TestCreateCheckoutSession_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/stripe/create-checkout-session", `{"amount":100}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePaymentIntent(t *testing.T) {
	router, m := newTestRouter(t)
	user := regularUser()
	m.expectAuthenticated(user)
	m.payments.EXPECT().CreatePaymentIntent(gomock.Any(), user.ID, models.PaymentIntentRequest{Amount: 500}).
		Return(models.PaymentIntentResponse{ClientSecret: "pi_1_secret", PaymentID: 12, ID: "pi_1"}, nil)

	rec := doRequest(router, http.MethodPost, "/stripe/create-payment-intent", `{"amount":500}`, bearer())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pi_1_secret", decodeBody[models.PaymentIntentResponse](t, rec).ClientSecret)
}

func TestCreateTestProduct(t *testing.T) {
	router, m := newTestRouter(t)
	m.expectAuthenticated(regularUser())
	m.payments.EXPECT().CreateTestProduct(gomock.Any()).
		Return(models.TestProductResponse{ProductID: "prod_1", PriceID: "price_1", Amount: 1000, Currency: "usd"}, nil)

	rec := doRequest(router, http.MethodPost, "/stripe/create-test-product", "", bearer())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1000), decodeBody[models.TestProductResponse](t, rec).Amount)
}

// ── payment status ───────────────────────────────────────────────────────────

func TestPaymentStatus(t *testing.T) {
	router, m := newTestRouter(t)
	user := regularUser()
	m.expectAuthenticated(user)
	m.payments.EXPECT().GetPaymentStatus(gomock.Any(), user.ID, int64(11)).
		Return(models.PaymentStatusResponse{ID: 11, Status: models.PaymentStatusCompleted, Amount: 19.99, Currency: "usd"}, nil)

	rec := doRequest(router, http.MethodGet, "/stripe/payment-status/11", "", bearer())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PaymentStatusCompleted, decodeBody[models.PaymentStatusResponse](t, rec).Status)
}

func TestPaymentStatus_OtherUsersPayment(t *testing.T) {
	router, m := newTestRouter(t)
	user := regularUser()
	m.expectAuthenticated(user)
	m.payments.EXPECT().GetPaymentStatus(gomock.Any(), user.ID, int64(99)).
		Return(models.PaymentStatusResponse{}, service.ErrPaymentNotFound)

	rec := doRequest(router, http.MethodGet, "/stripe/payment-status/99", "", bearer())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgPaymentNotFound, detailOf(t, rec))
}

// ── webhook ──────────────────────────────────────────────────────────────────

const webhookBody = `{"id":"evt_1","type":"checkout.session.completed"}`

func TestStripeWebhook_Success(t *testing.T) {
	router, m := newTestRouter(t)
	m.payments.EXPECT().HandleWebhook(gomock.Any(), []byte(webhookBody), "t=1,v1=abc").Return(nil)

	rec := doRequest(router, http.MethodPost, "/stripe/webhook", webhookBody,
		map[string]string{stripeSignatureHeader: "t=1,v1=abc"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
}

func TestStripeWebhook_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{"bad signature", fmt.Errorf("%w: %w", service.ErrInvalidWebhook, assert.AnError), http.StatusBadRequest, app.MsgInvalidWebhook},
		{"no secret", service.ErrWebhookNotConfigured, http.StatusInternalServerError, app.MsgWebhookNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			m.payments.EXPECT().HandleWebhook(gomock.Any(), gomock.Any(), "").Return(tt.serviceErr)

			rec := doRequest(router, http.MethodPost, "/stripe/webhook", webhookBody, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
		})
	}
}

func TestStripeWebhook_BodyTooLarge(t *testing.T) {
	router, _ := newTestRouter(t)
	huge := `{"pad":"` + strings.Repeat("x", maxWebhookBodyBytes) + `"}`

	rec := doRequest(router, http.MethodPost, "/stripe/webhook", huge, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidWebhook, detailOf(t, rec))
}
