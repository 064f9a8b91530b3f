// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/vm-marketplace/internal/app"
	"github.com/MKhiriev/vm-marketplace/internal/service"
	"github.com/MKhiriev/vm-marketplace/internal/utils"
	"github.com/MKhiriev/vm-marketplace/models"
)

const (
	stripeSignatureHeader = "Stripe-Signature"

	// maxWebhookBodyBytes bounds the event body as the stripe-go examples do.
	maxWebhookBodyBytes = 65536
)

type webhookResponse struct {
	Status string `json:"status"`
}

func (h *Handler) createTestProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.PaymentService.CreateTestProduct(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	var request models.CheckoutRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.services.PaymentService.CreateCheckoutSession(r.Context(), userID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	var request models.PaymentIntentRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	intent, err := h.services.PaymentService.CreatePaymentIntent(r.Context(), userID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, intent, http.StatusOK)
}

func (h *Handler) paymentStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	paymentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	status, err := h.services.PaymentService.GetPaymentStatus(r.Context(), userID, paymentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidWebhook, err))
		return
	}

	if err = h.services.PaymentService.HandleWebhook(r.Context(), payload, r.Header.Get(stripeSignatureHeader)); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, webhookResponse{Status: app.MsgWebhookProcessed}, http.StatusOK)
}
