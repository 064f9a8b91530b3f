// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/vm-marketplace/internal/app"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/service"
	"github.com/MKhiriev/vm-marketplace/internal/utils"
	"github.com/MKhiriev/vm-marketplace/internal/validators"
)

type errorResponse struct {
	target error
	status int
	detail string
}

// errorResponses is ordered: the first entry matching with errors.Is wins.
var errorResponses = []errorResponse{
	{ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidJSON},
	{ErrInvalidQueryParameter, http.StatusUnprocessableEntity, ""},
	{ErrInvalidPathParameter, http.StatusUnprocessableEntity, ""},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgNotAuthenticated},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgNotAuthenticated},
	{ErrNoUserInContext, http.StatusUnauthorized, app.MsgNotAuthenticated},

	{service.ErrInvalidDataProvided, http.StatusUnprocessableEntity, app.MsgInvalidDataProvided},
	{service.ErrEmailAlreadyRegistered, http.StatusBadRequest, app.MsgEmailAlreadyRegistered},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrInactiveUser, http.StatusBadRequest, app.MsgInactiveUser},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, app.MsgTokenIsExpired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgCouldNotValidateCredentials},
	{service.ErrNotEnoughPermissions, http.StatusForbidden, app.MsgNotEnoughPermissions},

	{service.ErrVMNotFound, http.StatusNotFound, app.MsgVMNotFound},
	{service.ErrVMNotAvailable, http.StatusBadRequest, app.MsgVMNotAvailable},

	{service.ErrPaymentNotFound, http.StatusNotFound, app.MsgPaymentNotFound},
	{service.ErrPaymentsNotConfigured, http.StatusServiceUnavailable, app.MsgPaymentsNotConfigured},
	{service.ErrPaymentProviderFailure, http.StatusBadGateway, app.MsgPaymentProviderFailure},
	{service.ErrWebhookNotConfigured, http.StatusInternalServerError, app.MsgWebhookNotConfigured},
	{service.ErrInvalidWebhook, http.StatusBadRequest, app.MsgInvalidWebhook},

	{service.ErrDatabaseUnavailable, http.StatusInternalServerError, app.MsgDatabaseUnavailable},
}

// statusFromError returns the HTTP status and the client-facing detail for
// err. Unknown errors become a generic 500.
func statusFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if !errors.Is(err, resp.target) {
			continue
		}

		detail := resp.detail
		if rule, ok := validators.RuleViolation(err); ok && resp.status == http.StatusUnprocessableEntity {
			detail = rule.Error()
		}
		if detail == "" {
			detail = err.Error()
		}
		return resp.status, detail
	}

	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err with the request logger and writes the mapped
// {"detail"} response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, detail := statusFromError(err)

	switch {
	case status >= http.StatusInternalServerError:
		log.Err(err).Int("status", status).Msg("request failed")
	default:
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.WriteError(w, detail, status)
}
