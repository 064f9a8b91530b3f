// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/service"
	"github.com/MKhiriev/vm-marketplace/internal/utils"
	"github.com/MKhiriev/vm-marketplace/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// as an access token via [service.AuthService.ParseToken], loads the account
// via [service.AuthService.CurrentUser] and stores the user, its ID and the
// token in the request context (see [utils.WithUser]).
//
// Rejections are written through writeError:
//   - missing or malformed header, bad or revoked token: 401 with
//     "WWW-Authenticate: Bearer";
//   - inactive account: 400.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString, models.AccessToken)
		if err != nil {
			writeError(w, r, err)
			return
		}

		user, err := h.services.AuthService.CurrentUser(ctx, token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Debug().Int64("user_id", user.ID).Msg("request authenticated")
		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user, token)))
	})
}

// adminOnly must run after auth. It rejects non-admin users with 403.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrNoUserInContext)
			return
		}

		if !user.IsAdmin() {
			writeError(w, r, service.ErrNotEnoughPermissions)
			return
		}

		next.ServeHTTP(w, r)
	})
}
