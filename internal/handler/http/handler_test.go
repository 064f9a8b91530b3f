// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/mock"
	"github.com/MKhiriev/vm-marketplace/internal/service"
	"github.com/MKhiriev/vm-marketplace/internal/utils"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAccessToken = "access.jwt.token"

type testMocks struct {
	auth        *mock.MockAuthService
	vms         *mock.MockVMService
	payments    *mock.MockPaymentService
	diagnostics *mock.MockDiagnosticsService
	info        *mock.MockAppInfoService
}

// newTestRouter builds the full router over gomock services.
func newTestRouter(t *testing.T) (*chi.Mux, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		auth:        mock.NewMockAuthService(ctrl),
		vms:         mock.NewMockVMService(ctrl),
		payments:    mock.NewMockPaymentService(ctrl),
		diagnostics: mock.NewMockDiagnosticsService(ctrl),
		info:        mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:        m.auth,
		VMService:          m.vms,
		PaymentService:     m.payments,
		DiagnosticsService: m.diagnostics,
		AppInfoService:     m.info,
	}

	cfg := config.Server{
		RequestTimeout:     5 * time.Second,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}

	return NewHandler(services, cfg, logger.Nop()).Init(), m
}

// newTestHandler returns a bare *Handler for middleware tests.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// expectAuthenticated makes the auth middleware accept testAccessToken as user.
func (m *testMocks) expectAuthenticated(user models.User) models.Token {
	token := models.Token{Email: user.Email, ID: "jti-access", Kind: models.AccessToken}
	m.auth.EXPECT().ParseToken(gomock.Any(), testAccessToken, models.AccessToken).Return(token, nil)
	m.auth.EXPECT().CurrentUser(gomock.Any(), token).Return(user, nil)
	return token
}

func regularUser() models.User {
	return models.User{ID: 7, Email: "user@example.com", Name: "User", Role: models.RoleUser, IsActive: true}
}

func adminUser() models.User {
	return models.User{ID: 1, Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin, IsActive: true}
}

func doRequest(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testAccessToken}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[utils.ErrorResponse](t, rec).Detail
}
