// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/vm-marketplace/internal/app"
	"github.com/MKhiriev/vm-marketplace/internal/service"
	"github.com/MKhiriev/vm-marketplace/internal/validators"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testTokenPair() models.TokenPair {
	return models.TokenPair{
		Access:  models.Token{SignedString: "new-access"},
		Refresh: models.Token{SignedString: "new-refresh"},
	}
}

// ── register ─────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	router, m := newTestRouter(t)
	request := models.RegisterRequest{Email: "new@example.com", Name: "New", Password: "password123"}
	user := models.User{ID: 3, Email: request.Email, Name: request.Name, Role: models.RoleUser, IsActive: true}

	m.auth.EXPECT().RegisterUser(gomock.Any(), request).Return(user, nil)
	m.auth.EXPECT().CreateTokens(gomock.Any(), user).Return(testTokenPair(), nil)

	rec := doRequest(router, http.MethodPost, "/auth/register",
		`{"email":"new@example.com","name":"New","password":"password123"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody[models.RegisterResponse](t, rec)
	assert.Equal(t, app.MsgUserRegistered, body.Message)
	assert.Equal(t, "new-access", body.AccessToken)
	assert.Equal(t, "new-refresh", body.RefreshToken)
	assert.Equal(t, "bearer", body.TokenType)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "duplicate email",
			serviceErr: service.ErrEmailAlreadyRegistered,
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgEmailAlreadyRegistered,
		},
		{
			name:       "weak password",
			serviceErr: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrPasswordTooWeak),
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: validators.ErrPasswordTooWeak.Error(),
		},
		{
			name:       "unexpected",
			serviceErr: fmt.Errorf("user creation ended with error: %w", assert.AnError),
			wantStatus: http.StatusInternalServerError,
			wantDetail: app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.serviceErr)

			rec := doRequest(router, http.MethodPost, "/auth/register",
				`{"email":"a@b.co","name":"Al","password":"x"}`, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/auth/register", `{"email":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidJSON, detailOf(t, rec))
}

// ── login ────────────────────────────────────────────────────────────────────

func TestLogin_JSON(t *testing.T) {
	router, m := newTestRouter(t)
	user := regularUser()

	m.auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Email: user.Email, Password: "password123"}).Return(user, nil)
	m.auth.EXPECT().CreateTokens(gomock.Any(), user).Return(testTokenPair(), nil)

	rec := doRequest(router, http.MethodPost, "/auth/login",
		`{"email":"user@example.com","password":"password123"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer new-access", rec.Header().Get("Authorization"))
	body := decodeBody[models.TokenResponse](t, rec)
	assert.Equal(t, "new-access", body.AccessToken)
	assert.Equal(t, "new-refresh", body.RefreshToken)
}

func TestLogin_Form(t *testing.T) {
	router, m := newTestRouter(t)
	user := regularUser()

	m.auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Email: user.Email, Password: "password123"}).Return(user, nil)
	m.auth.EXPECT().CreateTokens(gomock.Any(), user).Return(testTokenPair(), nil)

	form := url.Values{"username": {user.Email}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new-access", decodeBody[models.TokenResponse](t, rec).AccessToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInvalidCredentials)

	rec := doRequest(router, http.MethodPost, "/auth/login", `{"email":"x@y.z","password":"wrong-pass"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, app.MsgInvalidCredentials, detailOf(t, rec))
}

func TestLogin_InactiveUser(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInactiveUser)

	rec := doRequest(router, http.MethodPost, "/auth/login", `{"email":"x@y.z","password":"password123"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInactiveUser, detailOf(t, rec))
}

// ── me ───────────────────────────────────────────────────────────────────────

func TestMe_ReturnsCurrentUser(t *testing.T) {
	router, m := newTestRouter(t)
	user := regularUser()
	m.expectAuthenticated(user)

	rec := doRequest(router, http.MethodGet, "/auth/me", "", bearer())

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.User](t, rec)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestMe_Unauthenticated(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		setup      func(m *testMocks)
		wantStatus int
		wantDetail string
	}{
		{
			name:       "no header",
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgNotAuthenticated,
		},
		{
			name:       "wrong scheme",
			headers:    map[string]string{"Authorization": "Basic abc"},
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgNotAuthenticated,
		},
		{
			name:    "expired token",
			headers: bearer(),
			setup: func(m *testMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), testAccessToken, models.AccessToken).
					Return(models.Token{}, service.ErrTokenIsExpired)
			},
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgTokenIsExpired,
		},
		{
			name:    "revoked token",
			headers: bearer(),
			setup: func(m *testMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), testAccessToken, models.AccessToken).
					Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgCouldNotValidateCredentials,
		},
		{
			name:    "inactive user",
			headers: bearer(),
			setup: func(m *testMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), testAccessToken, models.AccessToken).
					Return(models.Token{Email: "x@y.z"}, nil)
				m.auth.EXPECT().CurrentUser(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInactiveUser)
			},
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgInactiveUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			rec := doRequest(router, http.MethodGet, "/auth/me", "", tt.headers)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

// ── refresh ──────────────────────────────────────────────────────────────────

func TestRefresh(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().Refresh(gomock.Any(), "old-refresh").Return(testTokenPair(), nil)

	rec := doRequest(router, http.MethodPost, "/auth/refresh", `{"refresh_token":"old-refresh"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new-refresh", decodeBody[models.TokenResponse](t, rec).RefreshToken)
}

func TestRefresh_RevokedToken(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().Refresh(gomock.Any(), "used").Return(models.TokenPair{}, service.ErrTokenIsExpiredOrInvalid)

	rec := doRequest(router, http.MethodPost, "/auth/refresh", `{"refresh_token":"used"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ── logout ───────────────────────────────────────────────────────────────────

func TestLogout_WithRefreshToken(t *testing.T) {
	router, m := newTestRouter(t)
	token := m.expectAuthenticated(regularUser())
	m.auth.EXPECT().Logout(gomock.Any(), token, "refresh-1").Return(nil)

	rec := doRequest(router, http.MethodPost, "/auth/logout", `{"refresh_token":"refresh-1"}`, bearer())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.MsgLoggedOut, decodeBody[models.MessageResponse](t, rec).Message)
}

func TestLogout_WithoutBody(t *testing.T) {
	router, m := newTestRouter(t)
	token := m.expectAuthenticated(regularUser())
	m.auth.EXPECT().Logout(gomock.Any(), token, "").Return(nil)

	rec := doRequest(router, http.MethodPost, "/auth/logout", "", bearer())

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/auth/logout", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
