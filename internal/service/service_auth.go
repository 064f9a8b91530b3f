// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/store"
	"github.com/MKhiriev/vm-marketplace/internal/utils"
	"github.com/MKhiriev/vm-marketplace/internal/validators"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and the JWT access and
// refresh token lifecycle, using bcrypt for password hashing and a
// TokenRepository for revocation.
type authService struct {
	userRepository  store.UserRepository
	tokenRepository store.TokenRepository
	validator       validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	tokenDuration        time.Duration
	refreshTokenDuration time.Duration

	// bcryptCost is the work factor of newly hashed passwords.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokenRepository store.TokenRepository, cfg config.App, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")

	return &authService{
		userRepository:       userRepository,
		tokenRepository:      tokenRepository,
		validator:            validators.NewMarketplaceValidator(),
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		tokenDuration:        cfg.TokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		bcryptCost:           cfg.BcryptCost,
		logger:               logger,
	}
}

// RegisterUser creates a new active account with the "user" role.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided wrapping the validation rule that failed.
//   - ErrEmailAlreadyRegistered if the email is taken.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	request.Email = strings.TrimSpace(request.Email)
	request.Name = strings.TrimSpace(request.Name)
	if err := a.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("email", request.Email).Msg("invalid registration data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := utils.HashPassword(request.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:          request.Email,
		Name:           request.Name,
		HashedPassword: hash,
		Role:           models.RoleUser,
		IsActive:       true,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Warn().Str("email", request.Email).Msg("email already registered")
		return models.User{}, ErrEmailAlreadyRegistered
	}
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Login authenticates an existing user.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials.
// A disabled account yields ErrInactiveUser.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	// a malformed email is looked up like any other and fails as unknown
	request.Email = strings.TrimSpace(request.Email)
	if err := a.validator.Validate(ctx, request, validators.FieldPassword); err != nil {
		log.Err(err).Str("email", request.Email).Msg("invalid login data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Warn().Str("email", request.Email).Msg("login attempt for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = utils.CheckPassword(user.HashedPassword, request.Password); err != nil {
		log.Warn().Int64("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Int64("user_id", user.ID).Msg("inactive user tried to log in")
		return models.User{}, ErrInactiveUser
	}

	return user, nil
}

// CreateTokens issues an access and a refresh token for user.
func (a *authService) CreateTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, models.AccessToken, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, models.RefreshToken, a.refreshTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseToken validates a raw JWT of the given kind.
//
// An expired token yields ErrTokenIsExpired. Every other failure (bad
// signature, wrong issuer or type, revoked jti) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string, kind models.TokenKind) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return models.Token{}, ErrTokenIsExpired
	}
	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if token.Kind != kind {
		log.Debug().Str("expected", string(kind)).Str("got", string(token.Kind)).Msg("unexpected token type")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	revoked, err := a.tokenRepository.IsTokenRevoked(ctx, token.ID)
	if err != nil {
		log.Err(err).Str("jti", token.ID).Msg("revocation check failed")
		return models.Token{}, fmt.Errorf("revocation check failed: %w", err)
	}
	if revoked {
		log.Debug().Str("jti", token.ID).Msg("revoked token presented")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// CurrentUser loads the account named by the token subject.
func (a *authService) CurrentUser(ctx context.Context, token models.Token) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, token.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Warn().Str("email", token.Email).Msg("token subject does not exist")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Str("email", token.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.IsActive {
		return models.User{}, ErrInactiveUser
	}

	return user, nil
}

// Refresh exchanges a refresh token for a new pair. The presented refresh
// token is revoked, so each one can be used once.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, refreshToken, models.RefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.CurrentUser(ctx, token)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err = a.tokenRepository.RevokeToken(ctx, token.ID, token.ExpiresAt); err != nil {
		log.Err(err).Str("jti", token.ID).Msg("refresh token revocation failed")
		return models.TokenPair{}, fmt.Errorf("refresh token revocation failed: %w", err)
	}

	return a.CreateTokens(ctx, user)
}

// Logout revokes the access token and, when one is supplied and belongs to
// the same subject, the refresh token. An unusable refresh token is ignored.
func (a *authService) Logout(ctx context.Context, accessToken models.Token, refreshToken string) error {
	log := logger.FromContext(ctx)

	if err := a.tokenRepository.RevokeToken(ctx, accessToken.ID, accessToken.ExpiresAt); err != nil {
		log.Err(err).Str("jti", accessToken.ID).Msg("access token revocation failed")
		return fmt.Errorf("access token revocation failed: %w", err)
	}

	if refreshToken == "" {
		return nil
	}

	refresh, err := a.ParseToken(ctx, refreshToken, models.RefreshToken)
	if err != nil || refresh.Email != accessToken.Email {
		log.Debug().Err(err).Msg("refresh token not revoked on logout")
		return nil
	}

	if err = a.tokenRepository.RevokeToken(ctx, refresh.ID, refresh.ExpiresAt); err != nil {
		log.Err(err).Str("jti", refresh.ID).Msg("refresh token revocation failed")
		return fmt.Errorf("refresh token revocation failed: %w", err)
	}

	return nil
}

// PurgeExpiredTokens drops revocation records of tokens that expired anyway.
func (a *authService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	deleted, err := a.tokenRepository.DeleteExpiredTokens(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("purging expired tokens failed: %w", err)
	}
	return deleted, nil
}
