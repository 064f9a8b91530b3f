// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of the marketplace: accounts and
// tokens, VM listings, payments and diagnostics. Services depend on the
// repository interfaces of package store and on the payment gateway of
// package adapter, never on concrete drivers.
package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/vm-marketplace/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateTokens(ctx context.Context, user models.User) (models.TokenPair, error)
	ParseToken(ctx context.Context, tokenString string, kind models.TokenKind) (models.Token, error)
	CurrentUser(ctx context.Context, token models.Token) (models.User, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, accessToken models.Token, refreshToken string) error
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type VMService interface {
	ListVMs(ctx context.Context, filter models.VMFilter) (models.VMPage, error)
	GetVM(ctx context.Context, id int64) (models.VirtualMachine, error)
	CreateVM(ctx context.Context, vm models.VMCreate) (models.VirtualMachine, error)
	UpdateVM(ctx context.Context, id int64, update models.VMUpdate) (models.VirtualMachine, error)
	DeleteVM(ctx context.Context, id int64) error
}

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, userID int64, request models.CheckoutRequest) (models.CheckoutResponse, error)
	CreatePaymentIntent(ctx context.Context, userID int64, request models.PaymentIntentRequest) (models.PaymentIntentResponse, error)
	CreateTestProduct(ctx context.Context) (models.TestProductResponse, error)
	GetPaymentStatus(ctx context.Context, userID, paymentID int64) (models.PaymentStatusResponse, error)

	// HandleWebhook verifies and applies one processor event. Events that
	// match no payment or request a disallowed transition are acknowledged.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type DiagnosticsService interface {
	CheckDatabase(ctx context.Context) (models.DBReport, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	WelcomeMessage(ctx context.Context) models.MessageResponse
}
