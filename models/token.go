// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenClaims is the claim set carried by every issued JWT.
//
// The subject ("sub") is the user's email; ID ("jti") identifies the token
// for revocation.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Kind is the "typ" claim.
	Kind TokenKind `json:"typ"`
}

// Token wraps a signed JWT together with the values the server needs after
// verification.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Email is the subject of the token.
	Email string `json:"-"`

	// ID is the "jti" claim.
	ID string `json:"-"`

	Kind      TokenKind `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is returned by login, registration and refresh.
type TokenPair struct {
	Access  Token
	Refresh Token
}
