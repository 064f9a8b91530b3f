// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest carries the credentials of POST /auth/login.
// The same values may arrive as form fields "username" and "password".
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the payload of POST /auth/refresh and the optional
// payload of POST /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RegisterResponse is returned by POST /auth/register.
type RegisterResponse struct {
	Message string `json:"message"`
	TokenResponse
}

// NewTokenResponse builds the bearer response for a token pair.
func NewTokenResponse(pair TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.Access.SignedString,
		RefreshToken: pair.Refresh.SignedString,
		TokenType:    "bearer",
	}
}

// MessageResponse is a generic {"message": "..."} body.
type MessageResponse struct {
	Message string `json:"message"`
}
