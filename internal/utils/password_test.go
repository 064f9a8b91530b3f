// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPassword_InvalidCost(t *testing.T) {
	_, err := HashPassword("password", bcrypt.MaxCost+1)
	assert.Error(t, err)
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("right-password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.ErrorIs(t, CheckPassword(hash, "wrong-password"), ErrPasswordMismatch)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("not-a-bcrypt-hash", "password")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestNewID_IsUUIDv7(t *testing.T) {
	id, err := uuid.Parse(NewID())

	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
