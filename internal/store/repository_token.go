// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
)

type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository] over "revoked_tokens".
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// RevokeToken records jti as revoked. Revoking the same jti twice is a no-op.
func (r *tokenRepository) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, revokeToken, jti, expiresAt.UTC(), time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.RevokeToken").Msg("error revoking token")
		return wrapDBError(err)
	}
	return nil
}

func (r *tokenRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, isTokenRevoked, jti).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.IsTokenRevoked").Msg("error checking revoked token")
		return false, wrapDBError(err)
	}
	return count > 0, nil
}

// DeleteExpiredTokens removes revocations whose token expired before now and
// returns how many rows were deleted.
func (r *tokenRepository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredTokens, now.UTC())
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.DeleteExpiredTokens").Msg("error deleting expired tokens")
		return 0, wrapDBError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.DeleteExpiredTokens").Msg("error reading affected rows")
		return 0, wrapDBError(err)
	}

	return deleted, nil
}
