// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
)

type healthRepository struct {
	db *DB
}

// NewHealthRepository constructs a [HealthRepository] on the shared pool.
func NewHealthRepository(db *DB) HealthRepository {
	return &healthRepository{db: db}
}

func (r *healthRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*healthRepository.Ping").Msg("database ping failed")
		return wrapDBError(err)
	}
	return nil
}

func (r *healthRepository) SelectOne(ctx context.Context) (int, error) {
	var one int
	if err := r.db.QueryRowContext(ctx, selectOne).Scan(&one); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*healthRepository.SelectOne").Msg("SELECT 1 failed")
		return 0, wrapDBError(err)
	}
	return one, nil
}

// Driver returns the dialect name of the connection.
func (r *healthRepository) Driver() string {
	return string(r.db.dialect)
}
