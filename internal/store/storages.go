// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
)

// Storages groups every repository of the server on one shared [DB].
type Storages struct {
	UserRepository    UserRepository
	VMRepository      VMRepository
	PaymentRepository PaymentRepository
	TokenRepository   TokenRepository
	HealthRepository  HealthRepository

	db *DB
}

// NewStorages initialises the storage layer:
//  1. opens the database selected by cfg.DB.DSN,
//  2. applies pending migrations via [DB.Migrate],
//  3. wires every repository to the connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB wires the repositories to an already migrated db.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		VMRepository:      NewVMRepository(db, log),
		PaymentRepository: NewPaymentRepository(db, log),
		TokenRepository:   NewTokenRepository(db, log),
		HealthRepository:  NewHealthRepository(db),
		db:                db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
