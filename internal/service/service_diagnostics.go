// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/store"
	"github.com/MKhiriev/vm-marketplace/models"
)

const (
	dbStatusConnected = "connected"
	dbReportMessage   = "Database connection successful"
)

type diagnosticsService struct {
	healthRepository  store.HealthRepository
	userRepository    store.UserRepository
	paymentRepository store.PaymentRepository

	logger *logger.Logger
}

func NewDiagnosticsService(
	healthRepository store.HealthRepository,
	userRepository store.UserRepository,
	paymentRepository store.PaymentRepository,
	logger *logger.Logger,
) DiagnosticsService {
	return &diagnosticsService{
		healthRepository:  healthRepository,
		userRepository:    userRepository,
		paymentRepository: paymentRepository,
		logger:            logger,
	}
}

// CheckDatabase pings the database, runs SELECT 1 and counts users and
// payments. Any failure is reported as ErrDatabaseUnavailable.
func (d *diagnosticsService) CheckDatabase(ctx context.Context) (models.DBReport, error) {
	log := logger.FromContext(ctx)

	if err := d.healthRepository.Ping(ctx); err != nil {
		log.Err(err).Msg("database ping failed")
		return models.DBReport{}, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	one, err := d.healthRepository.SelectOne(ctx)
	if err != nil {
		return models.DBReport{}, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	users, err := d.userRepository.CountUsers(ctx)
	if err != nil {
		log.Err(err).Msg("counting users failed")
		return models.DBReport{}, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	payments, err := d.paymentRepository.CountPayments(ctx)
	if err != nil {
		log.Err(err).Msg("counting payments failed")
		return models.DBReport{}, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	return models.DBReport{
		Status:       dbStatusConnected,
		Driver:       d.healthRepository.Driver(),
		SelectOne:    one,
		UserCount:    users,
		PaymentCount: payments,
		Message:      dbReportMessage,
	}, nil
}
