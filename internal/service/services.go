// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/adapter"
	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/store"
	"github.com/MKhiriev/vm-marketplace/internal/validators"
)

// Services bundles every service the transport layer depends on.
type Services struct {
	AuthService        AuthService
	VMService          VMService
	PaymentService     PaymentService
	DiagnosticsService DiagnosticsService
	AppInfoService     AppInfoService
}

func NewServices(storages *store.Storages, gateway adapter.PaymentGateway, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	vmService := NewVMValidationService(validators.NewMarketplaceValidator()).
		Wrap(NewVMService(storages.VMRepository, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.TokenRepository, cfg.App, logger),
		VMService:      vmService,
		PaymentService: NewPaymentService(storages.PaymentRepository, storages.VMRepository, gateway, cfg.Payments, logger),
		DiagnosticsService: NewDiagnosticsService(
			storages.HealthRepository,
			storages.UserRepository,
			storages.PaymentRepository,
			logger,
		),
		AppInfoService: appInfoService,
	}, nil
}
