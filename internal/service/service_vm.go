// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/store"
	"github.com/MKhiriev/vm-marketplace/models"
)

// vmService implements VMService on top of a VMRepository. Input is assumed
// to be validated already; see NewVMValidationService.
type vmService struct {
	vmRepository store.VMRepository

	logger *logger.Logger
}

func NewVMService(vmRepository store.VMRepository, logger *logger.Logger) VMService {
	logger.Debug().Msg("creating vm service")

	return &vmService{
		vmRepository: vmRepository,
		logger:       logger,
	}
}

func (v *vmService) ListVMs(ctx context.Context, filter models.VMFilter) (models.VMPage, error) {
	log := logger.FromContext(ctx)

	page, err := v.vmRepository.ListVMs(ctx, filter)
	if err != nil {
		log.Err(err).Any("filter", filter).Msg("listing vms failed")
		return models.VMPage{}, fmt.Errorf("listing vms failed: %w", err)
	}

	return page, nil
}

func (v *vmService) GetVM(ctx context.Context, id int64) (models.VirtualMachine, error) {
	vm, err := v.vmRepository.GetVM(ctx, id)
	if err != nil {
		return models.VirtualMachine{}, v.mapError(ctx, id, "getting vm failed", err)
	}

	return vm, nil
}

func (v *vmService) CreateVM(ctx context.Context, vm models.VMCreate) (models.VirtualMachine, error) {
	created, err := v.vmRepository.CreateVM(ctx, models.VirtualMachine{
		Name:           vm.Name,
		Description:    vm.Description,
		Specifications: vm.Specifications,
		Price:          vm.Price,
		ImageType:      vm.ImageType,
		Status:         models.VMStatusAvailable,
		Tags:           vm.Tags,
	})
	if err != nil {
		return models.VirtualMachine{}, v.mapError(ctx, 0, "creating vm failed", err)
	}

	logger.FromContext(ctx).Info().Int64("vm_id", created.ID).Msg("vm created")
	return created, nil
}

func (v *vmService) UpdateVM(ctx context.Context, id int64, update models.VMUpdate) (models.VirtualMachine, error) {
	updated, err := v.vmRepository.UpdateVM(ctx, id, update)
	if err != nil {
		return models.VirtualMachine{}, v.mapError(ctx, id, "updating vm failed", err)
	}

	return updated, nil
}

func (v *vmService) DeleteVM(ctx context.Context, id int64) error {
	if err := v.vmRepository.DeleteVM(ctx, id); err != nil {
		return v.mapError(ctx, id, "deleting vm failed", err)
	}

	logger.FromContext(ctx).Info().Int64("vm_id", id).Msg("vm deleted")
	return nil
}

// mapError translates repository errors into service errors and logs the
// unexpected ones.
func (v *vmService) mapError(ctx context.Context, id int64, msg string, err error) error {
	switch {
	case errors.Is(err, store.ErrVMNotFound):
		return ErrVMNotFound
	case errors.Is(err, store.ErrConstraintViolation):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	logger.FromContext(ctx).Err(err).Int64("vm_id", id).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
