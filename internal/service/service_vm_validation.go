// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/validators"
	"github.com/MKhiriev/vm-marketplace/models"
)

// VMServiceWrapper defines middleware composition for VMService.
// Implementations wrap an existing VMService to add behavior such as
// logging or validating.
type VMServiceWrapper interface {
	Wrap(VMService) VMService // returns a decorated VMService applying additional behavior
}

// vmValidationService is a decorator that checks listing input before it
// reaches the wrapped VMService.
type vmValidationService struct {
	inner     VMService
	validator validators.Validator
}

type vmValidationWrapper struct {
	validator validators.Validator
}

// NewVMValidationService returns a wrapper whose Wrap method decorates a
// VMService with input validation. Rule violations are returned as
// ErrInvalidDataProvided wrapping the validators error.
func NewVMValidationService(validator validators.Validator) VMServiceWrapper {
	return &vmValidationWrapper{validator: validator}
}

func (w *vmValidationWrapper) Wrap(inner VMService) VMService {
	return &vmValidationService{
		inner:     inner,
		validator: w.validator,
	}
}

func (v *vmValidationService) ListVMs(ctx context.Context, filter models.VMFilter) (models.VMPage, error) {
	if err := v.validate(ctx, filter); err != nil {
		return models.VMPage{}, err
	}
	return v.inner.ListVMs(ctx, filter)
}

func (v *vmValidationService) GetVM(ctx context.Context, id int64) (models.VirtualMachine, error) {
	if id <= 0 {
		return models.VirtualMachine{}, ErrVMNotFound
	}
	return v.inner.GetVM(ctx, id)
}

func (v *vmValidationService) CreateVM(ctx context.Context, vm models.VMCreate) (models.VirtualMachine, error) {
	if err := v.validate(ctx, vm); err != nil {
		return models.VirtualMachine{}, err
	}
	return v.inner.CreateVM(ctx, vm)
}

func (v *vmValidationService) UpdateVM(ctx context.Context, id int64, update models.VMUpdate) (models.VirtualMachine, error) {
	if id <= 0 {
		return models.VirtualMachine{}, ErrVMNotFound
	}
	if err := v.validate(ctx, update); err != nil {
		return models.VirtualMachine{}, err
	}
	return v.inner.UpdateVM(ctx, id, update)
}

func (v *vmValidationService) DeleteVM(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrVMNotFound
	}
	return v.inner.DeleteVM(ctx, id)
}

func (v *vmValidationService) validate(ctx context.Context, obj any) error {
	if err := v.validator.Validate(ctx, obj); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("vm input rejected")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
