// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/mock"
	"github.com/MKhiriev/vm-marketplace/internal/store"
	"github.com/MKhiriev/vm-marketplace/internal/validators"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestVMService(t *testing.T) (VMService, *mock.MockVMRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVMRepository(ctrl)

	svc := NewVMValidationService(validators.NewMarketplaceValidator()).
		Wrap(NewVMService(repo, logger.Nop()))

	return svc, repo
}

func validVMCreate() models.VMCreate {
	return models.VMCreate{
		Name:        "Ubuntu Small",
		Description: "2 vCPU box",
		Specifications: models.VMSpecifications{
			CPUCores: 2, RAMGB: 4, StorageGB: 40, OSType: "linux",
		},
		Price:     9.99,
		ImageType: "ubuntu-22.04",
		Tags:      models.Tags{"small"},
	}
}

func floatPtr(v float64) *float64 { return &v }

// ── ListVMs ──────────────────────────────────────────────────────────────────

func TestVMService_ListVMs_PassesFilter(t *testing.T) {
	svc, repo := newTestVMService(t)
	filter := models.VMFilter{Limit: 10, Search: "ubuntu", MinPrice: floatPtr(5), MaxPrice: floatPtr(20)}
	page := models.VMPage{Items: []models.VirtualMachine{{ID: 1}}, Total: 1}

	repo.EXPECT().ListVMs(gomock.Any(), filter).Return(page, nil)

	got, err := svc.ListVMs(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, page, got)
}

func TestVMService_ListVMs_RejectsInvalidFilters(t *testing.T) {
	tests := []struct {
		name    string
		filter  models.VMFilter
		wantErr error
	}{
		{name: "zero limit", filter: models.VMFilter{}, wantErr: validators.ErrInvalidLimit},
		{name: "limit above 100", filter: models.VMFilter{Limit: 101}, wantErr: validators.ErrInvalidLimit},
		{
			name:    "inverted price range",
			filter:  models.VMFilter{Limit: 10, MinPrice: floatPtr(50), MaxPrice: floatPtr(10)},
			wantErr: validators.ErrInvalidPriceRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestVMService(t)

			_, err := svc.ListVMs(context.Background(), tt.filter)

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVMService_ListVMs_RepositoryError(t *testing.T) {
	svc, repo := newTestVMService(t)
	repo.EXPECT().ListVMs(gomock.Any(), gomock.Any()).Return(models.VMPage{}, errors.New("boom"))

	_, err := svc.ListVMs(context.Background(), models.VMFilter{Limit: 10})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing vms failed")
}

// ── GetVM ────────────────────────────────────────────────────────────────────

func TestVMService_GetVM(t *testing.T) {
	svc, repo := newTestVMService(t)
	repo.EXPECT().GetVM(gomock.Any(), int64(4)).Return(models.VirtualMachine{ID: 4, Name: "x"}, nil)

	vm, err := svc.GetVM(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "x", vm.Name)
}

func TestVMService_GetVM_NotFound(t *testing.T) {
	svc, repo := newTestVMService(t)
	repo.EXPECT().GetVM(gomock.Any(), int64(404)).Return(models.VirtualMachine{}, store.ErrVMNotFound)

	_, err := svc.GetVM(context.Background(), 404)

	assert.ErrorIs(t, err, ErrVMNotFound)
}

func TestVMService_NonPositiveID_NotFoundWithoutQuery(t *testing.T) {
	svc, _ := newTestVMService(t)
	ctx := context.Background()

	_, err := svc.GetVM(ctx, 0)
	assert.ErrorIs(t, err, ErrVMNotFound)

	_, err = svc.UpdateVM(ctx, -1, models.VMUpdate{Name: ptrTo("n")})
	assert.ErrorIs(t, err, ErrVMNotFound)

	assert.ErrorIs(t, svc.DeleteVM(ctx, 0), ErrVMNotFound)
}

// ── CreateVM ─────────────────────────────────────────────────────────────────

func TestVMService_CreateVM_Success(t *testing.T) {
	svc, repo := newTestVMService(t)
	in := validVMCreate()

	repo.EXPECT().CreateVM(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, vm models.VirtualMachine) (models.VirtualMachine, error) {
			assert.Equal(t, in.Name, vm.Name)
			assert.Equal(t, in.Specifications, vm.Specifications)
			assert.Equal(t, models.VMStatusAvailable, vm.Status)
			vm.ID = 12
			return vm, nil
		},
	)

	vm, err := svc.CreateVM(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(12), vm.ID)
}

func TestVMService_CreateVM_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.VMCreate)
		wantErr error
	}{
		{name: "empty name", mutate: func(v *models.VMCreate) { v.Name = "" }, wantErr: validators.ErrEmptyVMName},
		{name: "negative price", mutate: func(v *models.VMCreate) { v.Price = -1 }, wantErr: validators.ErrNegativePrice},
		{name: "zero cpu", mutate: func(v *models.VMCreate) { v.Specifications.CPUCores = 0 }, wantErr: validators.ErrInvalidSpecification},
		{name: "no os", mutate: func(v *models.VMCreate) { v.Specifications.OSType = "" }, wantErr: validators.ErrEmptyOSType},
		{name: "no image", mutate: func(v *models.VMCreate) { v.ImageType = "" }, wantErr: validators.ErrEmptyImageType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestVMService(t)
			in := validVMCreate()
			tt.mutate(&in)

			_, err := svc.CreateVM(context.Background(), in)

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVMService_CreateVM_ConstraintViolation(t *testing.T) {
	svc, repo := newTestVMService(t)
	repo.EXPECT().CreateVM(gomock.Any(), gomock.Any()).Return(models.VirtualMachine{}, store.ErrConstraintViolation)

	_, err := svc.CreateVM(context.Background(), validVMCreate())

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── UpdateVM ─────────────────────────────────────────────────────────────────

func ptrTo[T any](v T) *T { return &v }

func TestVMService_UpdateVM_Partial(t *testing.T) {
	svc, repo := newTestVMService(t)
	update := models.VMUpdate{Price: floatPtr(19.5), Status: ptrTo(models.VMStatusSold)}

	repo.EXPECT().UpdateVM(gomock.Any(), int64(3), update).
		Return(models.VirtualMachine{ID: 3, Price: 19.5, Status: models.VMStatusSold}, nil)

	vm, err := svc.UpdateVM(context.Background(), 3, update)

	require.NoError(t, err)
	assert.Equal(t, models.VMStatusSold, vm.Status)
}

func TestVMService_UpdateVM_Validation(t *testing.T) {
	tests := []struct {
		name    string
		update  models.VMUpdate
		wantErr error
	}{
		{name: "empty update", update: models.VMUpdate{}, wantErr: validators.ErrNoFieldsToUpdate},
		{name: "bad status", update: models.VMUpdate{Status: ptrTo(models.VMStatus("gone"))}, wantErr: validators.ErrInvalidVMStatus},
		{name: "blank name", update: models.VMUpdate{Name: ptrTo("")}, wantErr: validators.ErrEmptyVMName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestVMService(t)

			_, err := svc.UpdateVM(context.Background(), 1, tt.update)

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVMService_UpdateVM_NotFound(t *testing.T) {
	svc, repo := newTestVMService(t)
	repo.EXPECT().UpdateVM(gomock.Any(), int64(9), gomock.Any()).Return(models.VirtualMachine{}, store.ErrVMNotFound)

	_, err := svc.UpdateVM(context.Background(), 9, models.VMUpdate{Name: ptrTo("n")})

	assert.ErrorIs(t, err, ErrVMNotFound)
}

// ── DeleteVM ─────────────────────────────────────────────────────────────────

func TestVMService_DeleteVM(t *testing.T) {
	svc, repo := newTestVMService(t)
	repo.EXPECT().DeleteVM(gomock.Any(), int64(5)).Return(nil)

	require.NoError(t, svc.DeleteVM(context.Background(), 5))
}

func TestVMService_DeleteVM_NotFound(t *testing.T) {
	svc, repo := newTestVMService(t)
	repo.EXPECT().DeleteVM(gomock.Any(), int64(5)).Return(store.ErrVMNotFound)

	assert.ErrorIs(t, svc.DeleteVM(context.Background(), 5), ErrVMNotFound)
}

func TestVMService_DeleteVM_UnexpectedError(t *testing.T) {
	svc, repo := newTestVMService(t)
	dbErr := errors.New("disk full")
	repo.EXPECT().DeleteVM(gomock.Any(), int64(5)).Return(dbErr)

	err := svc.DeleteVM(context.Background(), 5)

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrVMNotFound)
}
