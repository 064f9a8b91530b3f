// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func validVMCreate() models.VMCreate {
	return models.VMCreate{
		Name:        "Ubuntu Small",
		Description: "2 vCPU general purpose",
		Specifications: models.VMSpecifications{
			CPUCores:  2,
			RAMGB:     4,
			StorageGB: 40,
			OSType:    "ubuntu",
		},
		Price:     9.99,
		ImageType: "qcow2",
		Tags:      models.Tags{"linux"},
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestNewMarketplaceValidator(t *testing.T) {
	v := NewMarketplaceValidator()
	require.NotNil(t, v)
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewMarketplaceValidator()
	ctx := context.Background()

	vm := validVMCreate()
	register := models.RegisterRequest{Email: "ada@example.com", Password: "password1"}
	login := models.LoginRequest{Email: "ada@example.com", Password: "x"}
	filter := models.VMFilter{Limit: 10}
	update := models.VMUpdate{Name: ptr("renamed")}
	checkout := models.CheckoutRequest{Amount: 1000}
	intent := models.PaymentIntentRequest{Amount: 1000}

	for _, obj := range []any{
		vm, &vm, register, &register, login, &login, filter, &filter,
		update, &update, checkout, &checkout, intent, &intent,
	} {
		t.Run(fmt.Sprintf("%T", obj), func(t *testing.T) {
			assert.NoError(t, v.Validate(ctx, obj))
		})
	}

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	v := NewMarketplaceValidator()

	err := v.Validate(context.Background(), validVMCreate(), "no-such-field")

	assert.ErrorIs(t, err, ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Auth requests
// ---------------------------------------------------------------------------

func TestValidate_RegisterRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr error
	}{
		{name: "valid", req: models.RegisterRequest{Email: "ada@example.com", Name: "Ada", Password: "12345678"}},
		{name: "name optional", req: models.RegisterRequest{Email: "ada@example.com", Password: "12345678"}},
		{name: "bad email", req: models.RegisterRequest{Email: "not-an-email", Password: "12345678"}, wantErr: ErrInvalidEmail},
		{name: "display-name email", req: models.RegisterRequest{Email: "Ada <ada@example.com>", Password: "12345678"}, wantErr: ErrInvalidEmail},
		{name: "empty email", req: models.RegisterRequest{Password: "12345678"}, wantErr: ErrInvalidEmail},
		{name: "short name", req: models.RegisterRequest{Email: "ada@example.com", Name: "A", Password: "12345678"}, wantErr: ErrInvalidName},
		{name: "long name", req: models.RegisterRequest{Email: "ada@example.com", Name: string(make([]byte, 51)), Password: "12345678"}, wantErr: ErrInvalidName},
		{name: "short password", req: models.RegisterRequest{Email: "ada@example.com", Password: "1234567"}, wantErr: ErrPasswordTooWeak},
	}

	v := NewMarketplaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_LoginRequest(t *testing.T) {
	v := NewMarketplaceValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "bad", Password: "x"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "ada@example.com"}), ErrEmptyPassword)
	// short passwords are not rejected on login
	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "ada@example.com", Password: "x"}))
}

// ---------------------------------------------------------------------------
// VM listings
// ---------------------------------------------------------------------------

func TestValidate_VMCreate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(vm *models.VMCreate)
		wantErr error
	}{
		{name: "valid", mutate: func(vm *models.VMCreate) {}},
		{name: "free listing", mutate: func(vm *models.VMCreate) { vm.Price = 0 }},
		{name: "empty name", mutate: func(vm *models.VMCreate) { vm.Name = "" }, wantErr: ErrEmptyVMName},
		{name: "negative price", mutate: func(vm *models.VMCreate) { vm.Price = -1 }, wantErr: ErrNegativePrice},
		{name: "zero cpu", mutate: func(vm *models.VMCreate) { vm.Specifications.CPUCores = 0 }, wantErr: ErrInvalidSpecification},
		{name: "zero ram", mutate: func(vm *models.VMCreate) { vm.Specifications.RAMGB = 0 }, wantErr: ErrInvalidSpecification},
		{name: "zero storage", mutate: func(vm *models.VMCreate) { vm.Specifications.StorageGB = 0 }, wantErr: ErrInvalidSpecification},
		{name: "empty os", mutate: func(vm *models.VMCreate) { vm.Specifications.OSType = "" }, wantErr: ErrEmptyOSType},
		{name: "empty image", mutate: func(vm *models.VMCreate) { vm.ImageType = "" }, wantErr: ErrEmptyImageType},
	}

	v := NewMarketplaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := validVMCreate()
			tt.mutate(&vm)

			err := v.Validate(context.Background(), &vm)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_VMUpdate(t *testing.T) {
	tests := []struct {
		name    string
		update  models.VMUpdate
		wantErr error
	}{
		{name: "name only", update: models.VMUpdate{Name: ptr("new")}},
		{name: "status only", update: models.VMUpdate{Status: ptr(models.VMStatusSold)}},
		{name: "empty update", update: models.VMUpdate{}, wantErr: ErrNoFieldsToUpdate},
		{name: "blank name", update: models.VMUpdate{Name: ptr("")}, wantErr: ErrEmptyVMName},
		{name: "negative price", update: models.VMUpdate{Price: ptr(-0.5)}, wantErr: ErrNegativePrice},
		{name: "bad status", update: models.VMUpdate{Status: ptr(models.VMStatus("gone"))}, wantErr: ErrInvalidVMStatus},
		{name: "bad specs", update: models.VMUpdate{Specifications: &models.VMSpecifications{CPUCores: 1}}, wantErr: ErrInvalidSpecification},
		{name: "blank image", update: models.VMUpdate{ImageType: ptr("")}, wantErr: ErrEmptyImageType},
	}

	v := NewMarketplaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.update)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_VMFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  models.VMFilter
		wantErr error
	}{
		{name: "defaults", filter: models.VMFilter{Limit: 10}},
		{name: "max limit", filter: models.VMFilter{Limit: 100}},
		{name: "equal bounds", filter: models.VMFilter{Limit: 10, MinPrice: ptr(5.0), MaxPrice: ptr(5.0)}},
		{name: "zero limit", filter: models.VMFilter{Limit: 0}, wantErr: ErrInvalidLimit},
		{name: "limit too big", filter: models.VMFilter{Limit: 101}, wantErr: ErrInvalidLimit},
		{name: "inverted range", filter: models.VMFilter{Limit: 10, MinPrice: ptr(20.0), MaxPrice: ptr(10.0)}, wantErr: ErrInvalidPriceRange},
		{name: "negative min", filter: models.VMFilter{Limit: 10, MinPrice: ptr(-1.0)}, wantErr: ErrNegativePrice},
		{name: "max signed skip", filter: models.VMFilter{Limit: 10, Skip: math.MaxInt64}},
		{name: "skip beyond int64", filter: models.VMFilter{Limit: 10, Skip: math.MaxInt64 + 1}, wantErr: ErrInvalidSkip},
		{name: "NaN min", filter: models.VMFilter{Limit: 10, MinPrice: ptr(math.NaN())}, wantErr: ErrNonFinitePrice},
		{name: "infinite max", filter: models.VMFilter{Limit: 10, MaxPrice: ptr(math.Inf(1))}, wantErr: ErrNonFinitePrice},
	}

	v := NewMarketplaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.filter)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

func TestValidate_CheckoutRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CheckoutRequest
		wantErr error
	}{
		{name: "amount only", req: models.CheckoutRequest{Amount: 1000, Currency: "usd"}},
		{name: "vm derives amount", req: models.CheckoutRequest{VMID: ptr(int64(3))}},
		{name: "zero amount without vm", req: models.CheckoutRequest{}, wantErr: ErrInvalidAmount},
		{name: "negative amount", req: models.CheckoutRequest{Amount: -5}, wantErr: ErrInvalidAmount},
		{name: "bad currency", req: models.CheckoutRequest{Amount: 1, Currency: "dollars"}, wantErr: ErrInvalidCurrency},
		{name: "bad vm id", req: models.CheckoutRequest{Amount: 1, VMID: ptr(int64(0))}, wantErr: ErrInvalidVMID},
	}

	v := NewMarketplaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidationError(t *testing.T) {
	assert.True(t, ValidationError(ErrInvalidEmail))
	assert.True(t, ValidationError(fmt.Errorf("wrapped: %w", ErrInvalidPriceRange)))
	assert.False(t, ValidationError(ErrUnsupportedType))
	assert.False(t, ValidationError(errors.New("other")))
	assert.False(t, ValidationError(nil))
}

func TestRuleViolation(t *testing.T) {
	rule, ok := RuleViolation(fmt.Errorf("invalid data provided: %w", ErrPasswordTooWeak))
	assert.True(t, ok)
	assert.Equal(t, ErrPasswordTooWeak, rule)

	rule, ok = RuleViolation(errors.New("other"))
	assert.False(t, ok)
	assert.Nil(t, rule)
}
