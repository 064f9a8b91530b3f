// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"math"
	"net/mail"
	"unicode/utf8"

	"github.com/MKhiriev/vm-marketplace/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldEmail targets the account email of registration and login.
	FieldEmail = "email"

	// FieldName targets the display name on registration and the listing
	// name of a VM.
	FieldName = "name"

	// FieldPassword targets the plaintext password. On registration it must
	// satisfy the length rule; on login it must only be present.
	FieldPassword = "password"

	FieldPrice          = "price"
	FieldSpecifications = "specifications"
	FieldImageType      = "image_type"
	FieldStatus         = "status"
	FieldUpdateFields   = "update_fields"

	FieldLimit      = "limit"
	FieldSkip       = "skip"
	FieldPriceRange = "price_range"

	FieldAmount   = "amount"
	FieldCurrency = "currency"
	FieldVMID     = "vm_id"
)

const (
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 8
	maxPageLimit      = 100
)

// MarketplaceValidator implements the Validator interface for the request
// models of the auth, VM listing and payment endpoints.
//
// It supports both value and pointer arguments for every model type and
// allows optional field-level scoping via variadic field name arguments.
type MarketplaceValidator struct {
}

// NewMarketplaceValidator constructs a new MarketplaceValidator
// and returns it as the Validator interface.
func NewMarketplaceValidator() Validator {
	return &MarketplaceValidator{}
}

// Validate dispatches validation to the appropriate type-specific method.
// Unknown types yield ErrUnsupportedType.
func (v *MarketplaceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.VMCreate:
		return v.validateVMCreate(value, fields...)
	case *models.VMCreate:
		return v.validateVMCreate(*value, fields...)

	case models.VMUpdate:
		return v.validateVMUpdate(value, fields...)
	case *models.VMUpdate:
		return v.validateVMUpdate(*value, fields...)

	case models.VMFilter:
		return v.validateVMFilter(value, fields...)
	case *models.VMFilter:
		return v.validateVMFilter(*value, fields...)

	case models.CheckoutRequest:
		return v.validatePaymentRequest(value.Amount, value.Currency, value.VMID, fields...)
	case *models.CheckoutRequest:
		return v.validatePaymentRequest(value.Amount, value.Currency, value.VMID, fields...)

	case models.PaymentIntentRequest:
		return v.validatePaymentRequest(value.Amount, value.Currency, value.VMID, fields...)
	case *models.PaymentIntentRequest:
		return v.validatePaymentRequest(value.Amount, value.Currency, value.VMID, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isValidName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= minNameLength && n <= maxNameLength
}

func (v *MarketplaceValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldName, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldName:
			// name is optional; when present it must fit the length bounds
			if request.Name != "" && !isValidName(request.Name) {
				return ErrInvalidName
			}
		case FieldPassword:
			if utf8.RuneCountInString(request.Password) < minPasswordLength {
				return ErrPasswordTooWeak
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MarketplaceValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateSpecifications(spec models.VMSpecifications) error {
	if spec.CPUCores <= 0 || spec.RAMGB <= 0 || spec.StorageGB <= 0 {
		return ErrInvalidSpecification
	}
	if spec.OSType == "" {
		return ErrEmptyOSType
	}
	return nil
}

func (v *MarketplaceValidator) validateVMCreate(vm models.VMCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPrice, FieldSpecifications, FieldImageType}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if vm.Name == "" {
				return ErrEmptyVMName
			}
		case FieldPrice:
			if vm.Price < 0 {
				return ErrNegativePrice
			}
		case FieldSpecifications:
			if err := validateSpecifications(vm.Specifications); err != nil {
				return err
			}
		case FieldImageType:
			if vm.ImageType == "" {
				return ErrEmptyImageType
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MarketplaceValidator) validateVMUpdate(update models.VMUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdateFields, FieldName, FieldPrice, FieldSpecifications, FieldImageType, FieldStatus}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdateFields:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if update.Name != nil && *update.Name == "" {
				return ErrEmptyVMName
			}
		case FieldPrice:
			if update.Price != nil && *update.Price < 0 {
				return ErrNegativePrice
			}
		case FieldSpecifications:
			if update.Specifications != nil {
				if err := validateSpecifications(*update.Specifications); err != nil {
					return err
				}
			}
		case FieldImageType:
			if update.ImageType != nil && *update.ImageType == "" {
				return ErrEmptyImageType
			}
		case FieldStatus:
			if update.Status != nil && !update.Status.IsValid() {
				return ErrInvalidVMStatus
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MarketplaceValidator) validateVMFilter(filter models.VMFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLimit, FieldSkip, FieldPriceRange}
	}

	for _, f := range fields {
		switch f {
		case FieldLimit:
			if filter.Limit < 1 || filter.Limit > maxPageLimit {
				return ErrInvalidLimit
			}
		case FieldSkip:
			// OFFSET is a signed 64-bit value on both dialects
			if filter.Skip > math.MaxInt64 {
				return ErrInvalidSkip
			}
		case FieldPriceRange:
			if !finite(filter.MinPrice) || !finite(filter.MaxPrice) {
				return ErrNonFinitePrice
			}
			if filter.MinPrice != nil && *filter.MinPrice < 0 {
				return ErrNegativePrice
			}
			if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
				return ErrNegativePrice
			}
			if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
				return ErrInvalidPriceRange
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func finite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

// validatePaymentRequest checks checkout and payment-intent requests.
// A zero amount is accepted only together with a vm_id, in which case the
// amount is derived from the listing price.
func (v *MarketplaceValidator) validatePaymentRequest(amount int64, currency string, vmID *int64, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAmount, FieldCurrency, FieldVMID}
	}

	for _, f := range fields {
		switch f {
		case FieldAmount:
			if amount < 0 || (amount == 0 && vmID == nil) {
				return ErrInvalidAmount
			}
		case FieldCurrency:
			if currency != "" && len(currency) != 3 {
				return ErrInvalidCurrency
			}
		case FieldVMID:
			if vmID != nil && *vmID <= 0 {
				return ErrInvalidVMID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
