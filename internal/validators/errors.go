// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidName     = errors.New("name must be between 2 and 50 characters")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
	ErrEmptyPassword   = errors.New("password is required")

	ErrEmptyVMName          = errors.New("name is required")
	ErrNegativePrice        = errors.New("price must be greater than or equal to 0")
	ErrInvalidSpecification = errors.New("cpu_cores, ram_gb and storage_gb must be greater than 0")
	ErrEmptyOSType          = errors.New("os_type is required")
	ErrEmptyImageType       = errors.New("image_type is required")
	ErrInvalidVMStatus      = errors.New("status must be one of available, sold, reserved, maintenance")
	ErrNoFieldsToUpdate     = errors.New("at least one field must be provided for update")

	ErrInvalidLimit      = errors.New("limit must be between 1 and 100")
	ErrInvalidSkip       = errors.New("skip is out of range")
	ErrInvalidPriceRange = errors.New("min_price must not exceed max_price")
	ErrNonFinitePrice    = errors.New("price must be a finite number")

	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter ISO code")
	ErrInvalidVMID     = errors.New("vm_id must be positive")
)

// ValidationError reports whether err is one of this package's rule
// violations.
func ValidationError(err error) bool {
	_, ok := RuleViolation(err)
	return ok
}

var ruleErrors = []error{
	ErrInvalidEmail, ErrInvalidName, ErrPasswordTooWeak, ErrEmptyPassword,
	ErrEmptyVMName, ErrNegativePrice, ErrInvalidSpecification, ErrEmptyOSType,
	ErrEmptyImageType, ErrInvalidVMStatus, ErrNoFieldsToUpdate,
	ErrInvalidLimit, ErrInvalidSkip, ErrInvalidPriceRange, ErrNonFinitePrice,
	ErrInvalidAmount, ErrInvalidCurrency, ErrInvalidVMID,
}

// RuleViolation returns the rule error wrapped in err, if any. Handlers use
// it to report the violated rule without the wrapping context.
func RuleViolation(err error) (error, bool) {
	for _, target := range ruleErrors {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}
