// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// VMStatus is the availability state of a VM listing.
type VMStatus string

const (
	VMStatusAvailable   VMStatus = "available"
	VMStatusSold        VMStatus = "sold"
	VMStatusReserved    VMStatus = "reserved"
	VMStatusMaintenance VMStatus = "maintenance"
)

// VMStatuses lists every valid VMStatus.
var VMStatuses = []VMStatus{
	VMStatusAvailable,
	VMStatusSold,
	VMStatusReserved,
	VMStatusMaintenance,
}

// IsValid reports whether s is one of the known statuses.
func (s VMStatus) IsValid() bool {
	for _, status := range VMStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// VMSpecifications is the hardware description stored as a JSON blob
// alongside a listing.
type VMSpecifications struct {
	CPUCores  int    `json:"cpu_cores"`
	RAMGB     int    `json:"ram_gb"`
	StorageGB int    `json:"storage_gb"`
	OSType    string `json:"os_type"`
}

// Value implements [driver.Valuer] by encoding the specifications as JSON text.
func (s VMSpecifications) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements [sql.Scanner] for JSON and JSONB columns.
func (s *VMSpecifications) Scan(src any) error {
	return scanJSON(src, s)
}

// Tags is a list of free-form listing categories stored as a JSON array.
type Tags []string

// Value implements [driver.Valuer]. A nil list is stored as an empty array.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements [sql.Scanner] for JSON and JSONB columns.
func (t *Tags) Scan(src any) error {
	return scanJSON(src, t)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
}

// VirtualMachine is a marketplace listing.
type VirtualMachine struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Specifications VMSpecifications `json:"specifications"`
	Price          float64          `json:"price"`
	ImageType      string           `json:"image_type"`
	Status         VMStatus         `json:"status"`
	Tags           Tags             `json:"tags"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the VirtualMachine model.
func (vm VirtualMachine) TableName() string {
	return "virtual_machines"
}

// VMCreate is the payload of POST /vms.
type VMCreate struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Specifications VMSpecifications `json:"specifications"`
	Price          float64          `json:"price"`
	ImageType      string           `json:"image_type"`
	Tags           Tags             `json:"tags"`
}

// VMUpdate is the payload of PUT /vms/{id}.
// Only non-nil fields are applied.
type VMUpdate struct {
	Name           *string           `json:"name,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Specifications *VMSpecifications `json:"specifications,omitempty"`
	Price          *float64          `json:"price,omitempty"`
	ImageType      *string           `json:"image_type,omitempty"`
	Status         *VMStatus         `json:"status,omitempty"`
	Tags           *Tags             `json:"tags,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u VMUpdate) IsEmpty() bool {
	return u.Name == nil &&
		u.Description == nil &&
		u.Specifications == nil &&
		u.Price == nil &&
		u.ImageType == nil &&
		u.Status == nil &&
		u.Tags == nil
}

// VMFilter holds the query parameters of GET /vms.
type VMFilter struct {
	Skip     uint64
	Limit    uint64
	Search   string
	MinPrice *float64
	MaxPrice *float64
	OSType   string
}

// VMPage is a single page of listings plus the unpaginated total.
type VMPage struct {
	Items []VirtualMachine
	Total int64
}
