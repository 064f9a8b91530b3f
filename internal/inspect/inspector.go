// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inspect

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/vm-marketplace/models"
	"gorm.io/gorm"
)

// DefaultLimit caps listings when the caller does not set a limit.
const DefaultLimit = 50

// PaymentFilter narrows the payments listing. Zero values match everything.
type PaymentFilter struct {
	Status models.PaymentStatus
	UserID int64
	Limit  int
}

// VMFilter narrows the VM listing. Zero values match everything.
type VMFilter struct {
	Status models.VMStatus
	Limit  int
}

type Inspector struct {
	db *gorm.DB
}

func NewInspector(db *gorm.DB) *Inspector {
	return &Inspector{db: db}
}

// Report checks connectivity and counts the main tables.
func (i *Inspector) Report(ctx context.Context) (models.DBReport, error) {
	db := i.db.WithContext(ctx)

	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		return models.DBReport{}, fmt.Errorf("select 1 failed: %w", err)
	}

	var users, payments int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return models.DBReport{}, fmt.Errorf("counting users failed: %w", err)
	}
	if err := db.Model(&models.Payment{}).Count(&payments).Error; err != nil {
		return models.DBReport{}, fmt.Errorf("counting payments failed: %w", err)
	}

	return models.DBReport{
		Status:       "connected",
		Driver:       i.db.Dialector.Name(),
		SelectOne:    one,
		UserCount:    users,
		PaymentCount: payments,
		Message:      "Database connection successful",
	}, nil
}

func (i *Inspector) Users(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := i.db.WithContext(ctx).
		Order("id").
		Limit(limitOrDefault(limit)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, nil
}

func (i *Inspector) VMs(ctx context.Context, filter VMFilter) ([]models.VirtualMachine, error) {
	query := i.db.WithContext(ctx).Order("id").Limit(limitOrDefault(filter.Limit))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var vms []models.VirtualMachine
	if err := query.Find(&vms).Error; err != nil {
		return nil, fmt.Errorf("listing vms failed: %w", err)
	}
	return vms, nil
}

// Payments lists payments newest first.
func (i *Inspector) Payments(ctx context.Context, filter PaymentFilter) ([]models.Payment, error) {
	query := i.db.WithContext(ctx).Order("id DESC").Limit(limitOrDefault(filter.Limit))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("listing payments failed: %w", err)
	}
	return payments, nil
}

// Promote grants the admin role to the user with the given email.
func (i *Inspector) Promote(ctx context.Context, email string) error {
	result := i.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"role":       models.RoleAdmin,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("promoting user failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
