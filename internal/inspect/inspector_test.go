// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inspect

import (
	"bytes"
	"context"
	"testing"

	"github.com/MKhiriev/vm-marketplace/migrations"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestInspector opens an in-memory database migrated with the server's
// own schema.
func newTestInspector(t *testing.T) (*Inspector, *gorm.DB) {
	t.Helper()

	db, err := Open("sqlite://:memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migrations.Migrate(context.Background(), sqlDB, migrations.DialectSQLite)
	require.NoError(t, err)

	return NewInspector(db), db
}

func seed(t *testing.T, db *gorm.DB) (models.User, models.User) {
	t.Helper()

	alice := models.User{Email: "alice@example.com", Name: "Alice", HashedPassword: "x", Role: models.RoleUser, IsActive: true}
	bob := models.User{Email: "bob@example.com", Name: "Bob", HashedPassword: "x", Role: models.RoleUser, IsActive: true}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	vms := []models.VirtualMachine{
		{
			Name: "small", Price: 5, ImageType: "ubuntu", Status: models.VMStatusAvailable,
			Specifications: models.VMSpecifications{CPUCores: 1, RAMGB: 1, StorageGB: 10, OSType: "linux"},
			Tags:           models.Tags{"cheap"},
		},
		{
			Name: "big", Price: 50, ImageType: "windows", Status: models.VMStatusSold,
			Specifications: models.VMSpecifications{CPUCores: 8, RAMGB: 32, StorageGB: 500, OSType: "windows"},
			Tags:           models.Tags{},
		},
	}
	require.NoError(t, db.Create(&vms).Error)

	payments := []models.Payment{
		{StripePaymentID: "cs_1", Amount: 5, Currency: "usd", Status: models.PaymentStatusPending, UserID: alice.ID},
		{StripePaymentID: "cs_2", Amount: 50, Currency: "usd", Status: models.PaymentStatusCompleted, UserID: alice.ID},
		{StripePaymentID: "pi_3", Amount: 7, Currency: "eur", Status: models.PaymentStatusCompleted, UserID: bob.ID},
	}
	require.NoError(t, db.Create(&payments).Error)

	return alice, bob
}

// ─────────────────────────────────────────────────────────────────────────────

func TestOpen_UnsupportedDSN(t *testing.T) {
	_, err := Open("mysql://localhost/db")

	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestReport(t *testing.T) {
	inspector, db := newTestInspector(t)
	seed(t, db)

	report, err := inspector.Report(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "connected", report.Status)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Equal(t, 1, report.SelectOne)
	assert.Equal(t, int64(2), report.UserCount)
	assert.Equal(t, int64(3), report.PaymentCount)
}

func TestUsers(t *testing.T) {
	inspector, db := newTestInspector(t)
	seed(t, db)

	users, err := inspector.Users(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)
	assert.True(t, users[0].IsActive)
}

func TestVMs_StatusFilter(t *testing.T) {
	inspector, db := newTestInspector(t)
	seed(t, db)

	vms, err := inspector.VMs(context.Background(), VMFilter{Status: models.VMStatusAvailable})

	require.NoError(t, err)
	require.Len(t, vms, 1)
	assert.Equal(t, "small", vms[0].Name)
	assert.Equal(t, "linux", vms[0].Specifications.OSType)
	assert.Equal(t, models.Tags{"cheap"}, vms[0].Tags)
}

func TestPayments_Filters(t *testing.T) {
	inspector, db := newTestInspector(t)
	alice, _ := seed(t, db)
	ctx := context.Background()

	all, err := inspector.Payments(ctx, PaymentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "pi_3", all[0].StripePaymentID, "newest first")

	completed, err := inspector.Payments(ctx, PaymentFilter{Status: models.PaymentStatusCompleted, UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "cs_2", completed[0].StripePaymentID)
}

func TestPromote(t *testing.T) {
	inspector, db := newTestInspector(t)
	seed(t, db)
	ctx := context.Background()

	require.NoError(t, inspector.Promote(ctx, "bob@example.com"))

	var bob models.User
	require.NoError(t, db.Where("email = ?", "bob@example.com").First(&bob).Error)
	assert.True(t, bob.IsAdmin())
	assert.NotNil(t, bob.UpdatedAt)

	assert.ErrorIs(t, inspector.Promote(ctx, "nobody@example.com"), ErrUserNotFound)
}

func TestRenderers(t *testing.T) {
	inspector, db := newTestInspector(t)
	seed(t, db)
	ctx := context.Background()

	users, err := inspector.Users(ctx, 0)
	require.NoError(t, err)
	vms, err := inspector.VMs(ctx, VMFilter{})
	require.NoError(t, err)
	payments, err := inspector.Payments(ctx, PaymentFilter{})
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderUsers(&buf, users)
	RenderVMs(&buf, vms)
	RenderPayments(&buf, payments)

	out := buf.String()
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "small")
	assert.Contains(t, out, "cs_2")
	assert.Contains(t, out, "3 row(s)")
}
