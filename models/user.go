// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization level of a marketplace account.
type Role string

const (
	// RoleUser is the default role assigned on registration.
	RoleUser Role = "user"
	// RoleAdmin may create, update and delete VM listings.
	RoleAdmin Role = "admin"
)

// User represents a marketplace account.
// HashedPassword is never serialized.
type User struct {
	// ID is the server-assigned primary key.
	ID int64 `json:"id"`

	// Email is unique across all accounts and is used as the login.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// HashedPassword holds the bcrypt hash of the user's password.
	HashedPassword string `json:"-"`

	// Role distinguishes regular users from administrators.
	Role Role `json:"role"`

	// IsActive reports whether the account may authenticate.
	IsActive bool `json:"is_active"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
