// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package inspect gives operators a read-mostly view of the marketplace
// database for the vmmarketctl command. It talks to the same schema as the
// server through gorm, so it works against PostgreSQL and SQLite alike, and
// renders results as lipgloss tables.
package inspect
