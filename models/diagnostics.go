// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DBReport is the body of GET /test/test-db.
type DBReport struct {
	Status       string `json:"status"`
	Driver       string `json:"driver"`
	SelectOne    int    `json:"select_one"`
	UserCount    int64  `json:"user_count"`
	PaymentCount int64  `json:"payment_count"`
	Message      string `json:"message"`
}
