// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"math"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vm-marketplace/models"
)

// Placeholders are numbered in ascending order of first use so the same text
// binds positionally on both PostgreSQL and SQLite.
const (
	userColumns = `id, email, name, hashed_password, role, is_active, created_at, updated_at`

	createUser = `
		INSERT INTO users (email, name, hashed_password, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `;`

	findUserByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1;`

	findUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;`

	countUsers = `SELECT COUNT(*) FROM users;`

	vmColumns = `id, name, description, specifications, price, image_type, status, tags, created_at, updated_at`

	createVM = `
		INSERT INTO virtual_machines (name, description, specifications, price, image_type, status, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + vmColumns + `;`

	getVM = `
		SELECT ` + vmColumns + `
		FROM virtual_machines
		WHERE id = $1;`

	deleteVM = `DELETE FROM virtual_machines WHERE id = $1;`

	paymentColumns = `id, stripe_payment_id, stripe_payment_intent_id, amount, currency, status, user_id, created_at, updated_at`

	createPayment = `
		INSERT INTO payments (stripe_payment_id, stripe_payment_intent_id, amount, currency, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paymentColumns + `;`

	getUserPayment = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1 AND user_id = $2;`

	findPaymentByProcessorID = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE stripe_payment_id = $1 OR stripe_payment_intent_id = $1
		ORDER BY id
		LIMIT 1;`

	updatePaymentStatus = `
		UPDATE payments SET
			status                   = $1,
			stripe_payment_intent_id = COALESCE($2, stripe_payment_intent_id),
			updated_at               = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + paymentColumns + `;`

	countPayments = `SELECT COUNT(*) FROM payments;`

	revokeToken = `
		INSERT INTO revoked_tokens (jti, expires_at, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING;`

	isTokenRevoked = `SELECT COUNT(*) FROM revoked_tokens WHERE jti = $1;`

	deleteExpiredTokens = `DELETE FROM revoked_tokens WHERE expires_at < $1;`

	selectOne = `SELECT 1;`
)

// osTypeExpr extracts specifications.os_type in the given dialect.
func osTypeExpr(dialect Dialect) string {
	if dialect == DialectSQLite {
		return "json_extract(specifications, '$.os_type')"
	}
	return "specifications->>'os_type'"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into a case-folded LIKE pattern that
// matches the term literally anywhere in the value.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

func applyVMFilter(sel sq.SelectBuilder, dialect Dialect, filter models.VMFilter) sq.SelectBuilder {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		sel = sel.Where(sq.Or{
			sq.Expr(`LOWER(name) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(description) LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if filter.MinPrice != nil {
		sel = sel.Where(sq.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		sel = sel.Where(sq.LtOrEq{"price": *filter.MaxPrice})
	}
	if filter.OSType != "" {
		sel = sel.Where(sq.Eq{osTypeExpr(dialect): filter.OSType})
	}
	return sel
}

func buildListVMsQuery(dialect Dialect, filter models.VMFilter) (string, []any, error) {
	sel := statementBuilder(dialect).
		Select(vmColumns).
		From("virtual_machines")

	sel = applyVMFilter(sel, dialect, filter).OrderBy("id")

	// sqlite only accepts OFFSET after LIMIT
	if filter.Limit > 0 {
		sel = sel.Limit(filter.Limit)
		if filter.Skip > 0 {
			sel = sel.Offset(min(filter.Skip, math.MaxInt64))
		}
	}

	return sel.ToSql()
}

func buildCountVMsQuery(dialect Dialect, filter models.VMFilter) (string, []any, error) {
	sel := statementBuilder(dialect).
		Select("COUNT(*)").
		From("virtual_machines")

	return applyVMFilter(sel, dialect, filter).ToSql()
}

// buildUpdateVMQuery sets only the non-nil fields of update and returns the
// updated row.
func buildUpdateVMQuery(dialect Dialect, id int64, update models.VMUpdate, now time.Time) (string, []any, error) {
	upd := statementBuilder(dialect).Update("virtual_machines")

	if update.Name != nil {
		upd = upd.Set("name", *update.Name)
	}
	if update.Description != nil {
		upd = upd.Set("description", *update.Description)
	}
	if update.Specifications != nil {
		upd = upd.Set("specifications", *update.Specifications)
	}
	if update.Price != nil {
		upd = upd.Set("price", *update.Price)
	}
	if update.ImageType != nil {
		upd = upd.Set("image_type", *update.ImageType)
	}
	if update.Status != nil {
		upd = upd.Set("status", string(*update.Status))
	}
	if update.Tags != nil {
		upd = upd.Set("tags", *update.Tags)
	}

	return upd.
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + vmColumns).
		ToSql()
}
