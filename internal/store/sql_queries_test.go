// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vm-marketplace/models"
)

func ptr[T any](v T) *T { return &v }

func Test_buildListVMsQuery_NoFilter(t *testing.T) {
	query, args, err := buildListVMsQuery(DialectPostgres, models.VMFilter{Limit: 10})
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.NotContains(t, strings.ToUpper(query), "WHERE")
	assert.Contains(t, query, "FROM virtual_machines")
	assert.Contains(t, query, "ORDER BY id LIMIT 10")
	assert.NotContains(t, query, "OFFSET")
}

func Test_buildListVMsQuery_OffsetClampedToInt64(t *testing.T) {
	query, _, err := buildListVMsQuery(DialectSQLite, models.VMFilter{Limit: 10, Skip: math.MaxUint64})
	require.NoError(t, err)

	assert.Contains(t, query, "LIMIT 10 OFFSET 9223372036854775807")
}

func Test_buildListVMsQuery(t *testing.T) {
	tests := []struct {
		name       string
		dialect    Dialect
		filter     models.VMFilter
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:    "postgres: every filter",
			dialect: DialectPostgres,
			filter: models.VMFilter{
				Skip:     20,
				Limit:    5,
				Search:   "Web",
				MinPrice: ptr(1.5),
				MaxPrice: ptr(9.0),
				OSType:   "ubuntu",
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, `(LOWER(name) LIKE $1 ESCAPE '\' OR LOWER(description) LIKE $2 ESCAPE '\')`)
				assert.Contains(t, query, "price >= $3")
				assert.Contains(t, query, "price <= $4")
				assert.Contains(t, query, "specifications->>'os_type' = $5")
				assert.Contains(t, query, "LIMIT 5 OFFSET 20")
				assert.Equal(t, []any{"%web%", "%web%", 1.5, 9.0, "ubuntu"}, args)
			},
		},
		{
			name:    "sqlite: question placeholders and json_extract",
			dialect: DialectSQLite,
			filter:  models.VMFilter{Limit: 10, OSType: "debian"},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, "json_extract(specifications, '$.os_type') = ?")
				assert.NotContains(t, query, "$1")
				assert.Equal(t, []any{"debian"}, args)
			},
		},
		{
			name:    "search wildcards are escaped",
			dialect: DialectPostgres,
			filter:  models.VMFilter{Limit: 10, Search: `50%_off\`},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Len(t, args, 2)
				assert.Equal(t, `%50\%\_off\\%`, args[0])
			},
		},
		{
			name:    "blank search is ignored",
			dialect: DialectPostgres,
			filter:  models.VMFilter{Limit: 10, Search: "   "},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.NotContains(t, query, "LIKE")
				assert.Empty(t, args)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListVMsQuery(tt.dialect, tt.filter)
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func Test_buildCountVMsQuery_SharesFilter(t *testing.T) {
	filter := models.VMFilter{Skip: 3, Limit: 2, MaxPrice: ptr(5.0)}

	query, args, err := buildCountVMsQuery(DialectPostgres, filter)
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM virtual_machines WHERE price <= $1", query)
	assert.Equal(t, []any{5.0}, args)
}

func Test_buildUpdateVMQuery(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	specs := models.VMSpecifications{CPUCores: 4, RAMGB: 8, StorageGB: 100, OSType: "arch"}
	update := models.VMUpdate{
		Description:    ptr("fast"),
		Specifications: &specs,
		Price:          ptr(3.0),
		Tags:           &models.Tags{"gpu"},
	}

	query, args, err := buildUpdateVMQuery(DialectPostgres, 11, update, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query,
		"UPDATE virtual_machines SET description = $1, specifications = $2, price = $3, tags = $4, updated_at = $5 WHERE id = $6 RETURNING "))
	require.Len(t, args, 6)
	assert.Equal(t, "fast", args[0])
	assert.Equal(t, specs, args[1])
	assert.Equal(t, 3.0, args[2])
	assert.Equal(t, models.Tags{"gpu"}, args[3])
	assert.Equal(t, now, args[4])
	assert.Equal(t, int64(11), args[5])
}

func Test_buildUpdateVMQuery_SQLite(t *testing.T) {
	status := models.VMStatusMaintenance
	query, args, err := buildUpdateVMQuery(DialectSQLite, 1, models.VMUpdate{Status: &status}, time.Now())
	require.NoError(t, err)

	assert.Contains(t, query, "SET status = ?, updated_at = ? WHERE id = ?")
	assert.Equal(t, "maintenance", args[0])
}

func TestRawQueries_PlaceholdersAscend(t *testing.T) {
	queries := map[string]string{
		"createUser":          createUser,
		"createVM":            createVM,
		"createPayment":       createPayment,
		"getUserPayment":      getUserPayment,
		"updatePaymentStatus": updatePaymentStatus,
		"revokeToken":         revokeToken,
	}

	for name, q := range queries {
		next := 1
		for i := 0; i < len(q); i++ {
			if q[i] != '$' || i+1 >= len(q) || q[i+1] < '0' || q[i+1] > '9' {
				continue
			}
			n := 0
			for j := i + 1; j < len(q) && q[j] >= '0' && q[j] <= '9'; j++ {
				n = n*10 + int(q[j]-'0')
			}
			if n >= next {
				assert.Equal(t, next, n, "%s: placeholder $%d used before $%d", name, n, next)
				next = n + 1
			}
		}
	}
}
