// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// timeScanner reads timestamps that arrive either as time.Time (pgx, sqlite
// DATETIME columns) or as text (sqlite expressions and RETURNING clauses).
type timeScanner struct {
	dst *time.Time
}

func (s timeScanner) Scan(src any) error {
	t, ok, err := parseDBTime(src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cannot scan NULL into a non-nullable timestamp")
	}
	*s.dst = t
	return nil
}

// nullTimeScanner is timeScanner for nullable columns.
type nullTimeScanner struct {
	dst **time.Time
}

func (s nullTimeScanner) Scan(src any) error {
	t, ok, err := parseDBTime(src)
	if err != nil {
		return err
	}
	if !ok {
		*s.dst = nil
		return nil
	}
	*s.dst = &t
	return nil
}

func parseDBTime(src any) (time.Time, bool, error) {
	switch v := src.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return v.UTC(), true, nil
	case []byte:
		return parseDBTimeString(string(v))
	case string:
		return parseDBTimeString(v)
	default:
		return time.Time{}, false, fmt.Errorf("unsupported timestamp column type %T", src)
	}
}

func parseDBTimeString(s string) (time.Time, bool, error) {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("cannot parse timestamp %q", s)
}
