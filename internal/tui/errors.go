// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "strings"

// humanizeDatabaseError turns common driver failures into a hint the
// operator can act on.
func humanizeDatabaseError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "no such table"),
		strings.Contains(s, "does not exist") && strings.Contains(s, "relation"):
		return "Database schema is missing, run `vmmarketctl migrate` first"
	case strings.Contains(s, "connection refused"),
		strings.Contains(s, "no such host"),
		strings.Contains(s, "i/o timeout"),
		strings.Contains(s, "context deadline exceeded"):
		return "Database is unreachable"
	}

	return err.Error()
}
