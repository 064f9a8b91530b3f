// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/table"

// loadedMsg carries one tab's rows together with the detail text of each row.
type loadedMsg struct {
	tab     tab
	rows    []table.Row
	details []string
	err     error
}
