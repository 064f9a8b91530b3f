// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	refresh key.Binding
	info    key.Binding
	quit    key.Binding
}

var keys = keyMap{
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab", "right", "l")),
	backtab: key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
	refresh: key.NewBinding(key.WithKeys("r")),
	info:    key.NewBinding(key.WithKeys("v")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
