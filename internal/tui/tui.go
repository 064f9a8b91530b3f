// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the interactive marketplace browser of vmmarketctl.
package tui

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/inspect"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Source is the read-only view of the marketplace database the browser
// pages through. *inspect.Inspector satisfies it.
type Source interface {
	Users(ctx context.Context, limit int) ([]models.User, error)
	VMs(ctx context.Context, filter inspect.VMFilter) ([]models.VirtualMachine, error)
	Payments(ctx context.Context, filter inspect.PaymentFilter) ([]models.Payment, error)
}

type TUI struct {
	source    Source
	limit     int
	buildInfo BuildInfo
	logger    *logger.Logger
}

func New(source Source, limit int, buildInfo BuildInfo, logger *logger.Logger) *TUI {
	return &TUI{source: source, limit: limit, buildInfo: buildInfo, logger: logger}
}

// Browse runs the browser until the user quits or ctx is cancelled.
func (t *TUI) Browse(ctx context.Context) error {
	model := newBrowserModel(ctx, t.source, t.limit, t.buildInfo)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		t.logger.Err(err).Msg("browser stopped with error")
		return fmt.Errorf("browser stopped with error: %w", err)
	}
	return nil
}
