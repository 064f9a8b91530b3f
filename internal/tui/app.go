// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/vm-marketplace/internal/inspect"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	tableHeight = 15
	tableWidth  = 80
)

// browserModel pages through users, VMs and payments:
// 1) keeps the active tab and its table
// 2) loads a tab asynchronously on entry or refresh
// 3) shows the detail of the selected row on enter
// 4) toggles the build info overlay on "v"
type browserModel struct {
	ctx    context.Context
	source Source
	limit  int

	active  tab
	table   table.Model
	details []string
	spinner spinner.Model
	loading bool
	errMsg  string

	showDetail    bool
	showBuildInfo bool
	buildInfo     BuildInfo
}

func newBrowserModel(ctx context.Context, source Source, limit int, buildInfo BuildInfo) browserModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	t := table.New(
		table.WithColumns(usersTab.columns()),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
		table.WithWidth(tableWidth),
	)

	return browserModel{
		ctx:       ctx,
		source:    source,
		limit:     limit,
		active:    usersTab,
		table:     t,
		spinner:   s,
		loading:   true,
		buildInfo: buildInfo,
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad(m.active))
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.tab != m.active {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeDatabaseError(msg.err)
			m.details = nil
			m.table.SetRows(nil)
			return m, nil
		}
		m.errMsg = ""
		m.details = msg.details
		m.table.SetRows(msg.rows)
		m.table.SetCursor(0)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	if m.showDetail {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) {
			m.showDetail = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.info):
		m.showBuildInfo = true
		return m, nil
	case key.Matches(msg, keys.tab):
		return m.switchTo(tab((int(m.active) + 1) % len(tabs)))
	case key.Matches(msg, keys.backtab):
		return m.switchTo(tab((int(m.active) + len(tabs) - 1) % len(tabs)))
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdLoad(m.active))
	case key.Matches(msg, keys.enter):
		if _, ok := m.selectedDetail(); ok {
			m.showDetail = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// switchTo clears the table before changing its columns so rows of the
// previous tab are never rendered against the new layout.
func (m browserModel) switchTo(next tab) (tea.Model, tea.Cmd) {
	m.active = next
	m.loading = true
	m.errMsg = ""
	m.details = nil
	m.table.SetRows(nil)
	m.table.SetColumns(next.columns())
	m.table.SetCursor(0)
	return m, tea.Batch(m.spinner.Tick, m.cmdLoad(next))
}

func (m browserModel) selectedDetail() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.details) {
		return "", false
	}
	return m.details[idx], true
}

func (m browserModel) cmdLoad(t tab) tea.Cmd {
	ctx, source, limit := m.ctx, m.source, m.limit
	return func() tea.Msg {
		msg := loadedMsg{tab: t}
		switch t {
		case usersTab:
			users, err := source.Users(ctx, limit)
			msg.rows, msg.details = userRows(users)
			msg.err = err
		case vmsTab:
			vms, err := source.VMs(ctx, inspect.VMFilter{Limit: limit})
			msg.rows, msg.details = vmRows(vms)
			msg.err = err
		case paymentsTab:
			payments, err := source.Payments(ctx, inspect.PaymentFilter{Limit: limit})
			msg.rows, msg.details = paymentRows(payments)
			msg.err = err
		}
		return msg
	}
}

func (m browserModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}

	if m.showDetail {
		detail, _ := m.selectedDetail()
		return renderPage(strings.ToUpper(m.active.title()), detail, "esc: back  q: quit")
	}

	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading...")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	case len(m.details) == 0:
		b.WriteString("No records")
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d row(s)", len(m.details))))
	}

	return renderPage("VM MARKETPLACE", b.String(), "tab: next  enter: open  r: refresh  v: about  q: quit")
}

func (m browserModel) tabBar() string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == m.active {
			parts = append(parts, activeTabStyle.Render(t.title()))
			continue
		}
		parts = append(parts, inactiveTabStyle.Render(t.title()))
	}
	return strings.Join(parts, " ")
}
