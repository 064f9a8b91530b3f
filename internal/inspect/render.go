// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2FB344"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59F00"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D63939"))
)

const timeLayout = "2006-01-02 15:04"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func RenderUsers(w io.Writer, users []models.User) {
	t := newTable("ID", "EMAIL", "NAME", "ROLE", "ACTIVE", "CREATED")
	for _, u := range users {
		t.Row(
			strconv.FormatInt(u.ID, 10),
			u.Email,
			u.Name,
			string(u.Role),
			yesNo(u.IsActive),
			formatTime(u.CreatedAt),
		)
	}

	fmt.Fprintln(w, titleStyle.Render("users"))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d row(s)", len(users))))
}

func RenderVMs(w io.Writer, vms []models.VirtualMachine) {
	t := newTable("ID", "NAME", "OS", "CPU", "RAM", "DISK", "PRICE", "STATUS", "TAGS")
	for _, vm := range vms {
		t.Row(
			strconv.FormatInt(vm.ID, 10),
			vm.Name,
			vm.Specifications.OSType,
			strconv.Itoa(vm.Specifications.CPUCores),
			fmt.Sprintf("%d GB", vm.Specifications.RAMGB),
			fmt.Sprintf("%d GB", vm.Specifications.StorageGB),
			fmt.Sprintf("%.2f", vm.Price),
			vmStatusStyle(vm.Status).Render(string(vm.Status)),
			strings.Join(vm.Tags, ","),
		)
	}

	fmt.Fprintln(w, titleStyle.Render("virtual machines"))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d row(s)", len(vms))))
}

func RenderPayments(w io.Writer, payments []models.Payment) {
	t := newTable("ID", "USER", "AMOUNT", "STATUS", "PROCESSOR ID", "CREATED")
	for _, p := range payments {
		t.Row(
			strconv.FormatInt(p.ID, 10),
			strconv.FormatInt(p.UserID, 10),
			fmt.Sprintf("%.2f %s", p.Amount, strings.ToUpper(p.Currency)),
			paymentStatusStyle(p.Status).Render(string(p.Status)),
			p.StripePaymentID,
			formatTime(p.CreatedAt),
		)
	}

	fmt.Fprintln(w, titleStyle.Render("payments"))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d row(s)", len(payments))))
}

func RenderReport(w io.Writer, report models.DBReport) {
	t := newTable("CHECK", "RESULT").
		Row("status", okStyle.Render(report.Status)).
		Row("driver", report.Driver).
		Row("select 1", strconv.Itoa(report.SelectOne)).
		Row("users", strconv.FormatInt(report.UserCount, 10)).
		Row("payments", strconv.FormatInt(report.PaymentCount, 10))

	fmt.Fprintln(w, titleStyle.Render(report.Message))
	fmt.Fprintln(w, t.Render())
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func vmStatusStyle(status models.VMStatus) lipgloss.Style {
	switch status {
	case models.VMStatusAvailable:
		return okStyle
	case models.VMStatusReserved, models.VMStatusMaintenance:
		return warnStyle
	default:
		return mutedStyle
	}
}

func paymentStatusStyle(status models.PaymentStatus) lipgloss.Style {
	switch status {
	case models.PaymentStatusCompleted:
		return okStyle
	case models.PaymentStatusPending:
		return warnStyle
	case models.PaymentStatusFailed:
		return badStyle
	default:
		return mutedStyle
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
