// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/charmbracelet/bubbles/table"
)

type tab int

const (
	usersTab tab = iota
	vmsTab
	paymentsTab
)

var tabs = []tab{usersTab, vmsTab, paymentsTab}

func (t tab) title() string {
	switch t {
	case usersTab:
		return "Users"
	case vmsTab:
		return "VMs"
	case paymentsTab:
		return "Payments"
	default:
		return "?"
	}
}

func (t tab) columns() []table.Column {
	switch t {
	case usersTab:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Email", Width: 28},
			{Title: "Name", Width: 18},
			{Title: "Role", Width: 6},
			{Title: "Active", Width: 6},
		}
	case vmsTab:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 22},
			{Title: "Price", Width: 9},
			{Title: "CPU/RAM/Disk", Width: 14},
			{Title: "Status", Width: 11},
		}
	default:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Processor ID", Width: 28},
			{Title: "Amount", Width: 12},
			{Title: "Status", Width: 10},
			{Title: "User", Width: 5},
		}
	}
}

func userRows(users []models.User) ([]table.Row, []string) {
	rows := make([]table.Row, 0, len(users))
	details := make([]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, table.Row{
			strconv.FormatInt(u.ID, 10),
			fitText(u.Email, 28),
			fitText(u.Name, 18),
			string(u.Role),
			yesNo(u.IsActive),
		})
		details = append(details, userDetail(u))
	}
	return rows, details
}

func vmRows(vms []models.VirtualMachine) ([]table.Row, []string) {
	rows := make([]table.Row, 0, len(vms))
	details := make([]string, 0, len(vms))
	for _, vm := range vms {
		spec := vm.Specifications
		rows = append(rows, table.Row{
			strconv.FormatInt(vm.ID, 10),
			fitText(vm.Name, 22),
			fmt.Sprintf("%.2f", vm.Price),
			fmt.Sprintf("%d/%dG/%dG", spec.CPUCores, spec.RAMGB, spec.StorageGB),
			string(vm.Status),
		})
		details = append(details, vmDetail(vm))
	}
	return rows, details
}

func paymentRows(payments []models.Payment) ([]table.Row, []string) {
	rows := make([]table.Row, 0, len(payments))
	details := make([]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, table.Row{
			strconv.FormatInt(p.ID, 10),
			fitText(p.StripePaymentID, 28),
			fmt.Sprintf("%.2f %s", p.Amount, strings.ToUpper(p.Currency)),
			string(p.Status),
			strconv.FormatInt(p.UserID, 10),
		})
		details = append(details, paymentDetail(p))
	}
	return rows, details
}

func userDetail(u models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %d\n", u.ID)
	fmt.Fprintf(&b, "Email:    %s\n", u.Email)
	fmt.Fprintf(&b, "Name:     %s\n", u.Name)
	fmt.Fprintf(&b, "Role:     %s\n", u.Role)
	fmt.Fprintf(&b, "Active:   %s\n", yesNo(u.IsActive))
	fmt.Fprintf(&b, "Created:  %s\n", timeOrDash(&u.CreatedAt))
	fmt.Fprintf(&b, "Updated:  %s", timeOrDash(u.UpdatedAt))
	return b.String()
}

func vmDetail(vm models.VirtualMachine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %d\n", vm.ID)
	fmt.Fprintf(&b, "Name:     %s\n", vm.Name)
	fmt.Fprintf(&b, "About:    %s\n", valueOrDash(&vm.Description))
	fmt.Fprintf(&b, "Price:    %.2f\n", vm.Price)
	fmt.Fprintf(&b, "Image:    %s\n", vm.ImageType)
	fmt.Fprintf(&b, "OS:       %s\n", vm.Specifications.OSType)
	fmt.Fprintf(&b, "CPU:      %d cores\n", vm.Specifications.CPUCores)
	fmt.Fprintf(&b, "RAM:      %d GB\n", vm.Specifications.RAMGB)
	fmt.Fprintf(&b, "Storage:  %d GB\n", vm.Specifications.StorageGB)
	fmt.Fprintf(&b, "Status:   %s\n", vm.Status)
	tags := strings.Join(vm.Tags, ", ")
	fmt.Fprintf(&b, "Tags:     %s\n", valueOrDash(&tags))
	fmt.Fprintf(&b, "Created:  %s\n", timeOrDash(&vm.CreatedAt))
	fmt.Fprintf(&b, "Updated:  %s", timeOrDash(vm.UpdatedAt))
	return b.String()
}

func paymentDetail(p models.Payment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:        %d\n", p.ID)
	fmt.Fprintf(&b, "Processor: %s\n", p.StripePaymentID)
	fmt.Fprintf(&b, "Intent:    %s\n", valueOrDash(p.StripePaymentIntentID))
	fmt.Fprintf(&b, "Amount:    %.2f %s\n", p.Amount, strings.ToUpper(p.Currency))
	fmt.Fprintf(&b, "Status:    %s\n", p.Status)
	fmt.Fprintf(&b, "User:      %d\n", p.UserID)
	fmt.Fprintf(&b, "Created:   %s\n", timeOrDash(&p.CreatedAt))
	fmt.Fprintf(&b, "Updated:   %s", timeOrDash(p.UpdatedAt))
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
