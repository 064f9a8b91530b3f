// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/inspect"
	"github.com/MKhiriev/vm-marketplace/internal/tui"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/spf13/cobra"
)

func (c *cli) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the database connection and count users and payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inspector, closeDB, err := c.openInspector()
			if err != nil {
				return err
			}
			defer closeDB()

			report, err := inspector.Report(cmd.Context())
			if err != nil {
				return err
			}

			if c.outputJSON {
				return inspect.WriteJSON(c.out, report)
			}
			inspect.RenderReport(c.out, report)
			return nil
		},
	}
}

func (c *cli) usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List marketplace accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inspector, closeDB, err := c.openInspector()
			if err != nil {
				return err
			}
			defer closeDB()

			users, err := inspector.Users(cmd.Context(), c.limit)
			if err != nil {
				return err
			}

			if c.outputJSON {
				return inspect.WriteJSON(c.out, users)
			}
			inspect.RenderUsers(c.out, users)
			return nil
		},
	}
}

func (c *cli) vmsCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "vms",
		Short: "List VM listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := inspect.VMFilter{Status: models.VMStatus(status), Limit: c.limit}
			if status != "" && !filter.Status.IsValid() {
				return fmt.Errorf("unknown vm status %q", status)
			}

			inspector, closeDB, err := c.openInspector()
			if err != nil {
				return err
			}
			defer closeDB()

			vms, err := inspector.VMs(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if c.outputJSON {
				return inspect.WriteJSON(c.out, vms)
			}
			inspect.RenderVMs(c.out, vms)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only list VMs in this status (available, sold, reserved, maintenance)")

	return cmd
}

func (c *cli) paymentsCmd() *cobra.Command {
	var (
		status string
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List payments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := inspect.PaymentFilter{Status: models.PaymentStatus(status), UserID: userID, Limit: c.limit}
			if status != "" && !filter.Status.IsValid() {
				return fmt.Errorf("unknown payment status %q", status)
			}

			inspector, closeDB, err := c.openInspector()
			if err != nil {
				return err
			}
			defer closeDB()

			payments, err := inspector.Payments(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if c.outputJSON {
				return inspect.WriteJSON(c.out, payments)
			}
			inspect.RenderPayments(c.out, payments)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only list payments in this status (pending, completed, failed, refunded)")
	cmd.Flags().Int64Var(&userID, "user", 0, "Only list payments of this user ID")

	return cmd
}

func (c *cli) promoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector, closeDB, err := c.openInspector()
			if err != nil {
				return err
			}
			defer closeDB()

			if err = inspector.Promote(cmd.Context(), args[0]); err != nil {
				return err
			}

			c.log.Info().Str("email", args[0]).Msg("user promoted to admin")
			fmt.Fprintf(c.out, "%s is now an admin\n", args[0])
			return nil
		},
	}
}

func (c *cli) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse users, VMs and payments interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inspector, closeDB, err := c.openInspector()
			if err != nil {
				return err
			}
			defer closeDB()

			return tui.New(inspector, c.limit, buildInfo(), c.log).Browse(cmd.Context())
		},
	}
}
