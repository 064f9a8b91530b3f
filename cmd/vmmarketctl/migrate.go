// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/store"
	"github.com/spf13/cobra"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := store.NewConnect(cmd.Context(), config.DB{DSN: c.dsn}, c.log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err = db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Fprintln(c.out, "schema is up to date")
			return nil
		},
	}
}
