// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/MKhiriev/vm-marketplace/internal/adapter"
	"github.com/MKhiriev/vm-marketplace/internal/inspect"
	"github.com/MKhiriev/vm-marketplace/models"
	"github.com/spf13/cobra"
)

type healthReport struct {
	Server   string `json:"server"`
	Version  string `json:"version"`
	Database models.DBReport `json:"database"`
}

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Query the version and database check of a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := adapter.NewHTTPMarketplaceClient(c.serverURL, c.cfg.RequestTimeout, c.log)
			if err != nil {
				return err
			}

			version, err := client.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("server %s is not reachable: %w", c.serverURL, err)
			}

			report, err := client.DatabaseReport(cmd.Context())
			if err != nil {
				return fmt.Errorf("database check failed: %w", err)
			}

			if c.outputJSON {
				return inspect.WriteJSON(c.out, healthReport{Server: c.serverURL, Version: version, Database: report})
			}

			fmt.Fprintf(c.out, "Server:  %s\nVersion: %s\n", c.serverURL, version)
			inspect.RenderReport(c.out, report)
			return nil
		},
	}
}
