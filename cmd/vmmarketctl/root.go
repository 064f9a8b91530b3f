// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"io"

	"github.com/MKhiriev/vm-marketplace/internal/config"
	"github.com/MKhiriev/vm-marketplace/internal/inspect"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/tui"
	"github.com/spf13/cobra"
)

// cli holds the state shared by every subcommand. It is filled by the
// persistent flags and by setup before any subcommand runs.
type cli struct {
	out io.Writer

	outputJSON bool
	dsn        string
	serverURL  string
	limit      int

	cfg *config.CLIConfig
	log *logger.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:   "vmmarketctl",
		Short: "Operator CLI for the VM marketplace",
		Long: `Migrates and inspects the marketplace database and probes a running
marketplace server. The database is taken from STORAGE_DB_DATABASE_URI
unless --dsn is given.`,
		Version:           versionString(),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.BoolVar(&c.outputJSON, "json", false, "Output results in raw JSON format")
	flags.StringVar(&c.dsn, "dsn", "", "Database DSN (postgres://, sqlite:// or file:)")
	flags.StringVar(&c.serverURL, "server", "", "Base URL of a running marketplace server")
	flags.IntVar(&c.limit, "limit", inspect.DefaultLimit, "Maximum number of rows to list")

	root.AddCommand(
		c.pingCmd(),
		c.migrateCmd(),
		c.usersCmd(),
		c.vmsCmd(),
		c.paymentsCmd(),
		c.promoteCmd(),
		c.browseCmd(),
		c.healthCmd(),
	)

	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetCLIConfig()
	if err != nil && c.dsn == "" {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if cfg == nil {
		cfg = &config.CLIConfig{}
	}

	if c.dsn == "" {
		c.dsn = cfg.DSN
	}
	if c.serverURL == "" {
		c.serverURL = cfg.ServerURL
	}
	c.cfg = cfg

	c.log = logger.NewCLILogger("vmmarketctl")
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	c.log.Debug().Str("command", cmd.Name()).Msg("configured")
	return nil
}

// openInspector connects to the configured database. The returned func
// closes the connection.
func (c *cli) openInspector() (*inspect.Inspector, func(), error) {
	db, err := inspect.Open(c.dsn)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	return inspect.NewInspector(db), func() { _ = sqlDB.Close() }, nil
}

func buildInfo() tui.BuildInfo {
	return tui.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
}

func versionString() string {
	v := buildVersion
	if v == "" {
		v = "N/A"
	}
	return v
}
