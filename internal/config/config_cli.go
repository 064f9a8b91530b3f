// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// CLIConfig is the configuration view used by vmmarketctl.
// Command-line flags belong to the CLI itself, so only the .env file,
// environment variables, the JSON file and defaults are consulted.
type CLIConfig struct {
	// DSN is the database the inspection commands read from.
	DSN string

	// ServerURL is the base URL of a running server, used by the health
	// command.
	ServerURL string

	// RequestTimeout bounds outbound requests to the server.
	RequestTimeout time.Duration

	// LogLevel is the zerolog level of the CLI logger.
	LogLevel string
}

// GetCLIConfig builds and validates the CLI-specific config view from the
// merged structured configuration.
func GetCLIConfig() (*CLIConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv(defaultDotEnvPath).
		withEnv().
		withJSON().
		withDefaults().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	cliCfg := &CLIConfig{
		DSN:            cfg.Storage.DB.DSN,
		ServerURL:      "http://" + cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		LogLevel:       cfg.App.LogLevel,
	}

	return cliCfg, cliCfg.validate()
}
