// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const defaultDotEnvPath = ".env"

// Defaults applied when no other source sets a field.
const (
	DefaultDSN                  = "sqlite://./database/sql_app.db"
	DefaultHTTPAddress          = "localhost:8000"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultTokenIssuer          = "vm-marketplace"
	DefaultTokenDuration        = 30 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultBcryptCost           = 12
	DefaultVersion              = "1.0.0"
	DefaultLogLevel             = "info"
	DefaultFrontendURL          = "http://localhost:3000"
	DefaultCurrency             = "usd"
	DefaultTokenCleanupInterval = time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          DefaultTokenIssuer,
			TokenDuration:        DefaultTokenDuration,
			RefreshTokenDuration: DefaultRefreshTokenDuration,
			BcryptCost:           DefaultBcryptCost,
			Version:              DefaultVersion,
			LogLevel:             DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Server: Server{
			HTTPAddress:        DefaultHTTPAddress,
			RequestTimeout:     DefaultRequestTimeout,
			CORSAllowedOrigins: []string{DefaultFrontendURL},
		},
		Payments: Payments{
			FrontendURL: DefaultFrontendURL,
			Currency:    DefaultCurrency,
		},
		Workers: Workers{
			TokenCleanupInterval: DefaultTokenCleanupInterval,
		},
	}
}
