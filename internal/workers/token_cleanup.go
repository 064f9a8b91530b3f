// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
)

type TokenCleanupWorker struct {
	purger   TokenPurger
	interval time.Duration

	logger *logger.Logger
}

func NewTokenCleanupWorker(purger TokenPurger, interval time.Duration, logger *logger.Logger) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		purger:   purger,
		interval: interval,
		logger:   logger,
	}
}

// Run purges once immediately and then on every tick until ctx is done.
func (w *TokenCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("token cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.purge(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("token cleanup worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (w *TokenCleanupWorker) purge(ctx context.Context) {
	deleted, err := w.purger.PurgeExpiredTokens(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Msg("purging expired tokens failed")
		}
		return
	}
	if deleted > 0 {
		w.logger.Debug().Int64("deleted", deleted).Msg("expired revoked tokens purged")
	}
}
