// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/metrics"
	"github.com/MKhiriev/go-subs-directory/internal/service"
)

// StatsWorker refreshes the directory gauges every interval.
type StatsWorker struct {
	stats    service.StatsService
	interval time.Duration

	logger *logger.Logger
}

func NewStatsWorker(stats service.StatsService, interval time.Duration, logger *logger.Logger) *StatsWorker {
	return &StatsWorker{
		stats:    stats,
		interval: interval,
		logger:   logger,
	}
}

// Run refreshes once right away, then on every tick until ctx is done.
func (w *StatsWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("stats worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("stats worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// refresh keeps the previous gauge values when the snapshot fails.
func (w *StatsWorker) refresh(ctx context.Context) {
	snapshot, err := w.stats.Snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Str("func", "*StatsWorker.refresh").Msg("error collecting directory stats")
		}
		return
	}

	metrics.DirectoryUsers.Set(float64(snapshot.Users))
	metrics.DirectorySubscriptions.Set(float64(snapshot.Subscriptions))

	w.logger.Debug().
		Int64("users", snapshot.Users).
		Int64("subscriptions", snapshot.Subscriptions).
		Msg("directory stats refreshed")
}
