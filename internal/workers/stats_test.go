// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/metrics"
	"github.com/MKhiriev/go-subs-directory/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStats struct {
	calls    atomic.Int32
	snapshot models.DirectoryStats
	err      error
}

func (s *stubStats) Snapshot(_ context.Context) (models.DirectoryStats, error) {
	s.calls.Add(1)
	return s.snapshot, s.err
}

func TestStatsWorker_RefreshesGaugesImmediately(t *testing.T) {
	stats := &stubStats{snapshot: models.DirectoryStats{Users: 42, Subscriptions: 7}}
	w := NewStatsWorker(stats, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return stats.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, float64(42), testutil.ToFloat64(metrics.DirectoryUsers))
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.DirectorySubscriptions))
}

func TestStatsWorker_RefreshesOnTick(t *testing.T) {
	stats := &stubStats{}
	w := NewStatsWorker(stats, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.Eventually(t, func() bool { return stats.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestStatsWorker_ErrorKeepsPreviousValues(t *testing.T) {
	metrics.DirectoryUsers.Set(5)
	metrics.DirectorySubscriptions.Set(2)

	w := NewStatsWorker(&stubStats{err: errors.New("db down")}, time.Hour, logger.Nop())
	w.refresh(context.Background())

	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.DirectoryUsers))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.DirectorySubscriptions))
}
