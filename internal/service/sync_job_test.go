// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/models"
)

// spySyncer counts Sync calls and returns a fixed result.
type spySyncer struct {
	calls  atomic.Int64
	result models.SyncResult
	err    error
}

func (s *spySyncer) Sync(_ context.Context) (models.SyncResult, error) {
	s.calls.Add(1)
	return s.result, s.err
}

// ── NewSyncJob ───────────────────────────────────────────────────────────────

func TestNewSyncJob_NilLogger(t *testing.T) {
	job := NewSyncJob(&spySyncer{}, nil)
	require.NotNil(t, job)
	assert.NotNil(t, job.(*syncJob).logger)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_Start_CallsSync(t *testing.T) {
	spy := &spySyncer{}
	job := NewSyncJob(spy, logger.Nop())

	// ~5 ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Sync called %d times", got)
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncer{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls after Stop")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncer{}, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncer{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_Start_DefaultInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		t.Run(fmt.Sprint(interval), func(t *testing.T) {
			spy := &spySyncer{}
			job := NewSyncJob(spy, logger.Nop())
			ctx, cancel := context.WithCancel(context.Background())

			job.Start(ctx, interval)
			time.Sleep(20 * time.Millisecond)
			cancel()
			job.Stop()

			assert.Equal(t, int64(0), spy.calls.Load())
		})
	}
}

func TestSyncJob_Restart_KeepsSyncing(t *testing.T) {
	spy := &spySyncer{}
	job := NewSyncJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// Start on a running job stops the previous goroutine first.
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestSyncJob_ContextCancel_StopsJob(t *testing.T) {
	job := NewSyncJob(&spySyncer{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancel")
	}
}

// ── Errors ───────────────────────────────────────────────────────────────────

func TestSyncJob_SyncError_DoesNotStopJob(t *testing.T) {
	tests := []struct {
		name string
		spy  *spySyncer
	}{
		{name: "generic error", spy: &spySyncer{err: assert.AnError}},
		{name: "conflict", spy: &spySyncer{
			err:    fmt.Errorf("%w: A", ErrConflict),
			result: models.SyncResult{Conflicts: []string{"A"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewSyncJob(tt.spy, logger.Nop())

			job.Start(context.Background(), 10*time.Millisecond)
			time.Sleep(55 * time.Millisecond)
			job.Stop()

			assert.GreaterOrEqual(t, tt.spy.calls.Load(), int64(3))
		})
	}
}
