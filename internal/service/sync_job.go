package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/keychain-vault/internal/logger"
)

// DefaultSyncInterval is used by Start when no positive interval is given.
const DefaultSyncInterval = 5 * time.Minute

type syncJob struct {
	syncer Syncer
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that calls syncer.Sync on a ticker. The job is
// idle until Start is called.
func NewSyncJob(syncer Syncer, log *logger.Logger) SyncJob {
	if log == nil {
		log = logger.Nop()
	}
	return &syncJob{syncer: syncer, logger: log}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a goroutine that syncs every interval. A zero or negative
// interval means DefaultSyncInterval. Failed runs are logged and retried on
// the next tick.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.run(jobCtx)
			}
		}
	}()
}

func (j *syncJob) run(ctx context.Context) {
	result, err := j.syncer.Sync(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrConflict):
		j.logger.Warn().Strs("uuids", result.Conflicts).Msg("sync stopped on conflicts")
	case ctx.Err() != nil:
		// stopped mid-run
	default:
		j.logger.Err(err).Msg("sync failed")
	}
}

// Stop implements SyncJob. It cancels the running goroutine and blocks
// until it has exited. Calling Stop on an idle job is a no-op.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
