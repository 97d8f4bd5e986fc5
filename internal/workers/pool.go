// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned by Submit after Close was called.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool runs submitted workers on a fixed number of goroutines.
//
// Submit blocks until a goroutine accepts the worker, the context is done
// or the pool is closed. Close waits for accepted workers to finish.
type Pool struct {
	tasks chan Worker
	done  chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPool starts a pool with size goroutines. A non-positive size means
// runtime.NumCPU().
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		tasks: make(chan Worker),
		done:  make(chan struct{}),
	}

	p.wg.Add(size)
	for range size {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case w := <-p.tasks:
			w.Run()
		}
	}
}

// Submit hands w to an idle goroutine.
func (p *Pool) Submit(ctx context.Context, w Worker) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return ErrPoolClosed
	case p.tasks <- w:
		return nil
	}
}

// Close stops the pool and waits for running workers. It is safe to call
// more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}
