// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"
)

// Workers starts workers in order and stops them in reverse order.
type Workers struct {
	workers []Worker

	mu      sync.Mutex
	started []Worker
}

// New groups ws. Nil workers are ignored.
func New(ws ...Worker) *Workers {
	group := &Workers{workers: make([]Worker, 0, len(ws))}
	for _, w := range ws {
		if w != nil {
			group.workers = append(group.workers, w)
		}
	}
	return group
}

// Start starts every worker. If one fails, the ones already started are
// stopped in reverse order and the error is returned.
func (w *Workers) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, worker := range w.workers {
		if err := worker.Start(ctx); err != nil {
			stopReverse(w.started)
			w.started = nil
			return fmt.Errorf("error starting worker %d (%T): %w", i, worker, err)
		}
		w.started = append(w.started, worker)
	}

	return nil
}

// Stop stops every started worker in reverse order. Calling it again, or
// before Start, does nothing.
func (w *Workers) Stop() {
	w.mu.Lock()
	started := w.started
	w.started = nil
	w.mu.Unlock()

	stopReverse(started)
}

// Run starts the group, calls fn and stops the group however fn returns.
// A panic in fn is re-raised after the workers are stopped.
func (w *Workers) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	return fn(ctx)
}

func stopReverse(ws []Worker) {
	for i := len(ws) - 1; i >= 0; i-- {
		ws[i].Stop()
	}
}
