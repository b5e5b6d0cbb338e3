// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package draft

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
)

// AutosaveInterval is how often a running autosaver flushes the editor state.
const AutosaveInterval = 30 * time.Second

// Source supplies the current editor state. It returns false when there is
// nothing to save this tick.
type Source func() (model.Draft, bool)

// Autosaver periodically persists the editor state. A single save loop is
// active at a time: Start replaces any running loop rather than stacking a
// second one.
type Autosaver struct {
	drafts   *Store
	log      *slog.Logger
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewAutosaver creates an autosaver flushing to the given draft store.
func NewAutosaver(drafts *Store, log *slog.Logger) *Autosaver {
	return &Autosaver{
		drafts:   drafts,
		log:      log,
		interval: AutosaveInterval,
	}
}

// WithInterval overrides the flush interval. Used by tests.
func (a *Autosaver) WithInterval(d time.Duration) *Autosaver {
	a.interval = d
	return a
}

// Start begins the periodic save loop for the given source, stopping any
// previously running loop first.
func (a *Autosaver) Start(ctx context.Context, source Source) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()

	stop := make(chan struct{})
	done := make(chan struct{})
	a.stop = stop
	a.done = done

	go a.run(ctx, source, stop, done)
}

// Stop halts the running save loop, if any, and waits for it to exit.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Autosaver) stopLocked() {
	if a.stop == nil {
		return
	}
	close(a.stop)
	<-a.done
	a.stop = nil
	a.done = nil
}

func (a *Autosaver) run(ctx context.Context, source Source, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			d, ok := source()
			if !ok {
				continue
			}
			if _, err := a.drafts.Save(ctx, d); err != nil {
				a.log.Warn("draft autosave failed", "error", err)
			}
		}
	}
}
