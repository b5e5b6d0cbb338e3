// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"sync"
	"time"
)

// Watchdog is a single-deadline inactivity timer. Reset cancels any armed
// timer and arms a fresh one; there is never more than one pending deadline
// per watchdog.
type Watchdog struct {
	mu       sync.Mutex
	timer    *time.Timer
	timeout  time.Duration
	onExpire func()
}

// NewWatchdog creates a disarmed watchdog. onExpire runs on its own
// goroutine when the deadline fires.
func NewWatchdog(timeout time.Duration, onExpire func()) *Watchdog {
	return &Watchdog{
		timeout:  timeout,
		onExpire: onExpire,
	}
}

// Reset replaces the pending deadline with a fresh one.
func (w *Watchdog) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.timeout, w.onExpire)
}

// Stop cancels the pending deadline, if any.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Armed reports whether a deadline is pending.
func (w *Watchdog) Armed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}
