// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchdog_FiresOnce(t *testing.T) {
	var fired atomic.Int32
	w := NewWatchdog(20*time.Millisecond, func() { fired.Add(1) })

	w.Reset()
	time.Sleep(80 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestWatchdog_ResetReplacesDeadline(t *testing.T) {
	var fired atomic.Int32
	w := NewWatchdog(50*time.Millisecond, func() { fired.Add(1) })

	// Keep resetting inside the window; the deadline never fires because
	// each Reset cancels the previous timer rather than stacking a new one.
	w.Reset()
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		w.Reset()
	}
	if got := fired.Load(); got != 0 {
		t.Fatalf("fired %d times during active resets, want 0", got)
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times after going idle, want exactly 1", got)
	}
}

func TestWatchdog_Stop(t *testing.T) {
	var fired atomic.Int32
	w := NewWatchdog(20*time.Millisecond, func() { fired.Add(1) })

	w.Reset()
	if !w.Armed() {
		t.Fatal("Armed = false after Reset")
	}
	w.Stop()
	if w.Armed() {
		t.Fatal("Armed = true after Stop")
	}

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times after Stop, want 0", got)
	}
}

func TestWatchdog_StopWithoutReset(t *testing.T) {
	w := NewWatchdog(time.Minute, func() {})
	w.Stop() // must not panic on a never-armed watchdog
	if w.Armed() {
		t.Error("Armed = true on a never-armed watchdog")
	}
}
