// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/testutil"
)

func TestAppend_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := testutil.TestStore(t)
	log := New(store)

	for i := 1; i <= 3; i++ {
		if _, err := log.Append(ctx, model.ActionSystem, fmt.Sprintf("entry %d", i), model.SystemUserID, model.SystemUserName); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := log.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent returned %d entries, want 3", len(entries))
	}
	if entries[0].Description != "entry 3" {
		t.Errorf("entries[0] = %q, want the newest entry first", entries[0].Description)
	}
	if entries[2].Description != "entry 1" {
		t.Errorf("entries[2] = %q, want the oldest entry last", entries[2].Description)
	}
}

func TestAppend_CapsAtMaxEntries(t *testing.T) {
	ctx := context.Background()
	store := testutil.TestStore(t)
	log := New(store)

	for i := 0; i < MaxEntries+10; i++ {
		if _, err := log.Append(ctx, model.ActionSystem, fmt.Sprintf("entry %d", i), model.SystemUserID, model.SystemUserName); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := log.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != MaxEntries {
		t.Fatalf("feed has %d entries, want cap of %d", len(entries), MaxEntries)
	}
	// The oldest entries were dropped, the newest survive.
	if entries[0].Description != fmt.Sprintf("entry %d", MaxEntries+9) {
		t.Errorf("entries[0] = %q, want the latest append", entries[0].Description)
	}
}

func TestRecent_Limit(t *testing.T) {
	ctx := context.Background()
	store := testutil.TestStore(t)
	log := New(store)

	for i := 0; i < 5; i++ {
		if _, err := log.Append(ctx, model.ActionLogin, "Logged into admin panel", "user_001", "Super Admin"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := log.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(entries))
	}

	// A limit beyond the feed size returns everything.
	entries, err = log.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("Recent(50) returned %d entries, want 5", len(entries))
	}
}

func TestCountSince(t *testing.T) {
	ctx := context.Background()
	store := testutil.TestStore(t)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	current := base
	log := New(store).WithClock(func() time.Time { return current })

	for i := 0; i < 4; i++ {
		current = base.Add(time.Duration(i) * time.Hour)
		if _, err := log.Append(ctx, model.ActionSystem, "tick", model.SystemUserID, model.SystemUserName); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	count, err := log.CountSince(ctx, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if count != 2 {
		t.Errorf("CountSince = %d, want 2 (cutoff is inclusive)", count)
	}
}
