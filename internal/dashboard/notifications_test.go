// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/testutil"
)

func TestNotifications_AddNewestFirst(t *testing.T) {
	ctx := context.Background()
	feed := NewNotifications(testutil.TestStore(t))

	if _, err := feed.Add(ctx, model.NotificationInfo, "first"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := feed.Add(ctx, model.NotificationSuccess, "second"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items, err := feed.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].Title != "second" {
		t.Errorf("items[0] = %q, want the newest first", items[0].Title)
	}
	if items[0].ID == "" {
		t.Error("notification has no id")
	}
}

func TestNotifications_Cap(t *testing.T) {
	ctx := context.Background()
	feed := NewNotifications(testutil.TestStore(t))

	for i := 0; i < maxNotifications+5; i++ {
		if _, err := feed.Add(ctx, model.NotificationInfo, fmt.Sprintf("n%d", i)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	items, err := feed.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != maxNotifications {
		t.Errorf("feed has %d items, want cap of %d", len(items), maxNotifications)
	}
}

func TestNotifications_MarkRead(t *testing.T) {
	ctx := context.Background()
	feed := NewNotifications(testutil.TestStore(t))

	a, _ := feed.Add(ctx, model.NotificationWarning, "a")
	if _, err := feed.Add(ctx, model.NotificationError, "b"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	count, err := feed.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 2 {
		t.Errorf("UnreadCount = %d", count)
	}

	if err := feed.MarkRead(ctx, a.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	count, _ = feed.UnreadCount(ctx)
	if count != 1 {
		t.Errorf("UnreadCount after MarkRead = %d", count)
	}

	// Unknown ids are a no-op.
	if err := feed.MarkRead(ctx, "nope"); err != nil {
		t.Errorf("MarkRead unknown id: %v", err)
	}

	if err := feed.MarkAllRead(ctx); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	count, _ = feed.UnreadCount(ctx)
	if count != 0 {
		t.Errorf("UnreadCount after MarkAllRead = %d", count)
	}
}
