package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/testutil"
)

func TestActivityHandler_ForwardsWarnings(t *testing.T) {
	store := testutil.TestStore(t)
	log := activity.New(store)

	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewActivityHandler(inner, log))

	logger.Info("routine message")
	logger.Warn("something odd")
	logger.Error("something broke")

	// All three reached the wrapped handler.
	out := buf.String()
	for _, msg := range []string{"routine message", "something odd", "something broke"} {
		if !strings.Contains(out, msg) {
			t.Errorf("wrapped handler missing %q", msg)
		}
	}

	// Only WARN and above landed on the activity feed, newest first.
	entries, err := log.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("feed has %d entries, want 2", len(entries))
	}
	if entries[0].Description != "[ERROR] something broke" {
		t.Errorf("entries[0] = %q", entries[0].Description)
	}
	if entries[1].Description != "[WARN] something odd" {
		t.Errorf("entries[1] = %q", entries[1].Description)
	}
	if entries[0].Action != model.ActionSystem || entries[0].UserID != model.SystemUserID {
		t.Errorf("entry attribution = %+v", entries[0])
	}
}

func TestActivityHandler_CustomLevel(t *testing.T) {
	store := testutil.TestStore(t)
	log := activity.New(store)

	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewActivityHandlerWithLevel(inner, log, slog.LevelError))

	logger.Warn("below the bar")
	logger.Error("above the bar")

	entries, err := log.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Description != "[ERROR] above the bar" {
		t.Errorf("entries = %v", entries)
	}
}

func TestActivityHandler_WithAttrsKeepsFeed(t *testing.T) {
	store := testutil.TestStore(t)
	log := activity.New(store)

	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewActivityHandler(inner, log)).With("component", "scheduler")

	logger.Warn("attributed warning")

	has, err := store.Has(context.Background(), storage.KeyActivityLogs)
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !has {
		t.Error("derived handler lost the activity feed")
	}
}
