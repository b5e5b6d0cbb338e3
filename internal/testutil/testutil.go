// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the admin panel.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestStore creates an in-memory store, closed when the test finishes.
func TestStore(t *testing.T) storage.Store {
	t.Helper()

	store := storage.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestSQLiteStore creates a temporary SQLite-backed store with migrations
// applied, for tests that exercise a durable backend.
func TestSQLiteStore(t *testing.T) storage.Store {
	t.Helper()

	path := t.TempDir() + "/test.db"
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Clock returns a fixed clock function for deterministic timestamps.
func Clock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// MustSet stores a JSON value or fails the test.
func MustSet[T any](t *testing.T, store storage.Store, key string, value T) {
	t.Helper()

	if err := storage.SetJSON(context.Background(), store, key, value); err != nil {
		t.Fatalf("SetJSON(%q): %v", key, err)
	}
}

// MustGet loads a JSON value or fails the test.
func MustGet[T any](t *testing.T, store storage.Store, key string) T {
	t.Helper()

	value, err := storage.GetJSON[T](context.Background(), store, key)
	if err != nil {
		t.Fatalf("GetJSON(%q): %v", key, err)
	}
	return value
}
