// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package activity maintains the append-only admin activity feed stored
// under the adminActivityLogs key: newest first, capped at 100 entries.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/util"
)

// MaxEntries is the hard cap on the stored feed. Every append truncates the
// collection to this length, dropping the oldest entries.
const MaxEntries = 100

// Log records admin actions in the shared store.
type Log struct {
	store storage.Store
	now   func() time.Time
}

// New creates an activity log over the given store.
func New(store storage.Store) *Log {
	return &Log{
		store: store,
		now:   time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Append inserts a new entry at the front of the feed and truncates it to
// MaxEntries. Pass model.SystemUserID/SystemUserName for actions recorded
// outside a session.
func (l *Log) Append(ctx context.Context, action, description, userID, userName string) (model.ActivityEntry, error) {
	entry := model.ActivityEntry{
		ID:          util.NewID("log_"),
		UserID:      userID,
		UserName:    userName,
		Action:      action,
		Description: description,
		Timestamp:   l.now().UTC(),
	}

	entries, err := storage.GetCollection[model.ActivityEntry](ctx, l.store, storage.KeyActivityLogs)
	if err != nil {
		return model.ActivityEntry{}, fmt.Errorf("loading activity log: %w", err)
	}

	entries = append([]model.ActivityEntry{entry}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	if err := storage.SetJSON(ctx, l.store, storage.KeyActivityLogs, entries); err != nil {
		return model.ActivityEntry{}, fmt.Errorf("saving activity log: %w", err)
	}
	return entry, nil
}

// Recent returns the first n entries of the newest-first feed. A non-positive
// n returns the whole feed.
func (l *Log) Recent(ctx context.Context, n int) ([]model.ActivityEntry, error) {
	entries, err := storage.GetCollection[model.ActivityEntry](ctx, l.store, storage.KeyActivityLogs)
	if err != nil {
		return nil, fmt.Errorf("loading activity log: %w", err)
	}
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// CountSince returns the number of entries recorded at or after the cutoff.
func (l *Log) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := storage.GetCollection[model.ActivityEntry](ctx, l.store, storage.KeyActivityLogs)
	if err != nil {
		return 0, fmt.Errorf("loading activity log: %w", err)
	}
	count := 0
	for _, e := range entries {
		if !e.Timestamp.Before(cutoff) {
			count++
		}
	}
	return count, nil
}
