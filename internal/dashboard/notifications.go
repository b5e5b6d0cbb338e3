// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// maxNotifications caps the stored feed; the oldest entries fall off.
const maxNotifications = 50

// Notifications manages the notifications collection, newest first.
type Notifications struct {
	store storage.Store
	now   func() time.Time
}

// NewNotifications creates a notification feed over the given store.
func NewNotifications(store storage.Store) *Notifications {
	return &Notifications{
		store: store,
		now:   time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (n *Notifications) WithClock(now func() time.Time) *Notifications {
	n.now = now
	return n
}

// List returns the feed as stored.
func (n *Notifications) List(ctx context.Context) ([]model.Notification, error) {
	items, err := storage.GetCollection[model.Notification](ctx, n.store, storage.KeyNotifications)
	if err != nil {
		return nil, fmt.Errorf("loading notifications: %w", err)
	}
	return items, nil
}

// UnreadCount returns how many notifications are unread.
func (n *Notifications) UnreadCount(ctx context.Context) (int, error) {
	items, err := n.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range items {
		if !items[i].Read {
			count++
		}
	}
	return count, nil
}

// Add inserts a notification at the front of the feed.
func (n *Notifications) Add(ctx context.Context, notifType, title string) (model.Notification, error) {
	items, err := n.List(ctx)
	if err != nil {
		return model.Notification{}, err
	}

	item := model.Notification{
		ID:        uuid.NewString(),
		Type:      notifType,
		Title:     title,
		Timestamp: n.now().UTC(),
	}
	items = append([]model.Notification{item}, items...)
	if len(items) > maxNotifications {
		items = items[:maxNotifications]
	}

	if err := storage.SetJSON(ctx, n.store, storage.KeyNotifications, items); err != nil {
		return model.Notification{}, fmt.Errorf("saving notifications: %w", err)
	}
	return item, nil
}

// MarkRead flags the notification with the given id as read. Unknown ids
// are a no-op.
func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	items, err := n.List(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range items {
		if items[i].ID == id && !items[i].Read {
			items[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := storage.SetJSON(ctx, n.store, storage.KeyNotifications, items); err != nil {
		return fmt.Errorf("saving notifications: %w", err)
	}
	return nil
}

// MarkAllRead flags the whole feed as read.
func (n *Notifications) MarkAllRead(ctx context.Context) error {
	items, err := n.List(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range items {
		if !items[i].Read {
			items[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := storage.SetJSON(ctx, n.store, storage.KeyNotifications, items); err != nil {
		return fmt.Errorf("saving notifications: %w", err)
	}
	return nil
}
