// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package draft persists the post editor's work in progress under the
// postDraft key. Saves overwrite, never append.
package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// ErrNoDraft indicates no draft is currently stored.
var ErrNoDraft = errors.New("no draft saved")

// Store saves and restores the single editor draft.
type Store struct {
	store storage.Store
	now   func() time.Time
}

// New creates a draft store over the given store.
func New(store storage.Store) *Store {
	return &Store{
		store: store,
		now:   time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Save overwrites the stored draft, stamping the save time.
func (s *Store) Save(ctx context.Context, d model.Draft) (model.Draft, error) {
	d.SavedAt = s.now().UTC()
	if err := storage.SetJSON(ctx, s.store, storage.KeyPostDraft, d); err != nil {
		return model.Draft{}, fmt.Errorf("saving draft: %w", err)
	}
	return d, nil
}

// Load returns the stored draft, or ErrNoDraft.
func (s *Store) Load(ctx context.Context) (model.Draft, error) {
	d, err := storage.GetJSON[model.Draft](ctx, s.store, storage.KeyPostDraft)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Draft{}, ErrNoDraft
	}
	if err != nil {
		return model.Draft{}, fmt.Errorf("loading draft: %w", err)
	}
	return d, nil
}

// Clear discards the stored draft. Clearing an absent draft is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	err := s.store.Delete(ctx, storage.KeyPostDraft)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}
