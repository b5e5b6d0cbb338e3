// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// GetJSON retrieves the value under key and decodes it into T.
// Returns ErrNotFound unchanged when the key is absent.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var value T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("decoding %q: %w", key, err)
	}
	return value, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storing %q: %w", key, err)
	}
	return nil
}

// GetCollection retrieves the array stored under key.
// An absent key yields an empty slice, matching the original panel's
// "missing collection reads as empty" behavior.
func GetCollection[T any](ctx context.Context, s Store, key string) ([]T, error) {
	items, err := GetJSON[[]T](ctx, s, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return items, err
}
