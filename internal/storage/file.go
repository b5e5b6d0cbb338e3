// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// FileStore persists the whole store as a single JSON document on disk,
// written through on every mutation. It is the closest analog to the
// browser's local storage: one flat namespace, durable across restarts.
type FileStore struct {
	path   string
	mu     sync.RWMutex
	data   map[string]json.RawMessage
	closed atomic.Bool
}

// NewFileStore opens (or creates) the JSON document at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading store file: %w", err)
		}
		return s, nil
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("parsing store file %s: %w", path, err)
		}
	}
	return s, nil
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.RLock()
	val, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	result := make([]byte, len(val))
	copy(result, val)
	return result, nil
}

// Set stores value under key and flushes the document to disk.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if !json.Valid(value) {
		return fmt.Errorf("storing %q: value is not valid JSON", key)
	}

	valueCopy := make(json.RawMessage, len(value))
	copy(valueCopy, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.data[key]
	s.data[key] = valueCopy
	if err := s.flushLocked(); err != nil {
		// Roll the map back so memory and disk stay consistent.
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return fmt.Errorf("writing store file: %w", err)
	}
	return nil
}

// Delete removes key and flushes the document to disk.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.flushLocked(); err != nil {
		s.data[key] = prev
		return fmt.Errorf("writing store file: %w", err)
	}
	return nil
}

// Has reports whether key is present.
func (s *FileStore) Has(_ context.Context, key string) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}

	s.mu.RLock()
	_, ok := s.data[key]
	s.mu.RUnlock()
	return ok, nil
}

// Keys returns all keys currently present.
func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	return keys, nil
}

// Close flushes and marks the store closed.
func (s *FileStore) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.flushLocked()
	}
	return nil
}

// flushLocked writes the document atomically via a temp file rename.
// Values are written compact so Get returns the same bytes Set stored,
// before and after a reopen. Callers must hold s.mu.
func (s *FileStore) flushLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
