// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
)

// backends lists the store constructors exercised by the shared suite.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set(ctx, "posts", []byte(`[{"id":"post_001"}]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := store.Get(ctx, "posts")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `[{"id":"post_001"}]` {
				t.Errorf("Get = %s, want stored value", got)
			}

			// Overwrite replaces the previous value.
			if err := store.Set(ctx, "posts", []byte(`[]`)); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, err = store.Get(ctx, "posts")
			if err != nil {
				t.Fatalf("Get after overwrite: %v", err)
			}
			if string(got) != `[]` {
				t.Errorf("Get after overwrite = %s, want []", got)
			}
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "no-such-key")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing key: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set(ctx, "tmp", []byte(`"x"`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := store.Delete(ctx, "tmp"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get(ctx, "tmp"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
			}

			// Deleting an absent key is not an error.
			if err := store.Delete(ctx, "tmp"); err != nil {
				t.Errorf("Delete absent key: %v", err)
			}
		})
	}
}

func TestStore_Has(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			has, err := store.Has(ctx, "isLoggedIn")
			if err != nil {
				t.Fatalf("Has: %v", err)
			}
			if has {
				t.Error("Has on empty store = true, want false")
			}

			if err := store.Set(ctx, "isLoggedIn", []byte(`"true"`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			has, err = store.Has(ctx, "isLoggedIn")
			if err != nil {
				t.Fatalf("Has: %v", err)
			}
			if !has {
				t.Error("Has after Set = false, want true")
			}
		})
	}
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"posts", "adminUsers", "postsTags"} {
				if err := store.Set(ctx, key, []byte(`[]`)); err != nil {
					t.Fatalf("Set(%q): %v", key, err)
				}
			}

			keys, err := store.Keys(ctx)
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			sort.Strings(keys)
			want := []string{"adminUsers", "posts", "postsTags"}
			if len(keys) != len(want) {
				t.Fatalf("Keys = %v, want %v", keys, want)
			}
			for i := range want {
				if keys[i] != want[i] {
					t.Errorf("Keys[%d] = %q, want %q", i, keys[i], want[i])
				}
			}
		})
	}
}

func TestFileStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set(ctx, "posts", []byte(`[{"id":"post_001"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "posts")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != `[{"id":"post_001"}]` {
		t.Errorf("Get after reopen = %s, want persisted value", got)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.Set(ctx, "adminUsers", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore reopen: %v", err)
	}
	defer reopened.Close()

	has, err := reopened.Has(ctx, "adminUsers")
	if err != nil {
		t.Fatalf("Has after reopen: %v", err)
	}
	if !has {
		t.Error("value did not survive a reopen")
	}
}

func TestGetCollection_MissingKeyIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	items, err := GetCollection[string](ctx, store, "posts")
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("GetCollection on missing key = %v, want empty", items)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	type record struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}

	if err := SetJSON(ctx, store, "rec", record{ID: "cat_001", Count: 4}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	got, err := GetJSON[record](ctx, store, "rec")
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if got.ID != "cat_001" || got.Count != 4 {
		t.Errorf("GetJSON = %+v", got)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"memory", Options{Backend: BackendMemory}, false},
		{"default is memory", Options{}, false},
		{"file", Options{Backend: BackendFile, Path: filepath.Join(t.TempDir(), "data.json")}, false},
		{"file without path", Options{Backend: BackendFile}, true},
		{"sqlite without path", Options{Backend: BackendSQLite}, true},
		{"unknown backend", Options{Backend: "etcd"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Open: expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			store.Close()
		})
	}
}
