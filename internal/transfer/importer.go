// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/util"
)

// Import errors. The messages match what the admin UI displays.
var (
	ErrInvalidFormat     = errors.New("Invalid data format")
	ErrUnsupportedFormat = errors.New("Unsupported file format")
)

// Importer deserializes uploaded documents into the store.
type Importer struct {
	store    storage.Store
	activity *activity.Log
	now      func() time.Time
}

// NewImporter creates an importer over the given store.
func NewImporter(store storage.Store, log *activity.Log) *Importer {
	return &Importer{
		store:    store,
		activity: log,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (im *Importer) WithClock(now func() time.Time) *Importer {
	im.now = now
	return im
}

// ImportBundle applies a JSON bundle with replace-all semantics per
// collection: each top-level field that is present and is an array replaces
// the stored collection wholesale; absent or non-array fields are skipped
// without touching the stored data.
func (im *Importer) ImportBundle(ctx context.Context, r io.Reader) (ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading import: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ImportResult{}, ErrInvalidFormat
	}

	var result ImportResult
	targets := []struct {
		field string
		key   string
	}{
		{"posts", storage.KeyPosts},
		{"categories", storage.KeyCategories},
		{"tags", storage.KeyTags},
		{"users", storage.KeyUsers},
		{"roles", storage.KeyRoles},
	}
	for _, t := range targets {
		value, ok := doc[t.field]
		if !ok || !isJSONArray(value) {
			continue
		}
		if err := im.store.Set(ctx, t.key, value); err != nil {
			return result, fmt.Errorf("replacing %s: %w", t.field, err)
		}
		result.Replaced = append(result.Replaced, t.field)
	}

	userID, userName := im.actor(ctx)
	im.activity.Append(ctx, model.ActionImport, "Imported data from file", userID, userName)
	return result, nil
}

// MergePosts merges imported posts into the stored collection and removes
// duplicate ids, scanning the concatenation existing+imported from the
// front so the first occurrence of each id wins.
func (im *Importer) MergePosts(ctx context.Context, imported []model.Post) (ImportResult, error) {
	existing, err := storage.GetCollection[model.Post](ctx, im.store, storage.KeyPosts)
	if err != nil {
		return ImportResult{}, fmt.Errorf("loading posts: %w", err)
	}

	seen := map[string]bool{}
	merged := make([]model.Post, 0, len(existing)+len(imported))
	for _, post := range append(existing, imported...) {
		if seen[post.ID] {
			continue
		}
		seen[post.ID] = true
		merged = append(merged, post)
	}

	if err := storage.SetJSON(ctx, im.store, storage.KeyPosts, merged); err != nil {
		return ImportResult{}, fmt.Errorf("saving posts: %w", err)
	}

	userID, userName := im.actor(ctx)
	im.activity.Append(ctx, model.ActionImport,
		fmt.Sprintf("Imported %d posts", len(imported)), userID, userName)
	return ImportResult{Imported: len(imported), Total: len(merged)}, nil
}

// ImportPosts parses an uploaded post document by content type (JSON array
// or CSV) and merges it into the collection.
func (im *Importer) ImportPosts(ctx context.Context, r io.Reader, contentType string) (ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading import: %w", err)
	}

	var posts []model.Post
	switch {
	case strings.Contains(contentType, "json"):
		if err := json.Unmarshal(raw, &posts); err != nil {
			return ImportResult{}, ErrInvalidFormat
		}
	case strings.Contains(contentType, "csv"):
		posts, err = im.parsePostsCSV(raw)
		if err != nil {
			return ImportResult{}, err
		}
	default:
		return ImportResult{}, ErrUnsupportedFormat
	}

	return im.MergePosts(ctx, posts)
}

// parsePostsCSV reads the fixed-header posts CSV back into post records.
// Missing ids and timestamps are filled in so merged rows behave like
// locally created posts.
func (im *Importer) parsePostsCSV(raw []byte) ([]model.Post, error) {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, ErrInvalidFormat
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	now := im.now().UTC()
	var posts []model.Post
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrInvalidFormat
		}

		post := model.Post{
			ID:       field(row, "id"),
			Title:    field(row, "title"),
			Slug:     field(row, "slug"),
			Category: field(row, "category"),
			Status:   field(row, "status"),
			Author:   field(row, "author"),
			Tags:     []string{},
		}
		if post.ID == "" {
			post.ID = util.NewID("post_")
		}
		post.CreatedAt = parseTimeOr(field(row, "created at"), now)
		post.UpdatedAt = parseTimeOr(field(row, "updated at"), now)
		posts = append(posts, post)
	}
	return posts, nil
}

func (im *Importer) actor(ctx context.Context) (id, name string) {
	user, err := storage.GetJSON[model.SessionUser](ctx, im.store, storage.KeyCurrentUser)
	if err != nil {
		return model.SystemUserID, model.SystemUserName
	}
	return user.ID, user.Name
}

func parseTimeOr(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fallback
	}
	return t
}

// isJSONArray reports whether the raw value decodes as a JSON array.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
