// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package record implements CRUD, search and bulk operations over the
// record collections in the shared store: posts (with denormalized category
// and tag counters) and admin users.
package record

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// ErrNotFound indicates the record id is absent from its collection.
var ErrNotFound = errors.New("record not found")

// folder lowercases with full Unicode case folding for search matching.
var folder = cases.Fold()

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(folder.String(s), folder.String(substr))
}

// currentActor resolves the acting user for activity stamping: the session
// user when one exists, the system identity otherwise.
func currentActor(ctx context.Context, store storage.Store) (id, name string) {
	user, err := storage.GetJSON[model.SessionUser](ctx, store, storage.KeyCurrentUser)
	if err != nil {
		return model.SystemUserID, model.SystemUserName
	}
	return user.ID, user.Name
}

// Page is one slice of a collection plus paging metadata.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

// paginate slices items for 1-based page numbers. Out-of-range pages yield
// empty item lists with intact metadata.
func paginate[T any](items []T, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
	}
}

// BulkResult aggregates per-item outcomes of a best-effort bulk operation.
// A failure on one id never aborts the remainder.
type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed,omitempty"`
}
