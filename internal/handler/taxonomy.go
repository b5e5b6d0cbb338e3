// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
)

// ListCategories returns the category collection with post counts.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list categories", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"categories": cats})
}

// CreateCategory adds a new category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cat model.Category
	if !decodeJSONBody(w, r, &cat) {
		return
	}
	if cat.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Name is required")
		return
	}

	created, err := h.categories.Add(r.Context(), cat)
	if err != nil {
		if errors.Is(err, record.ErrDuplicateCategory) {
			writeJSONError(w, http.StatusConflict, err.Error())
			return
		}
		logAndInternalError(w, "failed to create category", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"category": created})
}

// RenameCategory renames a category and moves its posts with it.
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Name is required")
		return
	}

	cat, err := h.categories.Rename(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, record.ErrDuplicateCategory):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			logAndInternalError(w, "failed to rename category", "error", err)
		}
		return
	}
	writeJSONSuccess(w, map[string]any{"category": cat})
}

// DeleteCategory removes an empty category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, record.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, record.ErrCategoryInUse):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			logAndInternalError(w, "failed to delete category", "error", err)
		}
		return
	}
	writeJSONSuccess(w, nil)
}

// ListTags returns the tag aggregate.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.categories.Tags(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list tags", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"tags": tags})
}
