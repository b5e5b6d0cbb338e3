// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
)

// ListPosts searches and paginates the post collection. Query parameters:
// q, status, category, author, from, to (YYYY-MM-DD), page, perPage.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := record.PostFilters{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Author:   q.Get("author"),
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid from date")
			return
		}
		filters.DateFrom = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid to date")
			return
		}
		filters.DateTo = t
	}

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))

	result, err := h.posts.Paginate(r.Context(), q.Get("q"), filters, page, perPage)
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"posts":       result.Items,
		"currentPage": result.CurrentPage,
		"totalPages":  result.TotalPages,
		"total":       result.Total,
	})
}

// GetPost returns one post by id.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		logAndInternalError(w, "failed to get post", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"post": post})
}

// CreatePost adds a new post.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var post model.Post
	if !decodeJSONBody(w, r, &post) {
		return
	}
	if post.Title == "" {
		writeJSONError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.posts.Add(r.Context(), post)
	if err != nil {
		logAndInternalError(w, "failed to create post", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"post": created})
}

// UpdatePost applies a shallow patch to a post.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var patch model.PostPatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}

	updated, err := h.posts.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		logAndInternalError(w, "failed to update post", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"post": updated})
}

// DeletePost removes a post.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, record.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		logAndInternalError(w, "failed to delete post", "error", err)
		return
	}
	writeJSONSuccess(w, nil)
}

// bulkRequest carries the ids of a bulk operation, plus the target status
// for bulk status updates.
type bulkRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status,omitempty"`
}

// BulkDeletePosts removes the listed posts best effort.
func (h *Handler) BulkDeletePosts(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.posts.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		logAndInternalError(w, "bulk delete failed", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"result": result})
}

// BulkUpdatePostStatus sets the status on the listed posts best effort.
func (h *Handler) BulkUpdatePostStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	switch req.Status {
	case model.PostStatusDraft, model.PostStatusPublished, model.PostStatusScheduled:
	default:
		writeJSONError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	result, err := h.posts.UpdateStatusMany(r.Context(), req.IDs, req.Status)
	if err != nil {
		logAndInternalError(w, "bulk status update failed", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"result": result})
}

// PreviewPost renders markdown editor content to sanitized HTML.
func (h *Handler) PreviewPost(w http.ResponseWriter, r *http.Request) {
	source, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	html, err := h.preview.Render(source)
	if err != nil {
		logAndInternalError(w, "preview render failed", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"html": string(html)})
}
