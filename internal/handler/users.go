// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
)

// ListUsers searches and paginates the user collection. Query parameters:
// q, role, status, department, page, perPage.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := record.UserFilters{
		Role:       q.Get("role"),
		Status:     q.Get("status"),
		Department: q.Get("department"),
	}
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))

	result, err := h.users.Paginate(r.Context(), q.Get("q"), filters, page, perPage)
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"users":       result.Items,
		"currentPage": result.CurrentPage,
		"totalPages":  result.TotalPages,
		"total":       result.Total,
	})
}

// GetUser returns one user by id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, record.ErrUserNotFound) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logAndInternalError(w, "failed to get user", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"user": user})
}

// CreateUser adds a new user account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if !decodeJSONBody(w, r, &user) {
		return
	}
	if user.Username == "" {
		writeJSONError(w, http.StatusBadRequest, "Username is required")
		return
	}
	if user.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Password is required")
		return
	}

	created, err := h.users.Add(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrDuplicateUsername), errors.Is(err, record.ErrDuplicateEmail):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			logAndInternalError(w, "failed to create user", "error", err)
		}
		return
	}
	writeJSONSuccess(w, map[string]any{"user": created})
}

// UpdateUser applies a shallow patch to a user account.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch model.UserPatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}

	updated, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrUserNotFound):
			writeJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, record.ErrDuplicateUsername), errors.Is(err, record.ErrDuplicateEmail):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			logAndInternalError(w, "failed to update user", "error", err)
		}
		return
	}
	writeJSONSuccess(w, map[string]any{"user": updated})
}

// DeleteUser removes a user account.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, record.ErrUserNotFound):
			writeJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, record.ErrLastSuperAdmin):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			logAndInternalError(w, "failed to delete user", "error", err)
		}
		return
	}
	writeJSONSuccess(w, nil)
}
