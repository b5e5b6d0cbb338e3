// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/draft"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/util"
)

// DashboardStats returns the overview numbers.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to compute dashboard stats", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"stats": stats})
}

// SystemInfo returns process details for the dashboard footer.
func (h *Handler) SystemInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.dashboard.System(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to read system info", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"system": info})
}

// activityView is an activity entry with a relative time label.
type activityView struct {
	model.ActivityEntry
	TimeAgo string `json:"timeAgo"`
}

// RecentActivity returns the newest-first feed. Query parameter limit
// bounds the result; zero or absent returns the whole feed.
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.activity.Recent(r.Context(), limit)
	if err != nil {
		logAndInternalError(w, "failed to read activity log", "error", err)
		return
	}

	now := time.Now()
	views := make([]activityView, len(entries))
	for i, entry := range entries {
		views[i] = activityView{
			ActivityEntry: entry,
			TimeAgo:       util.TimeAgo(entry.Timestamp, now),
		}
	}
	writeJSONSuccess(w, map[string]any{"activity": views})
}

// ListNotifications returns the notification feed and its unread count.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.notifications.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list notifications", "error", err)
		return
	}
	unread := 0
	for i := range items {
		if !items[i].Read {
			unread++
		}
	}
	writeJSONSuccess(w, map[string]any{
		"notifications": items,
		"unread":        unread,
	})
}

// MarkNotificationRead flags one notification as read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		logAndInternalError(w, "failed to mark notification read", "error", err)
		return
	}
	writeJSONSuccess(w, nil)
}

// MarkAllNotificationsRead flags the whole feed as read.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(r.Context()); err != nil {
		logAndInternalError(w, "failed to mark notifications read", "error", err)
		return
	}
	writeJSONSuccess(w, nil)
}

// GetDraft returns the stored editor draft.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.drafts.Load(r.Context())
	if err != nil {
		if errors.Is(err, draft.ErrNoDraft) {
			writeJSONError(w, http.StatusNotFound, "No draft saved")
			return
		}
		logAndInternalError(w, "failed to load draft", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"draft": d})
}

// SaveDraft overwrites the stored editor draft.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var d model.Draft
	if !decodeJSONBody(w, r, &d) {
		return
	}

	saved, err := h.drafts.Save(r.Context(), d)
	if err != nil {
		logAndInternalError(w, "failed to save draft", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"draft": saved})
}

// ClearDraft discards the stored editor draft.
func (h *Handler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.Clear(r.Context()); err != nil {
		logAndInternalError(w, "failed to clear draft", "error", err)
		return
	}
	writeJSONSuccess(w, nil)
}
