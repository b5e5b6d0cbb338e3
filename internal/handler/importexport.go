// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/transfer"
)

// Export streams a JSON bundle download for the given type: posts, users or
// all. Unknown types export everything.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	exportType := chi.URLParam(r, "type")

	filename := h.exporter.Filename(exportType, "json")
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exporter.WriteJSON(r.Context(), w, exportType); err != nil {
		// Headers may be gone already; log and give up on this response.
		h.logger.Error("export failed", "type", exportType, "error", err)
	}
}

// ExportPosts streams the posts collection as a CSV download.
func (h *Handler) ExportPosts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") != "csv" {
		filename := h.exporter.Filename(transfer.TypePosts, "json")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := h.exporter.WriteJSON(r.Context(), w, transfer.TypePosts); err != nil {
			h.logger.Error("export failed", "type", transfer.TypePosts, "error", err)
		}
		return
	}

	filename := h.exporter.Filename(transfer.TypePosts, "csv")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exporter.WritePostsCSV(r.Context(), w); err != nil {
		h.logger.Error("csv export failed", "error", err)
	}
}

// ImportBundle applies an uploaded JSON bundle with replace-all semantics
// per present collection.
func (h *Handler) ImportBundle(w http.ResponseWriter, r *http.Request) {
	result, err := h.importer.ImportBundle(r.Context(), r.Body)
	if err != nil {
		if errors.Is(err, transfer.ErrInvalidFormat) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logAndInternalError(w, "bundle import failed", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"result": result})
}

// ImportPosts merges an uploaded post document (JSON array or CSV) into the
// collection, deduplicating by id, then rebuilds the counters.
func (h *Handler) ImportPosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.importer.ImportPosts(r.Context(), r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrInvalidFormat), errors.Is(err, transfer.ErrUnsupportedFormat):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			logAndInternalError(w, "post import failed", "error", err)
		}
		return
	}

	if err := h.categories.Recount(r.Context()); err != nil {
		logAndInternalError(w, "recount after import failed", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"result": result})
}
