// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// Health answers liveness probes. The store is probed with a cheap
// existence check; a failing store degrades the status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Has(r.Context(), storage.KeyUsers); err != nil {
		h.logger.Error("health check store probe failed", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	writeJSONSuccess(w, map[string]any{"status": "ok"})
}
