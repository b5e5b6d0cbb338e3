// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization and request protection.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/session"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyUser carries the session user through the request context.
const ContextKeyUser ContextKey = "user"

// RequireLogin rejects requests without a live session. A passing check is a
// qualifying interaction: it slides the idle deadline forward. The session
// user is stored in the request context for downstream handlers.
func RequireLogin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsLoggedIn(r.Context()) {
				writeError(w, http.StatusUnauthorized, "Not logged in")
				return
			}
			user, ok := sessions.CurrentUser(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Not logged in")
				return
			}
			sessions.Touch()
			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission rejects requests whose session user lacks the
// capability. Must run inside RequireLogin.
func RequirePermission(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.HasPermission(capability) {
				writeError(w, http.StatusForbidden, "Permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose session user does not hold the role.
// Must run inside RequireLogin.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || (user.Role != role && user.Role != model.RoleSuperAdmin) {
				writeError(w, http.StatusForbidden, "Permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the session user placed by RequireLogin.
func UserFromContext(ctx context.Context) (model.SessionUser, bool) {
	user, ok := ctx.Value(ContextKeyUser).(model.SessionUser)
	return user, ok
}

// writeError emits the uniform failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
