// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/session"
)

// loginRequest is the login payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates credentials and opens the session. Throttled per IP
// and locked out per account after repeated failures.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if h.protection != nil && !h.protection.CheckIPRateLimit(ip) {
		writeJSONError(w, http.StatusTooManyRequests, "Too many login attempts. Please slow down.")
		return
	}

	var req loginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if h.protection != nil {
		if locked, remaining := h.protection.IsAccountLocked(req.Username); locked {
			writeJSONError(w, http.StatusTooManyRequests,
				fmt.Sprintf("Account temporarily locked. Try again in %s.", remaining.Round(time.Second)))
			return
		}
	}

	user, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrAccountInactive):
			if h.protection != nil {
				h.protection.RecordFailedAttempt(req.Username)
			}
			writeJSONError(w, http.StatusUnauthorized, err.Error())
		default:
			logAndInternalError(w, "login failed", "error", err, "username", req.Username)
		}
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(req.Username)
	}
	h.recordLoginTrail(r, user)

	writeJSONSuccess(w, map[string]any{
		"user":    user,
		"timeout": h.sessions.Timeout().String(),
	})
}

// Logout closes the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		logAndInternalError(w, "logout failed", "error", err)
		return
	}
	writeJSONSuccess(w, nil)
}

// Session reports the current session state.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	writeJSONSuccess(w, map[string]any{
		"user":    user,
		"timeout": h.sessions.Timeout().String(),
	})
}

// Profile returns the session user's profile view.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	writeJSONSuccess(w, map[string]any{"user": user})
}

// UpdateProfile applies a shallow patch to the session user's profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch session.ProfilePatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}

	user, err := h.sessions.UpdateProfile(r.Context(), patch)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotLoggedIn):
			writeJSONError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, session.ErrUserNotFound):
			writeJSONError(w, http.StatusNotFound, err.Error())
		default:
			logAndInternalError(w, "profile update failed", "error", err)
		}
		return
	}
	writeJSONSuccess(w, map[string]any{"user": user})
}

// passwordRequest is the password change payload.
type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password and stores the new one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		writeJSONError(w, http.StatusBadRequest, "New password must not be empty")
		return
	}

	if err := h.sessions.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, session.ErrWrongPassword):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, session.ErrNotLoggedIn):
			writeJSONError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, session.ErrUserNotFound):
			writeJSONError(w, http.StatusNotFound, err.Error())
		default:
			logAndInternalError(w, "password change failed", "error", err)
		}
		return
	}
	writeJSONSuccess(w, nil)
}

// recordLoginTrail appends a device/location line to the activity feed after
// a successful login. Best effort, never fails the login.
func (h *Handler) recordLoginTrail(r *http.Request, user model.SessionUser) {
	ua := useragent.Parse(r.UserAgent())
	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}

	trail := fmt.Sprintf("Signed in from %s on %s", browser, os)
	if h.geo != nil {
		if country := h.geo.Country(clientIP(r)); country != "" {
			trail += " (" + country + ")"
		}
	}
	if _, err := h.activity.Append(r.Context(), model.ActionSecurity, trail, user.ID, user.Name); err != nil {
		h.logger.Warn("failed to record login trail", "error", err)
	}
}

// clientIP extracts the remote IP, honoring the RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
