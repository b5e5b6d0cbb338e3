// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Activity action labels used by the built-in writers. The field is
// free-text; these cover the actions the panel itself records.
const (
	ActionLogin          = "Login"
	ActionLogout         = "Logout"
	ActionSecurity       = "Security"
	ActionProfileUpdate  = "Profile Update"
	ActionPostCreation   = "Post Creation"
	ActionPostUpdate     = "Post Update"
	ActionPostDeletion   = "Post Deletion"
	ActionUserManagement = "User Management"
	ActionExport         = "Export"
	ActionImport         = "Import"
	ActionSystem         = "System"
)

// SystemUserID and SystemUserName identify activity recorded outside any
// session, e.g. by the scheduler.
const (
	SystemUserID   = "system"
	SystemUserName = "System"
)

// ActivityEntry is one record in the adminActivityLogs collection.
// The collection is newest-first and capped at 100 entries.
type ActivityEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
