// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

// Key layout of the shared store. Each key holds one JSON-encoded value;
// collection keys hold arrays ordered newest-first.
const (
	KeyCurrentUser   = "currentUser"       // model.SessionUser
	KeyIsLoggedIn    = "isLoggedIn"        // the literal string "true"
	KeyLoginTime     = "loginTime"         // decimal string of epoch milliseconds
	KeyUsers         = "adminUsers"        // []model.User
	KeyRoles         = "adminRoles"        // []model.Role
	KeyPosts         = "posts"             // []model.Post
	KeyCategories    = "postsCategories"   // []model.Category
	KeyTags          = "postsTags"         // []model.Tag
	KeyActivityLogs  = "adminActivityLogs" // []model.ActivityEntry, capped at 100
	KeyNotifications = "notifications"     // []model.Notification
	KeyPostDraft     = "postDraft"         // model.Draft
	KeyLastRefresh   = "lastRefresh"       // RFC3339 stamp written by the scheduler
)
