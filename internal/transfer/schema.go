// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer handles export and import of the admin collections:
// JSON bundles for posts, users or the full dataset, and CSV for posts.
package transfer

import (
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
)

// BundleVersion is stamped into full-export metadata.
const BundleVersion = "1.0.0"

// Export bundle types.
const (
	TypePosts = "posts"
	TypeUsers = "users"
	TypeFull  = "all"
)

// Metadata is the envelope stamped on full exports.
type Metadata struct {
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
	Type       string    `json:"type"`
}

// Bundle is the JSON document shape shared by export and import. Absent
// collections are omitted from the serialized form.
type Bundle struct {
	Posts        []model.Post          `json:"posts,omitempty"`
	Categories   []model.Category      `json:"categories,omitempty"`
	Tags         []model.Tag           `json:"tags,omitempty"`
	Users        []model.User          `json:"users,omitempty"`
	Roles        []model.Role          `json:"roles,omitempty"`
	Permissions  []model.Permission    `json:"permissions,omitempty"`
	ActivityLogs []model.ActivityEntry `json:"activityLogs,omitempty"`
	Metadata     *Metadata             `json:"metadata,omitempty"`
}

// ImportResult reports which collections a bundle import replaced and how
// a post merge changed the collection.
type ImportResult struct {
	Replaced []string `json:"replaced,omitempty"`
	Imported int      `json:"imported,omitempty"`
	Total    int      `json:"total,omitempty"`
}
