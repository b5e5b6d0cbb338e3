// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Role represents an entry in the adminRoles collection.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Permissions []string `json:"permissions"`
}

// Permission describes a capability in the permission catalog.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
}

// PermissionCatalog is the fixed set of capabilities the panel knows about.
func PermissionCatalog() []Permission {
	return []Permission{
		{ID: "perm_001", Name: "posts", DisplayName: "Manage Posts", Category: "content"},
		{ID: "perm_002", Name: "pages", DisplayName: "Manage Pages", Category: "content"},
		{ID: "perm_003", Name: "media", DisplayName: "Manage Media", Category: "content"},
		{ID: "perm_004", Name: "comments", DisplayName: "Manage Comments", Category: "content"},
		{ID: "perm_005", Name: "users", DisplayName: "Manage Users", Category: "system"},
		{ID: "perm_006", Name: "settings", DisplayName: "Manage Settings", Category: "system"},
		{ID: "perm_007", Name: "analytics", DisplayName: "View Analytics", Category: "system"},
	}
}
