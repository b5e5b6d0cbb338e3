// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seed populates an empty store with the demo dataset: admin
// accounts, roles, posts, categories, tags and an initial activity trail.
// Each collection is seeded only when its key is absent, so restarts never
// clobber live data.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// Run seeds every absent collection. Returns the list of keys it wrote.
func Run(ctx context.Context, store storage.Store, logger *slog.Logger) ([]string, error) {
	var seeded []string

	targets := []struct {
		key   string
		value func() any
	}{
		{storage.KeyUsers, func() any { return demoUsers() }},
		{storage.KeyRoles, func() any { return demoRoles() }},
		{storage.KeyPosts, func() any { return demoPosts() }},
		{storage.KeyCategories, func() any { return demoCategories() }},
		{storage.KeyTags, func() any { return demoTags() }},
		{storage.KeyActivityLogs, func() any { return demoActivity() }},
	}

	for _, t := range targets {
		exists, err := store.Has(ctx, t.key)
		if err != nil {
			return seeded, fmt.Errorf("checking %q: %w", t.key, err)
		}
		if exists {
			continue
		}
		if err := storage.SetJSON(ctx, store, t.key, t.value()); err != nil {
			return seeded, fmt.Errorf("seeding %q: %w", t.key, err)
		}
		seeded = append(seeded, t.key)
	}

	if len(seeded) > 0 {
		logger.Info("seeded demo data", "keys", seeded)
	}
	return seeded, nil
}

func at(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// Demo passwords are stored as the legacy dataset shipped them: plaintext,
// matched exactly at login. Accounts created through the API get hashes.
func demoUsers() []model.User {
	return []model.User{
		{
			ID:          "user_001",
			Username:    "superadmin",
			Email:       "superadmin@companyname.com",
			Password:    "admin123",
			Name:        "Super Admin",
			Role:        model.RoleSuperAdmin,
			Status:      model.UserStatusActive,
			AvatarColor: "superadmin",
			Phone:       "+1 (555) 123-4567",
			Permissions: []string{"posts", "pages", "media", "users", "settings", "analytics"},
			LastLogin:   at("2024-03-20T14:25:00Z"),
			CreatedAt:   at("2024-01-01T09:00:00Z"),
			UpdatedAt:   at("2024-03-20T14:25:00Z"),
		},
		{
			ID:          "user_002",
			Username:    "admin",
			Email:       "admin@companyname.com",
			Password:    "admin123",
			Name:        "Admin User",
			Role:        model.RoleAdmin,
			Status:      model.UserStatusActive,
			AvatarColor: "admin",
			Phone:       "+1 (555) 987-6543",
			Permissions: []string{"posts", "pages", "media", "comments", "analytics"},
			LastLogin:   at("2024-03-19T11:30:00Z"),
			CreatedAt:   at("2024-02-01T10:00:00Z"),
			UpdatedAt:   at("2024-03-19T11:30:00Z"),
		},
		{
			ID:          "user_003",
			Username:    "editor",
			Email:       "editor@companyname.com",
			Password:    "admin123",
			Name:        "Content Editor",
			Role:        model.RoleEditor,
			Status:      model.UserStatusActive,
			AvatarColor: "editor",
			Permissions: []string{"posts", "media", "comments"},
			LastLogin:   at("2024-03-18T16:45:00Z"),
			CreatedAt:   at("2024-02-15T10:00:00Z"),
			UpdatedAt:   at("2024-03-18T16:45:00Z"),
		},
	}
}

func demoRoles() []model.Role {
	return []model.Role{
		{
			ID:          "role_001",
			Name:        "superadmin",
			DisplayName: "Super Administrator",
			Permissions: []string{"posts", "pages", "media", "users", "settings", "analytics"},
		},
		{
			ID:          "role_002",
			Name:        "admin",
			DisplayName: "Administrator",
			Permissions: []string{"posts", "pages", "media", "comments", "analytics"},
		},
		{
			ID:          "role_003",
			Name:        "editor",
			DisplayName: "Content Editor",
			Permissions: []string{"posts", "media", "comments"},
		},
	}
}

func demoPosts() []model.Post {
	return []model.Post{
		{
			ID:            "post_001",
			Title:         "Welcome to Our New Website",
			Slug:          "welcome-to-our-new-website",
			Category:      "News",
			Status:        model.PostStatusPublished,
			Excerpt:       "We're excited to announce the launch of our brand new website with enhanced features and better user experience.",
			Content:       "<h2>Welcome to Our New Online Home</h2><p>After months of hard work and dedication, we are thrilled to unveil our completely redesigned website.</p>",
			Tags:          []string{"website", "launch", "announcement", "update"},
			Author:        "Super Admin",
			AllowComments: true,
			Featured:      true,
			Sticky:        true,
			Views:         248,
			CreatedAt:     at("2024-03-01T10:00:00Z"),
			UpdatedAt:     at("2024-03-01T10:00:00Z"),
		},
		{
			ID:            "post_002",
			Title:         "Annual Community Meetup Announced",
			Slug:          "annual-community-meetup-announced",
			Category:      "Events",
			Status:        model.PostStatusPublished,
			Excerpt:       "Join us for our annual community meetup with talks, workshops and networking.",
			Content:       "<p>This year's community meetup brings together members from across the region for a full day of sessions.</p>",
			Tags:          []string{"announcement", "community"},
			Author:        "Admin User",
			AllowComments: true,
			Views:         131,
			CreatedAt:     at("2024-03-05T09:30:00Z"),
			UpdatedAt:     at("2024-03-06T08:15:00Z"),
		},
		{
			ID:        "post_003",
			Title:     "Quarterly Financial Summary",
			Slug:      "quarterly-financial-summary",
			Category:  "Financial",
			Status:    model.PostStatusDraft,
			Excerpt:   "A look at the numbers behind the first quarter.",
			Content:   "<p>The first quarter closed with steady growth across all divisions.</p>",
			Tags:      []string{"finance", "report"},
			Author:    "Content Editor",
			Views:     12,
			CreatedAt: at("2024-03-12T13:00:00Z"),
			UpdatedAt: at("2024-03-12T13:00:00Z"),
		},
	}
}

func demoCategories() []model.Category {
	return []model.Category{
		{ID: "cat_001", Name: "News", Slug: "news", PostCount: 4},
		{ID: "cat_002", Name: "Events", Slug: "events", PostCount: 2},
		{ID: "cat_003", Name: "Careers", Slug: "careers", PostCount: 2},
		{ID: "cat_004", Name: "Community", Slug: "community", PostCount: 1},
		{ID: "cat_005", Name: "Financial", Slug: "financial", PostCount: 1},
		{ID: "cat_006", Name: "Updates", Slug: "updates", PostCount: 1},
	}
}

func demoTags() []model.Tag {
	return []model.Tag{
		{Name: "website", Count: 1},
		{Name: "launch", Count: 1},
		{Name: "announcement", Count: 2},
		{Name: "update", Count: 1},
		{Name: "community", Count: 1},
		{Name: "finance", Count: 1},
		{Name: "report", Count: 1},
	}
}

func demoActivity() []model.ActivityEntry {
	return []model.ActivityEntry{
		{
			ID:          "log_003",
			UserID:      "user_002",
			UserName:    "Admin User",
			Action:      model.ActionUserManagement,
			Description: `Created user "Content Editor"`,
			Timestamp:   at("2024-03-20T11:30:00Z"),
		},
		{
			ID:          "log_002",
			UserID:      "user_001",
			UserName:    "Super Admin",
			Action:      model.ActionPostCreation,
			Description: `Created post "Welcome to Our New Website"`,
			Timestamp:   at("2024-03-20T10:00:00Z"),
		},
		{
			ID:          "log_001",
			UserID:      "user_001",
			UserName:    "Super Admin",
			Action:      model.ActionSystem,
			Description: "Initialized admin system",
			Timestamp:   at("2024-03-20T09:00:00Z"),
		},
	}
}
