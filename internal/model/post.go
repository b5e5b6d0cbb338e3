// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusScheduled = "scheduled"
)

// Post represents a content post in the posts collection.
// Category is a free-text join key against Category.Name; counters are
// denormalized and owned by the record store.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Content       string    `json:"content,omitempty"`
	Tags          []string  `json:"tags"`
	Author        string    `json:"author"`
	AllowComments bool      `json:"allowComments"`
	Featured      bool      `json:"featured"`
	Sticky        bool      `json:"sticky"`
	Views         int       `json:"views"`
	Likes         int       `json:"likes"`
	Comments      int       `json:"comments"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsDue reports whether a scheduled post should be published at the given time.
func (p *Post) IsDue(now time.Time) bool {
	return p.Status == PostStatusScheduled && !p.ScheduledAt.IsZero() && !p.ScheduledAt.After(now)
}

// PostPatch carries a shallow update for a post. Nil fields are left
// untouched; non-nil fields overwrite the stored values.
type PostPatch struct {
	Title         *string    `json:"title,omitempty"`
	Slug          *string    `json:"slug,omitempty"`
	Category      *string    `json:"category,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       *string    `json:"content,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
	Author        *string    `json:"author,omitempty"`
	AllowComments *bool      `json:"allowComments,omitempty"`
	Featured      *bool      `json:"featured,omitempty"`
	Sticky        *bool      `json:"sticky,omitempty"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
}

// PostStats summarizes the post collection for the dashboard.
type PostStats struct {
	Total      int            `json:"total"`
	Published  int            `json:"published"`
	Draft      int            `json:"draft"`
	Scheduled  int            `json:"scheduled"`
	Categories map[string]int `json:"categories"`
}
