// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Welcome to Our New Website", "welcome-to-our-new-website"},
		{"Café au Lait", "cafe-au-lait"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Special!@#Characters", "specialcharacters"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER CASE", "upper-case"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "post-123"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "Upper", "with space", "émoji"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestNewID(t *testing.T) {
	id := NewID("post_")
	if !strings.HasPrefix(id, "post_") {
		t.Errorf("NewID = %q, want post_ prefix", id)
	}
	if len(id) <= len("post_") {
		t.Errorf("NewID = %q, want a non-empty suffix", id)
	}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID("log_")
		if seen[id] {
			t.Fatalf("NewID produced a duplicate: %q", id)
		}
		seen[id] = true
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}

	// Past a month, the absolute date is shown.
	old := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	if got := TimeAgo(old, now); got != "1/5/2026" {
		t.Errorf("TimeAgo(old) = %q, want the date", got)
	}
}
