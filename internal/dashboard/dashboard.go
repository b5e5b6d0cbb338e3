// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dashboard aggregates the overview numbers and the notification
// feed shown on the admin landing page.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/version"
)

// Stats is the dashboard overview: post, user, activity and view counts.
type Stats struct {
	Posts    model.PostStats `json:"posts"`
	Users    model.UserStats `json:"users"`
	Activity ActivityStats   `json:"activity"`
	Views    ViewStats       `json:"views"`
}

// ActivityStats counts the stored feed and today's slice of it.
type ActivityStats struct {
	TotalLogs int `json:"totalLogs"`
	TodayLogs int `json:"todayLogs"`
}

// ViewStats sums and averages post view counters.
type ViewStats struct {
	Total   int `json:"total"`
	Average int `json:"average"`
}

// SystemInfo describes the running process for the dashboard footer.
type SystemInfo struct {
	Version     string    `json:"version"`
	GoVersion   string    `json:"goVersion"`
	StartedAt   time.Time `json:"startedAt"`
	LastRefresh string    `json:"lastRefresh,omitempty"`
}

// Service computes dashboard data over the shared store.
type Service struct {
	store     storage.Store
	posts     *record.Posts
	users     *record.Users
	activity  *activity.Log
	startedAt time.Time
	now       func() time.Time
}

// New creates a dashboard service.
func New(store storage.Store, posts *record.Posts, users *record.Users, log *activity.Log) *Service {
	return &Service{
		store:     store,
		posts:     posts,
		users:     users,
		activity:  log,
		startedAt: time.Now().UTC(),
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Stats assembles the overview numbers.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	postStats, err := s.posts.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	userStats, err := s.users.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}

	entries, err := s.activity.Recent(ctx, 0)
	if err != nil {
		return Stats{}, err
	}
	now := s.now()
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	today := 0
	for i := range entries {
		if !entries[i].Timestamp.Before(startOfDay) {
			today++
		}
	}

	totalViews, err := s.posts.TotalViews(ctx)
	if err != nil {
		return Stats{}, err
	}
	average := 0
	if postStats.Total > 0 {
		average = (totalViews + postStats.Total/2) / postStats.Total
	}

	return Stats{
		Posts: postStats,
		Users: userStats,
		Activity: ActivityStats{
			TotalLogs: len(entries),
			TodayLogs: today,
		},
		Views: ViewStats{
			Total:   totalViews,
			Average: average,
		},
	}, nil
}

// System reports process details and the last cache refresh stamp.
func (s *Service) System(ctx context.Context) (SystemInfo, error) {
	info := SystemInfo{
		Version:   version.Version,
		GoVersion: runtime.Version(),
		StartedAt: s.startedAt,
	}
	stamp, err := storage.GetJSON[string](ctx, s.store, storage.KeyLastRefresh)
	switch {
	case err == nil:
		info.LastRefresh = stamp
	case !errors.Is(err, storage.ErrNotFound):
		return SystemInfo{}, fmt.Errorf("loading refresh stamp: %w", err)
	}
	return info, nil
}
