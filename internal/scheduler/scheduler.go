// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background jobs of the admin panel: publishing
// scheduled posts and stamping the periodic cache refresh.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// Scheduler drives the cron jobs over the shared store.
type Scheduler struct {
	store  storage.Store
	posts  *record.Posts
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(store storage.Store, posts *record.Posts, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		posts:  posts,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the jobs and begins the cron loop: scheduled-post
// publishing every minute, cache refresh every five minutes.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.publishDuePosts(); err != nil {
			s.logger.Error("failed to publish scheduled posts", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("*/5 * * * *", func() {
		if err := s.refreshCache(); err != nil {
			s.logger.Error("failed to refresh cache", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// publishDuePosts transitions scheduled posts whose time has come.
func (s *Scheduler) publishDuePosts() error {
	ctx := context.Background()

	published, err := s.posts.PublishDue(ctx)
	if err != nil {
		return err
	}
	for i := range published {
		s.logger.Info("published scheduled post",
			"post_id", published[i].ID,
			"post_title", published[i].Title,
			"scheduled_at", published[i].ScheduledAt,
		)
	}
	return nil
}

// refreshCache stamps the lastRefresh key with the current time.
func (s *Scheduler) refreshCache() error {
	ctx := context.Background()

	stamp := time.Now().UTC().Format(time.RFC3339)
	if err := storage.SetJSON(ctx, s.store, storage.KeyLastRefresh, stamp); err != nil {
		return err
	}
	s.logger.Debug("data cache refreshed", "at", stamp)
	return nil
}
