// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler exposes the admin panel's JSON API over chi: session
// lifecycle, record CRUD and search, activity feed, dashboard, transfer and
// draft endpoints.
package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/dashboard"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/draft"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/geoip"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/middleware"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/render"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/session"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/transfer"
)

// Permission capabilities checked on the record routes.
const (
	PermPosts     = "posts"
	PermUsers     = "users"
	PermSettings  = "settings"
	PermAnalytics = "analytics"
)

// Handler bundles the services behind the admin API.
type Handler struct {
	store         storage.Store
	sessions      *session.Manager
	posts         *record.Posts
	users         *record.Users
	categories    *record.Categories
	activity      *activity.Log
	dashboard     *dashboard.Service
	notifications *dashboard.Notifications
	drafts        *draft.Store
	exporter      *transfer.Exporter
	importer      *transfer.Importer
	preview       *render.Preview
	protection    *middleware.LoginProtection
	geo           *geoip.Resolver
	logger        *slog.Logger
}

// Options carries the service dependencies for New.
type Options struct {
	Store         storage.Store
	Sessions      *session.Manager
	Posts         *record.Posts
	Users         *record.Users
	Categories    *record.Categories
	Activity      *activity.Log
	Dashboard     *dashboard.Service
	Notifications *dashboard.Notifications
	Drafts        *draft.Store
	Exporter      *transfer.Exporter
	Importer      *transfer.Importer
	Protection    *middleware.LoginProtection
	Geo           *geoip.Resolver
	Logger        *slog.Logger
}

// New creates the API handler.
func New(opts Options) *Handler {
	return &Handler{
		store:         opts.Store,
		sessions:      opts.Sessions,
		posts:         opts.Posts,
		users:         opts.Users,
		categories:    opts.Categories,
		activity:      opts.Activity,
		dashboard:     opts.Dashboard,
		notifications: opts.Notifications,
		drafts:        opts.Drafts,
		exporter:      opts.Exporter,
		importer:      opts.Importer,
		preview:       render.NewPreview(),
		protection:    opts.Protection,
		geo:           opts.Geo,
		logger:        opts.Logger,
	}
}

// Routes mounts the API under /api.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin(h.sessions))

			r.Post("/logout", h.Logout)
			r.Get("/session", h.Session)
			r.Get("/profile", h.Profile)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/profile/password", h.ChangePassword)

			r.Route("/posts", func(r chi.Router) {
				r.Use(middleware.RequirePermission(PermPosts))
				r.Get("/", h.ListPosts)
				r.Post("/", h.CreatePost)
				r.Post("/bulk/delete", h.BulkDeletePosts)
				r.Post("/bulk/status", h.BulkUpdatePostStatus)
				r.Post("/preview", h.PreviewPost)
				r.Post("/import", h.ImportPosts)
				r.Get("/export", h.ExportPosts)
				r.Get("/{id}", h.GetPost)
				r.Put("/{id}", h.UpdatePost)
				r.Delete("/{id}", h.DeletePost)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(PermUsers))
				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Get("/{id}", h.GetUser)
				r.Put("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeleteUser)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.RequirePermission(PermPosts))
				r.Get("/", h.ListCategories)
				r.Post("/", h.CreateCategory)
				r.Put("/{id}", h.RenameCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})
			r.With(middleware.RequirePermission(PermPosts)).Get("/tags", h.ListTags)

			r.With(middleware.RequirePermission(PermAnalytics)).Get("/dashboard/stats", h.DashboardStats)
			r.Get("/dashboard/system", h.SystemInfo)
			r.Get("/activity", h.RecentActivity)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.ListNotifications)
				r.Post("/{id}/read", h.MarkNotificationRead)
				r.Post("/read-all", h.MarkAllNotificationsRead)
			})

			r.Route("/draft", func(r chi.Router) {
				r.Get("/", h.GetDraft)
				r.Put("/", h.SaveDraft)
				r.Delete("/", h.ClearDraft)
			})

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.RequirePermission(PermSettings))
				r.Get("/{type}", h.Export)
			})
			r.With(middleware.RequirePermission(PermSettings)).Post("/import", h.ImportBundle)
		})
	})
}
