// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Command zewedadmin runs the admin panel API server over the shared
// key-value store.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/config"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/dashboard"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/draft"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/geoip"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/handler"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/logging"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/middleware"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/scheduler"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/seed"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/session"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/transfer"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ZewedJobs Admin - admin panel API server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_STORE_BACKEND    Store backend: memory|file|sqlite|redis (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_STORE_PATH       Data file path (default: ./data/zewed.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_REDIS_URL        Redis URL for the redis backend\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_SESSION_TIMEOUT  Idle session timeout (default: 30m)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_GEOIP_DB_PATH    GeoLite2-Country.mmdb path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ZEWED_DO_SEED          Seed demo data on first run (default: true)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Current()
		_, _ = fmt.Printf("zewedadmin %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists for the file-backed stores
	if cfg.StoreBackend == storage.BackendFile || cfg.StoreBackend == storage.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("opening store", "backend", cfg.StoreBackend, "path", cfg.StorePath)
	store, err := storage.Open(storage.Options{
		Backend:     cfg.StoreBackend,
		Path:        cfg.StorePath,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()

	activityLog := activity.New(store)

	// Upgrade logger to also record WARN and ERROR logs in the activity feed
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewActivityHandler(textHandler, activityLog))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if _, err := seed.Run(ctx, store, logger); err != nil {
			return fmt.Errorf("seeding store: %w", err)
		}
	}

	// Services
	sessions := session.NewManager(store, activityLog, session.Options{Timeout: cfg.SessionTimeout})
	defer sessions.Close()

	posts := record.NewPosts(store, activityLog)
	users := record.NewUsers(store, activityLog)
	categories := record.NewCategories(store)
	drafts := draft.New(store)
	dash := dashboard.New(store, posts, users, activityLog)
	notifications := dashboard.NewNotifications(store)

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip disabled", "error", err)
		geo, _ = geoip.Open("")
	}
	defer func() { _ = geo.Close() }()

	protection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit: cfg.LoginRateLimit,
		IPBurst:     cfg.LoginBurst,
	})

	// Background jobs
	jobs := scheduler.New(store, posts, logger)
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer jobs.Stop()

	api := handler.New(handler.Options{
		Store:         store,
		Sessions:      sessions,
		Posts:         posts,
		Users:         users,
		Categories:    categories,
		Activity:      activityLog,
		Dashboard:     dash,
		Notifications: notifications,
		Drafts:        drafts,
		Exporter:      transfer.NewExporter(store, activityLog),
		Importer:      transfer.NewImporter(store, activityLog),
		Protection:    protection,
		Geo:           geo,
		Logger:        logger,
	})

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment()))

	csrfKey := make([]byte, 32)
	if _, err := rand.Read(csrfKey); err != nil {
		return fmt.Errorf("generating csrf key: %w", err)
	}
	r.Use(middleware.SkipCSRF("/healthz"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(csrfKey, cfg.IsDevelopment())))

	api.Routes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
