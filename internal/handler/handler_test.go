// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/dashboard"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/draft"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/record"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/session"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/testutil"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/transfer"
)

// testAPI wires the full handler stack over an in-memory store with three
// seeded accounts mirroring the demo dataset's roles.
func testAPI(t *testing.T) (*chi.Mux, storage.Store) {
	t.Helper()

	store := testutil.TestStore(t)
	testutil.MustSet(t, store, storage.KeyUsers, []model.User{
		{ID: "user_001", Username: "superadmin", Password: "admin123", Name: "Super Admin",
			Role: model.RoleSuperAdmin, Status: model.UserStatusActive,
			Permissions: []string{"posts", "users", "settings", "analytics"}},
		{ID: "user_003", Username: "editor", Password: "admin123", Name: "Content Editor",
			Role: model.RoleEditor, Status: model.UserStatusActive,
			Permissions: []string{"posts"}},
	})
	testutil.MustSet(t, store, storage.KeyCategories, []model.Category{
		{ID: "cat_001", Name: "News", Slug: "news"},
	})

	log := activity.New(store)
	sessions := session.NewManager(store, log, session.Options{})
	t.Cleanup(sessions.Close)

	posts := record.NewPosts(store, log)
	users := record.NewUsers(store, log)
	categories := record.NewCategories(store)
	drafts := draft.New(store)

	h := New(Options{
		Store:         store,
		Sessions:      sessions,
		Posts:         posts,
		Users:         users,
		Categories:    categories,
		Activity:      log,
		Dashboard:     dashboard.New(store, posts, users, log),
		Notifications: dashboard.NewNotifications(store),
		Drafts:        drafts,
		Exporter:      transfer.NewExporter(store, log),
		Importer:      transfer.NewImporter(store, log),
		Logger:        testutil.TestLogger(),
	})

	r := chi.NewRouter()
	h.Routes(r)
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.Contains(rec.Header().Get("Content-Type"), "json") && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func login(t *testing.T, r http.Handler, username string) {
	t.Helper()

	rec, body := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": "admin123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d, body %v", username, rec.Code, body)
	}
}

func TestLogin(t *testing.T) {
	r, _ := testAPI(t)

	rec, body := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"username": "superadmin",
		"password": "admin123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["success"] != true {
		t.Errorf("body = %v", body)
	}
	user, _ := body["user"].(map[string]any)
	if user["username"] != "superadmin" {
		t.Errorf("user = %v", user)
	}
	if _, ok := user["password"]; ok {
		t.Error("login response leaked a password field")
	}
	if body["timeout"] != "30m0s" {
		t.Errorf("timeout = %v", body["timeout"])
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	r, _ := testAPI(t)

	rec, body := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"username": "superadmin",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["success"] != false || body["message"] != "Invalid username or password" {
		t.Errorf("body = %v", body)
	}
}

func TestAuthedRoutesRejectAnonymous(t *testing.T) {
	r, _ := testAPI(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/posts/"},
		{http.MethodGet, "/api/session"},
		{http.MethodGet, "/api/dashboard/stats"},
		{http.MethodPost, "/api/logout"},
	}
	for _, p := range paths {
		rec, body := doJSON(t, r, p.method, p.path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", p.method, p.path, rec.Code)
		}
		if body != nil && body["message"] != "Not logged in" {
			t.Errorf("%s %s: message = %v", p.method, p.path, body["message"])
		}
	}
}

func TestPostsCRUDOverAPI(t *testing.T) {
	r, _ := testAPI(t)
	login(t, r, "superadmin")

	// Create.
	rec, body := doJSON(t, r, http.MethodPost, "/api/posts/", map[string]any{
		"title":    "API Post",
		"category": "News",
		"author":   "Super Admin",
	})
	if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body %v", rec.Code, body)
	}
	post, _ := body["post"].(map[string]any)
	id, _ := post["id"].(string)
	if id == "" {
		t.Fatalf("create returned no id: %v", body)
	}

	// Read back.
	rec, body = doJSON(t, r, http.MethodGet, "/api/posts/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	post, _ = body["post"].(map[string]any)
	if post["title"] != "API Post" {
		t.Errorf("get post = %v", post)
	}

	// Update.
	rec, body = doJSON(t, r, http.MethodPut, "/api/posts/"+id, map[string]any{
		"title": "Renamed API Post",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %v", rec.Code, body)
	}

	// List includes it.
	rec, body = doJSON(t, r, http.MethodGet, "/api/posts/?q=renamed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	if total, _ := body["total"].(float64); total != 1 {
		t.Errorf("search total = %v, body %v", body["total"], body)
	}

	// Delete.
	rec, _ = doJSON(t, r, http.MethodDelete, "/api/posts/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec, body = doJSON(t, r, http.MethodGet, "/api/posts/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d", rec.Code)
	}
	if body["message"] != "Post not found" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestCreatePost_RequiresTitle(t *testing.T) {
	r, _ := testAPI(t)
	login(t, r, "superadmin")

	rec, _ := doJSON(t, r, http.MethodPost, "/api/posts/", map[string]any{"category": "News"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without a title", rec.Code)
	}
}

func TestPermissionEnforcement(t *testing.T) {
	r, _ := testAPI(t)
	login(t, r, "editor")

	// The editor holds the posts capability.
	rec, _ := doJSON(t, r, http.MethodGet, "/api/posts/", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("editor GET /api/posts/: status = %d", rec.Code)
	}

	// But not users, settings or analytics.
	for _, path := range []string{"/api/users/", "/api/dashboard/stats", "/api/export/posts"} {
		rec, body := doJSON(t, r, http.MethodGet, path, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("editor GET %s: status = %d, want 403", path, rec.Code)
		}
		if body != nil && body["message"] != "Permission denied" {
			t.Errorf("editor GET %s: message = %v", path, body["message"])
		}
	}
}

func TestUsersAPI(t *testing.T) {
	r, _ := testAPI(t)
	login(t, r, "superadmin")

	rec, body := doJSON(t, r, http.MethodPost, "/api/users/", map[string]any{
		"username": "newbie",
		"password": "pass1234",
		"name":     "New User",
		"role":     model.RoleEditor,
	})
	if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
		t.Fatalf("create user: status = %d, body %v", rec.Code, body)
	}

	// Duplicates surface as conflicts with the UI message.
	rec, body = doJSON(t, r, http.MethodPost, "/api/users/", map[string]any{
		"username": "newbie",
		"password": "pass1234",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d", rec.Code)
	}
	if body["message"] != "Username already exists" {
		t.Errorf("duplicate message = %v", body["message"])
	}

	// Deleting the only superadmin is refused.
	rec, body = doJSON(t, r, http.MethodDelete, "/api/users/user_001", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete last superadmin: status = %d", rec.Code)
	}
	if body["message"] != "Cannot delete the last superadmin account" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestDashboardAndActivity(t *testing.T) {
	r, _ := testAPI(t)
	login(t, r, "superadmin")

	rec, body := doJSON(t, r, http.MethodGet, "/api/dashboard/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: status = %d", rec.Code)
	}
	stats, _ := body["stats"].(map[string]any)
	if stats == nil {
		t.Fatalf("body = %v", body)
	}
	for _, section := range []string{"posts", "users", "activity", "views"} {
		if _, ok := stats[section]; !ok {
			t.Errorf("stats missing %q section: %v", section, stats)
		}
	}

	// The login itself is on the activity feed.
	rec, body = doJSON(t, r, http.MethodGet, "/api/activity?limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activity: status = %d", rec.Code)
	}
	entries, _ := body["activity"].([]any)
	if len(entries) == 0 {
		t.Fatalf("empty activity feed: %v", body)
	}
	first, _ := entries[0].(map[string]any)
	if _, ok := first["timeAgo"]; !ok {
		t.Errorf("activity entry missing timeAgo: %v", first)
	}
}

func TestDraftAPI(t *testing.T) {
	r, _ := testAPI(t)
	login(t, r, "superadmin")

	rec, _ := doJSON(t, r, http.MethodGet, "/api/draft/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get with no draft: status = %d", rec.Code)
	}

	rec, _ = doJSON(t, r, http.MethodPut, "/api/draft/", map[string]any{
		"title":   "Work in Progress",
		"content": "unsaved text",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save draft: status = %d", rec.Code)
	}

	rec, body := doJSON(t, r, http.MethodGet, "/api/draft/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get draft: status = %d", rec.Code)
	}
	draftBody, _ := body["draft"].(map[string]any)
	if draftBody["title"] != "Work in Progress" {
		t.Errorf("draft = %v", body)
	}

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/draft/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear draft: status = %d", rec.Code)
	}
	rec, _ = doJSON(t, r, http.MethodGet, "/api/draft/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after clear: status = %d", rec.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	r, store := testAPI(t)
	login(t, r, "superadmin")

	testutil.MustSet(t, store, storage.KeyPosts, []model.Post{
		{ID: "post_001", Title: "Exported"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/export/posts", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "posts-export-") || !strings.Contains(disposition, ".json") {
		t.Errorf("Content-Disposition = %q", disposition)
	}

	var bundle transfer.Bundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(bundle.Posts) != 1 || bundle.Posts[0].Title != "Exported" {
		t.Errorf("bundle = %+v", bundle)
	}
}

func TestImportBundleEndpoint(t *testing.T) {
	r, store := testAPI(t)
	login(t, r, "superadmin")

	doc := `{"posts": [{"id": "post_imported", "title": "Imported"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	posts := testutil.MustGet[[]model.Post](t, store, storage.KeyPosts)
	if len(posts) != 1 || posts[0].ID != "post_imported" {
		t.Errorf("posts = %v", posts)
	}

	// Garbage is rejected with the UI message.
	req = httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid import: status = %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	r, store := testAPI(t)

	// Health needs no session but does need the users collection.
	rec, body := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}

	if err := store.Delete(context.Background(), storage.KeyUsers); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	rec, _ = doJSON(t, r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status without users key = %d, want 503", rec.Code)
	}
}

func TestBulkPostOperations(t *testing.T) {
	r, _ := testAPI(t)
	login(t, r, "superadmin")

	var ids []string
	for i := 0; i < 3; i++ {
		_, body := doJSON(t, r, http.MethodPost, "/api/posts/", map[string]any{
			"title": fmt.Sprintf("Bulk %d", i),
		})
		post, _ := body["post"].(map[string]any)
		ids = append(ids, post["id"].(string))
	}

	rec, body := doJSON(t, r, http.MethodPost, "/api/posts/bulk/status", map[string]any{
		"ids":    ids[:2],
		"status": "published",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk status: %d, body %v", rec.Code, body)
	}
	result, _ := body["result"].(map[string]any)
	if got, _ := result["succeeded"].(float64); got != 2 {
		t.Errorf("succeeded = %v", result)
	}

	rec, body = doJSON(t, r, http.MethodPost, "/api/posts/bulk/delete", map[string]any{
		"ids": append(ids, "post_missing"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk delete: %d", rec.Code)
	}
	result, _ = body["result"].(map[string]any)
	if got, _ := result["succeeded"].(float64); got != 3 {
		t.Errorf("succeeded = %v", result)
	}
	failed, _ := result["failed"].([]any)
	if len(failed) != 1 {
		t.Errorf("failed = %v", result["failed"])
	}
}
