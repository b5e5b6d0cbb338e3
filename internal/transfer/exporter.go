// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// fullExportLogLimit caps how many activity entries ride along in a full
// export.
const fullExportLogLimit = 50

// csvHeader is the fixed column header for posts CSV exports.
var csvHeader = []string{"Title", "Slug", "Category", "Status", "Author", "Created At", "Updated At"}

// Exporter serializes collections out of the store.
type Exporter struct {
	store    storage.Store
	activity *activity.Log
	now      func() time.Time
}

// NewExporter creates an exporter over the given store.
func NewExporter(store storage.Store, log *activity.Log) *Exporter {
	return &Exporter{
		store:    store,
		activity: log,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// Export builds the bundle for the given type: posts (posts, categories,
// tags), users (users, roles, permission catalog), or the full dataset with
// a metadata envelope. Unknown types fall back to a full export.
func (e *Exporter) Export(ctx context.Context, exportType string) (Bundle, error) {
	var bundle Bundle
	var err error

	switch exportType {
	case TypePosts:
		bundle, err = e.postsBundle(ctx)
	case TypeUsers:
		bundle, err = e.usersBundle(ctx)
	default:
		bundle, err = e.fullBundle(ctx)
	}
	if err != nil {
		return Bundle{}, err
	}

	userID, userName := e.actor(ctx)
	e.activity.Append(ctx, model.ActionExport,
		fmt.Sprintf("Exported %s data", normalizeType(exportType)), userID, userName)
	return bundle, nil
}

// WriteJSON exports the given type as an indented JSON document.
func (e *Exporter) WriteJSON(ctx context.Context, w io.Writer, exportType string) error {
	bundle, err := e.Export(ctx, exportType)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// WritePostsCSV exports the posts collection as CSV with the fixed header.
func (e *Exporter) WritePostsCSV(ctx context.Context, w io.Writer) error {
	posts, err := storage.GetCollection[model.Post](ctx, e.store, storage.KeyPosts)
	if err != nil {
		return fmt.Errorf("loading posts: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for i := range posts {
		row := []string{
			posts[i].Title,
			posts[i].Slug,
			posts[i].Category,
			posts[i].Status,
			posts[i].Author,
			posts[i].CreatedAt.Format(time.RFC3339),
			posts[i].UpdatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	userID, userName := e.actor(ctx)
	e.activity.Append(ctx, model.ActionExport, "Exported posts as CSV", userID, userName)
	return nil
}

// Filename derives the download name for an export, dated to the day.
func (e *Exporter) Filename(exportType, extension string) string {
	date := e.now().UTC().Format("2006-01-02")
	switch exportType {
	case TypePosts:
		return fmt.Sprintf("posts-export-%s.%s", date, extension)
	case TypeUsers:
		return fmt.Sprintf("users-export-%s.%s", date, extension)
	default:
		return fmt.Sprintf("full-export-%s.%s", date, extension)
	}
}

func (e *Exporter) postsBundle(ctx context.Context) (Bundle, error) {
	var bundle Bundle
	var err error
	if bundle.Posts, err = storage.GetCollection[model.Post](ctx, e.store, storage.KeyPosts); err != nil {
		return Bundle{}, fmt.Errorf("loading posts: %w", err)
	}
	if bundle.Categories, err = storage.GetCollection[model.Category](ctx, e.store, storage.KeyCategories); err != nil {
		return Bundle{}, fmt.Errorf("loading categories: %w", err)
	}
	if bundle.Tags, err = storage.GetCollection[model.Tag](ctx, e.store, storage.KeyTags); err != nil {
		return Bundle{}, fmt.Errorf("loading tags: %w", err)
	}
	return bundle, nil
}

func (e *Exporter) usersBundle(ctx context.Context) (Bundle, error) {
	var bundle Bundle
	var err error
	if bundle.Users, err = storage.GetCollection[model.User](ctx, e.store, storage.KeyUsers); err != nil {
		return Bundle{}, fmt.Errorf("loading users: %w", err)
	}
	if bundle.Roles, err = storage.GetCollection[model.Role](ctx, e.store, storage.KeyRoles); err != nil {
		return Bundle{}, fmt.Errorf("loading roles: %w", err)
	}
	bundle.Permissions = model.PermissionCatalog()
	return bundle, nil
}

func (e *Exporter) fullBundle(ctx context.Context) (Bundle, error) {
	bundle, err := e.postsBundle(ctx)
	if err != nil {
		return Bundle{}, err
	}
	users, err := e.usersBundle(ctx)
	if err != nil {
		return Bundle{}, err
	}
	bundle.Users = users.Users
	bundle.Roles = users.Roles

	if bundle.ActivityLogs, err = storage.GetCollection[model.ActivityEntry](ctx, e.store, storage.KeyActivityLogs); err != nil {
		return Bundle{}, fmt.Errorf("loading activity log: %w", err)
	}
	if len(bundle.ActivityLogs) > fullExportLogLimit {
		bundle.ActivityLogs = bundle.ActivityLogs[:fullExportLogLimit]
	}

	bundle.Metadata = &Metadata{
		ExportedAt: e.now().UTC(),
		Version:    BundleVersion,
		Type:       "full-export",
	}
	return bundle, nil
}

func (e *Exporter) actor(ctx context.Context) (id, name string) {
	user, err := storage.GetJSON[model.SessionUser](ctx, e.store, storage.KeyCurrentUser)
	if err != nil {
		return model.SystemUserID, model.SystemUserName
	}
	return user.ID, user.Name
}

func normalizeType(exportType string) string {
	switch exportType {
	case TypePosts, TypeUsers:
		return exportType
	default:
		return TypeFull
	}
}
