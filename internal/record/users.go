// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/auth"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/util"
)

// User record errors. The messages match what the admin UI displays.
var (
	ErrUserNotFound      = errors.New("User not found")
	ErrDuplicateUsername = errors.New("Username already exists")
	ErrDuplicateEmail    = errors.New("Email already exists")
	ErrLastSuperAdmin    = errors.New("Cannot delete the last superadmin account")
)

// UserFilters narrows a user search. Zero-valued fields match everything.
type UserFilters struct {
	Role       string
	Status     string
	Department string
}

// Users manages the adminUsers collection.
type Users struct {
	store    storage.Store
	activity *activity.Log
	now      func() time.Time
}

// NewUsers creates a user service over the given store.
func NewUsers(store storage.Store, log *activity.Log) *Users {
	return &Users{
		store:    store,
		activity: log,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (u *Users) WithClock(now func() time.Time) *Users {
	u.now = now
	return u
}

// List returns all user records with passwords stripped.
func (u *Users) List(ctx context.Context) ([]model.User, error) {
	users, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, len(users))
	for i, usr := range users {
		usr.Password = ""
		out[i] = usr
	}
	return out, nil
}

// GetByID returns the user with the given id, password stripped, or
// ErrUserNotFound.
func (u *Users) GetByID(ctx context.Context, id string) (model.User, error) {
	users, err := u.load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Password = ""
			return users[i], nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// Add inserts a new user record. Usernames and emails are unique,
// case-insensitively; the password is hashed before storage.
func (u *Users) Add(ctx context.Context, user model.User) (model.User, error) {
	users, err := u.load(ctx)
	if err != nil {
		return model.User{}, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Username, user.Username) {
			return model.User{}, ErrDuplicateUsername
		}
		if user.Email != "" && strings.EqualFold(users[i].Email, user.Email) {
			return model.User{}, ErrDuplicateEmail
		}
	}

	now := u.now().UTC()
	user.ID = util.NewID("user_")
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}
	if user.Permissions == nil {
		user.Permissions = []string{}
	}
	if user.Password != "" {
		hash, err := auth.HashPassword(user.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("hashing password: %w", err)
		}
		user.Password = hash
	}

	users = append(users, user)
	if err := u.save(ctx, users); err != nil {
		return model.User{}, err
	}

	u.logUserAction(ctx, fmt.Sprintf("Created user %q", user.Username))
	user.Password = ""
	return user, nil
}

// Update applies a shallow patch to the user with the given id. A patched
// username or email is checked for uniqueness against the other records; a
// patched password is hashed.
func (u *Users) Update(ctx context.Context, id string, patch model.UserPatch) (model.User, error) {
	users, err := u.load(ctx)
	if err != nil {
		return model.User{}, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.User{}, ErrUserNotFound
	}

	if patch.Username != nil {
		for i := range users {
			if i != idx && strings.EqualFold(users[i].Username, *patch.Username) {
				return model.User{}, ErrDuplicateUsername
			}
		}
	}
	if patch.Email != nil && *patch.Email != "" {
		for i := range users {
			if i != idx && strings.EqualFold(users[i].Email, *patch.Email) {
				return model.User{}, ErrDuplicateEmail
			}
		}
	}

	next := users[idx]
	if err := applyUserPatch(&next, patch); err != nil {
		return model.User{}, err
	}
	next.UpdatedAt = u.now().UTC()
	users[idx] = next

	if err := u.save(ctx, users); err != nil {
		return model.User{}, err
	}

	u.logUserAction(ctx, fmt.Sprintf("Updated user %q", next.Username))
	next.Password = ""
	return next, nil
}

// Remove deletes the user with the given id. The last remaining superadmin
// account cannot be deleted.
func (u *Users) Remove(ctx context.Context, id string) error {
	users, err := u.load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	supers := 0
	for i := range users {
		if users[i].ID == id {
			idx = i
		}
		if users[i].IsSuperAdmin() {
			supers++
		}
	}
	if idx < 0 {
		return ErrUserNotFound
	}
	if users[idx].IsSuperAdmin() && supers <= 1 {
		return ErrLastSuperAdmin
	}

	removed := users[idx]
	users = append(users[:idx], users[idx+1:]...)
	if err := u.save(ctx, users); err != nil {
		return err
	}

	u.logUserAction(ctx, fmt.Sprintf("Deleted user %q", removed.Username))
	return nil
}

// Search returns the users whose username, email, name or phone contains the
// query, case-insensitively, narrowed by the filters. Passwords are stripped.
func (u *Users) Search(ctx context.Context, query string, filters UserFilters) ([]model.User, error) {
	users, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.User, 0, len(users))
	for i := range users {
		if !matchesUserQuery(&users[i], query) {
			continue
		}
		if filters.Role != "" && users[i].Role != filters.Role {
			continue
		}
		if filters.Status != "" && users[i].Status != filters.Status {
			continue
		}
		if filters.Department != "" && !containsFold(users[i].Department, filters.Department) {
			continue
		}
		usr := users[i]
		usr.Password = ""
		matched = append(matched, usr)
	}
	return matched, nil
}

// Paginate slices a user search into 1-based pages.
func (u *Users) Paginate(ctx context.Context, query string, filters UserFilters, page, perPage int) (Page[model.User], error) {
	matched, err := u.Search(ctx, query, filters)
	if err != nil {
		return Page[model.User]{}, err
	}
	return paginate(matched, page, perPage), nil
}

// Stats summarizes the user collection for the dashboard.
func (u *Users) Stats(ctx context.Context) (model.UserStats, error) {
	users, err := u.load(ctx)
	if err != nil {
		return model.UserStats{}, err
	}

	var stats model.UserStats
	for i := range users {
		stats.Total++
		if users[i].IsActive() {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if users[i].IsSuperAdmin() {
			stats.SuperAdmins++
		}
	}
	return stats, nil
}

func (u *Users) load(ctx context.Context) ([]model.User, error) {
	users, err := storage.GetCollection[model.User](ctx, u.store, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return users, nil
}

func (u *Users) save(ctx context.Context, users []model.User) error {
	if err := storage.SetJSON(ctx, u.store, storage.KeyUsers, users); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

func (u *Users) logUserAction(ctx context.Context, description string) {
	userID, userName := currentActor(ctx, u.store)
	u.activity.Append(ctx, model.ActionUserManagement, description, userID, userName)
}

func matchesUserQuery(user *model.User, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(user.Username, query) ||
		containsFold(user.Email, query) ||
		containsFold(user.Name, query) ||
		containsFold(user.Phone, query)
}

func applyUserPatch(user *model.User, patch model.UserPatch) error {
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil && *patch.Password != "" {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		user.Password = hash
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	if patch.AvatarColor != nil {
		user.AvatarColor = *patch.AvatarColor
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Department != nil {
		user.Department = *patch.Department
	}
	if patch.Permissions != nil {
		perms := make([]string, len(*patch.Permissions))
		copy(perms, *patch.Permissions)
		user.Permissions = perms
	}
	return nil
}
