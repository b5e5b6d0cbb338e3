// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session owns the logged-in user state persisted in the shared
// store: login/logout, permission checks and the sliding idle timeout.
//
// A session is valid iff isLoggedIn is set and the time since loginTime has
// not exceeded the timeout. Every successful validity check refreshes
// loginTime, so the timeout is an idle timeout, not an absolute one.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/auth"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
)

// DefaultTimeout is the idle session timeout.
const DefaultTimeout = 30 * time.Minute

// Session errors. The messages are part of the observable contract; the
// login page and the tests match on them.
var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrAccountInactive    = errors.New("Account is inactive. Please contact administrator.")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrUserNotFound       = errors.New("User not found")
	ErrNotLoggedIn        = errors.New("Not logged in")
)

// Manager owns the session state in the shared store.
type Manager struct {
	store    storage.Store
	activity *activity.Log
	timeout  time.Duration
	now      func() time.Time
	watchdog *Watchdog
}

// Options configures a Manager.
type Options struct {
	// Timeout is the idle session timeout. Zero means DefaultTimeout.
	Timeout time.Duration

	// Clock overrides the time source. Nil means time.Now.
	Clock func() time.Time
}

// NewManager creates a session manager over the given store. The idle
// watchdog is armed on login and re-armed by Touch; when it fires while a
// session is still live, the session is forcibly logged out.
func NewManager(store storage.Store, log *activity.Log, opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	m := &Manager{
		store:    store,
		activity: log,
		timeout:  opts.Timeout,
		now:      opts.Clock,
	}
	m.watchdog = NewWatchdog(opts.Timeout, m.expire)
	return m
}

// Timeout returns the configured idle timeout.
func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

// Login validates the credentials against the user collection and, on
// success, persists the session view, stamps the user's last login, records
// the activity and arms the idle watchdog.
func (m *Manager) Login(ctx context.Context, username, password string) (model.SessionUser, error) {
	users, err := storage.GetCollection[model.User](ctx, m.store, storage.KeyUsers)
	if err != nil {
		return model.SessionUser{}, fmt.Errorf("loading users: %w", err)
	}

	idx := -1
	for i := range users {
		if users[i].Username == username {
			ok, verr := auth.VerifyPassword(password, users[i].Password)
			if verr != nil {
				slog.Error("password check error", "error", verr, "username", username)
			}
			if ok {
				idx = i
			}
			break
		}
	}
	if idx < 0 {
		slog.Debug("login failed", "username", username)
		return model.SessionUser{}, ErrInvalidCredentials
	}

	user := &users[idx]
	if !user.IsActive() {
		return model.SessionUser{}, ErrAccountInactive
	}

	view := user.SessionView()
	now := m.now()

	if err := storage.SetJSON(ctx, m.store, storage.KeyCurrentUser, view); err != nil {
		return model.SessionUser{}, err
	}
	if err := storage.SetJSON(ctx, m.store, storage.KeyIsLoggedIn, "true"); err != nil {
		return model.SessionUser{}, err
	}
	if err := m.setLoginTime(ctx, now); err != nil {
		return model.SessionUser{}, err
	}

	// Stamp last login on the stored user record.
	user.LastLogin = now.UTC()
	user.UpdatedAt = now.UTC()
	if err := storage.SetJSON(ctx, m.store, storage.KeyUsers, users); err != nil {
		slog.Error("failed to stamp last login", "error", err, "user_id", user.ID)
	}

	if _, err := m.activity.Append(ctx, model.ActionLogin, "Logged into admin panel", view.ID, view.Name); err != nil {
		slog.Error("failed to record login activity", "error", err)
	}

	m.watchdog.Reset()
	slog.Info("user logged in", "user_id", view.ID, "username", view.Username)
	return view, nil
}

// Logout clears the session fields and disarms the idle watchdog. If a
// session exists, a logout entry is recorded first.
func (m *Manager) Logout(ctx context.Context) error {
	if user, ok := m.CurrentUser(ctx); ok {
		if _, err := m.activity.Append(ctx, model.ActionLogout, "Logged out from admin panel", user.ID, user.Name); err != nil {
			slog.Error("failed to record logout activity", "error", err)
		}
		slog.Info("user logged out", "user_id", user.ID)
	}

	m.watchdog.Stop()
	return m.clear(ctx)
}

// IsLoggedIn reports whether a valid session exists. An expired session is
// implicitly logged out. A live session has its loginTime refreshed, sliding
// the expiration deadline forward.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	has, err := m.store.Has(ctx, storage.KeyIsLoggedIn)
	if err != nil || !has {
		return false
	}

	loginTime, err := m.loginTime(ctx)
	if err != nil {
		return false
	}

	if m.now().Sub(loginTime) > m.timeout {
		if err := m.Logout(ctx); err != nil {
			slog.Error("failed to clear expired session", "error", err)
		}
		return false
	}

	// Extend the session.
	if err := m.setLoginTime(ctx, m.now()); err != nil {
		slog.Error("failed to refresh login time", "error", err)
	}
	return true
}

// CurrentUser returns the session user view, if a session record exists.
// It does not validate expiry; combine with IsLoggedIn for that.
func (m *Manager) CurrentUser(ctx context.Context) (model.SessionUser, bool) {
	user, err := storage.GetJSON[model.SessionUser](ctx, m.store, storage.KeyCurrentUser)
	if err != nil {
		return model.SessionUser{}, false
	}
	return user, true
}

// HasPermission reports whether the session user holds the capability.
// Superadmins hold every capability.
func (m *Manager) HasPermission(ctx context.Context, capability string) bool {
	user, ok := m.CurrentUser(ctx)
	if !ok {
		return false
	}
	return user.HasPermission(capability)
}

// HasRole reports whether the session user has the given role.
func (m *Manager) HasRole(ctx context.Context, role string) bool {
	user, ok := m.CurrentUser(ctx)
	return ok && user.Role == role
}

// Touch marks a qualifying user interaction: the idle watchdog deadline is
// replaced, never stacked.
func (m *Manager) Touch() {
	m.watchdog.Reset()
}

// Close disarms the idle watchdog without touching the stored session.
func (m *Manager) Close() {
	m.watchdog.Stop()
}

// ProfilePatch carries a shallow profile update. Nil fields are untouched.
type ProfilePatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	AvatarColor *string `json:"avatarColor,omitempty"`
}

// UpdateProfile applies the patch to the logged-in user's stored record and
// to the session view.
func (m *Manager) UpdateProfile(ctx context.Context, patch ProfilePatch) (model.SessionUser, error) {
	current, ok := m.CurrentUser(ctx)
	if !ok {
		return model.SessionUser{}, ErrNotLoggedIn
	}

	users, err := storage.GetCollection[model.User](ctx, m.store, storage.KeyUsers)
	if err != nil {
		return model.SessionUser{}, fmt.Errorf("loading users: %w", err)
	}

	idx := indexByID(users, current.ID)
	if idx < 0 {
		return model.SessionUser{}, ErrUserNotFound
	}

	user := &users[idx]
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.AvatarColor != nil {
		user.AvatarColor = *patch.AvatarColor
	}
	user.UpdatedAt = m.now().UTC()

	if err := storage.SetJSON(ctx, m.store, storage.KeyUsers, users); err != nil {
		return model.SessionUser{}, err
	}

	view := user.SessionView()
	if err := storage.SetJSON(ctx, m.store, storage.KeyCurrentUser, view); err != nil {
		return model.SessionUser{}, err
	}

	if _, err := m.activity.Append(ctx, model.ActionProfileUpdate, "Updated profile information", view.ID, view.Name); err != nil {
		slog.Error("failed to record profile update activity", "error", err)
	}
	return view, nil
}

// ChangePassword verifies the current password and replaces it. The new
// credential is stored as an argon2id hash; legacy plaintext credentials
// still verify until they are rotated.
func (m *Manager) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	current, ok := m.CurrentUser(ctx)
	if !ok {
		return ErrNotLoggedIn
	}

	users, err := storage.GetCollection[model.User](ctx, m.store, storage.KeyUsers)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}

	idx := indexByID(users, current.ID)
	if idx < 0 {
		return ErrUserNotFound
	}

	user := &users[idx]
	ok, err = auth.VerifyPassword(currentPassword, user.Password)
	if err != nil {
		return fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return ErrWrongPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.Password = hashed
	user.UpdatedAt = m.now().UTC()

	if err := storage.SetJSON(ctx, m.store, storage.KeyUsers, users); err != nil {
		return err
	}

	if _, err := m.activity.Append(ctx, model.ActionSecurity, "Changed password", user.ID, user.Name); err != nil {
		slog.Error("failed to record password change activity", "error", err)
	}
	return nil
}

// expire is the watchdog callback: force a logout if a session is still live.
func (m *Manager) expire() {
	ctx := context.Background()
	if m.IsLoggedIn(ctx) {
		slog.Info("session expired after inactivity")
		if err := m.Logout(ctx); err != nil {
			slog.Error("failed to log out idle session", "error", err)
		}
	}
}

// clear removes the session fields from the store.
func (m *Manager) clear(ctx context.Context) error {
	for _, key := range []string{storage.KeyCurrentUser, storage.KeyIsLoggedIn, storage.KeyLoginTime} {
		if err := m.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clearing %s: %w", key, err)
		}
	}
	return nil
}

// loginTime reads the persisted login time (epoch milliseconds).
func (m *Manager) loginTime(ctx context.Context) (time.Time, error) {
	raw, err := storage.GetJSON[string](ctx, m.store, storage.KeyLoginTime)
	if err != nil {
		return time.Time{}, err
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing login time: %w", err)
	}
	return time.UnixMilli(millis), nil
}

// setLoginTime persists the login time as a decimal string of epoch millis.
func (m *Manager) setLoginTime(ctx context.Context, t time.Time) error {
	return storage.SetJSON(ctx, m.store, storage.KeyLoginTime, strconv.FormatInt(t.UnixMilli(), 10))
}

func indexByID(users []model.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
