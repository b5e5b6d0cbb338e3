// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the record types persisted in the admin store:
// users, posts, categories, activity entries and the session view.
package model

import "time"

// User roles.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
)

// User account statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User represents an admin panel account as stored in the adminUsers
// collection. Password is stored alongside the record; it is stripped from
// every session-scoped view and never serialized in API responses.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"password,omitempty"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	AvatarColor string    `json:"avatarColor,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Department  string    `json:"department,omitempty"`
	Permissions []string  `json:"permissions"`
	LastLogin   time.Time `json:"lastLogin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsActive returns true if the account may log in.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsSuperAdmin returns true if the user has the superadmin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// SessionView derives the session-scoped projection of the user.
// The password never crosses into the session record.
func (u *User) SessionView() SessionUser {
	perms := make([]string, len(u.Permissions))
	copy(perms, u.Permissions)
	return SessionUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: perms,
		AvatarColor: u.AvatarColor,
	}
}

// SessionUser is the public projection of a User persisted under the
// currentUser key for the lifetime of a session.
type SessionUser struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	AvatarColor string   `json:"avatarColor,omitempty"`
}

// HasPermission reports whether the session user holds the capability.
// Superadmins hold every capability unconditionally.
func (s *SessionUser) HasPermission(capability string) bool {
	if s.Role == RoleSuperAdmin {
		return true
	}
	for _, p := range s.Permissions {
		if p == capability {
			return true
		}
	}
	return false
}

// UserPatch carries a shallow update for a user record. Nil fields are left
// untouched. A Password value is hashed by the record store before storage.
type UserPatch struct {
	Username    *string   `json:"username,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Password    *string   `json:"password,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Role        *string   `json:"role,omitempty"`
	Status      *string   `json:"status,omitempty"`
	AvatarColor *string   `json:"avatarColor,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Department  *string   `json:"department,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// UserStats summarizes the user collection for the dashboard.
type UserStats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Inactive    int `json:"inactive"`
	SuperAdmins int `json:"superAdmins"`
}
