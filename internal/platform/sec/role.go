// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package sec

import "strings"

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full access to the admin panel: user management, content moderation, analytics
	RoleAdmin UserRole = "admin"

	// Default role for standard journaling accounts
	RoleUser UserRole = "user"
)

// ParseRole normalizes a raw role string (case-insensitive) into a [UserRole].
//
// It reports false for anything outside the closed {admin, user} set; callers
// must treat that as a validation failure, never default to a role.
func ParseRole(raw string) (UserRole, bool) {
	switch UserRole(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
