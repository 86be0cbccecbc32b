// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

/*
Package identity implements the account registry and session management layer.

It defines the core domain entities (Account, the active session) and logic for
authentication and account lifecycle.

# Architecture

This layer is the "Truth" of the system. The registry of registered accounts and
the single active session pointer live on a key-value persistence surface
(Redis in production, an in-memory fake in tests), injected via the [KeyValue]
port. Nothing else in the application may write to those keys.
*/
package identity

import (
	"time"

	"github.com/keepsakehq/keepsake/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered member of the Keepsake journal.
//
// # Password storage
//
// Passwords are stored and compared as plain text. This is an inherited
// contract from the original client-side registry: hashing would change the
// persisted representation and break every existing registry blob. The
// tradeoff is recorded in DESIGN.md; do not "fix" it here in isolation.
type Account struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Password  string       `json:"password,omitempty"`
	Role      sec.UserRole `json:"role"`
	IsDemo    bool         `json:"is_demo"`
	CreatedAt time.Time    `json:"created_at"`
}

// Sanitized returns a copy of the account safe to serialize to API clients.
// The password never leaves the registry, even under the inherited
// plain-text storage contract.
func (account Account) Sanitized() Account {
	account.Password = ""
	return account
}

// # Demo Accounts

// Two permanent demo accounts exist for frictionless login: one admin and one
// user. They are seeded in memory, never written to the persistence surface,
// never mutated, and never deletable. Every "all known accounts" computation
// (email-uniqueness checks, login matching) includes them.
var demoAccounts = [2]Account{
	{
		ID:       "0190c3a0-0000-7000-8000-a1b2c3d4e501",
		Name:     "Demo Admin",
		Email:    "admin@keepsake.demo",
		Password: "admin1234",
		Role:     sec.RoleAdmin,
		IsDemo:   true,
	},
	{
		ID:       "0190c3a0-0000-7000-8000-a1b2c3d4e502",
		Name:     "Demo User",
		Email:    "demo@keepsake.demo",
		Password: "demo1234",
		Role:     sec.RoleUser,
		IsDemo:   true,
	},
}

// DemoAccounts returns copies of the two seeded demo accounts.
func DemoAccounts() []Account {
	return []Account{demoAccounts[0], demoAccounts[1]}
}

// demoAccountByRole looks up a seeded demo account for the given role.
func demoAccountByRole(role sec.UserRole) (Account, bool) {
	for _, account := range demoAccounts {
		if account.Role == role {
			return account, true
		}
	}
	return Account{}, false
}

// # Field Identifiers

// Global field names for validation and identity mapping in the identity domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldUser        = "user"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
)
