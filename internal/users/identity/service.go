// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/keepsakehq/keepsake/internal/platform/apperr"
	"github.com/keepsakehq/keepsake/internal/platform/sec"
	"github.com/keepsakehq/keepsake/pkg/uuidv7"
)

// # Error Taxonomy

// All identity failures are user-correctable input errors surfaced as
// structured results; none are retried automatically — retry is a user-driven
// re-submission from the form that triggered them.
var (
	// ErrInvalidRole rejects any role outside the closed {admin, user} set.
	ErrInvalidRole = apperr.ValidationError("Role must be either admin or user")

	// ErrEmailAlreadyExists rejects registration with a taken email (any letter case).
	ErrEmailAlreadyExists = apperr.Conflict("Email is already registered")

	// ErrInvalidCredentials collapses "email not found" and "wrong password"
	// into one message so login attempts cannot enumerate registered emails.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

	// ErrDemoAccountNotFound guards the demo-seed invariant. It is a defensive
	// branch: with the seeds compiled in, it is unreachable in practice.
	ErrDemoAccountNotFound = apperr.NotFound("Demo account")
)

// casMaxAttempts bounds the registry's optimistic read-modify-write loop.
const casMaxAttempts = 3

// # Identity Store

// Listener receives the current account (nil when anonymous) synchronously
// after every successful session mutation.
type Listener func(current *Account)

// Store owns the registered-account registry and the single active session.
//
// # Session State Machine
//
// Bootstrapping → Anonymous (no valid persisted session) or Authenticated
// (valid persisted session); Anonymous → Authenticated via Register, Login,
// or LoginDemo; Authenticated → Anonymous via Logout. A fresh Login/Register
// while already authenticated replaces the session wholesale — permitted,
// not guarded against.
//
// # Concurrency
//
// The store serializes its own mutations with a mutex. Independent processes
// sharing the same persistence surface are coordinated only by the registry's
// compare-and-swap; the session pointer is last-writer-wins by design.
type Store struct {
	kv          KeyValue
	sessionKey  string
	registryKey string

	mu        sync.Mutex
	current   *Account
	loading   bool
	lastError string

	listeners  map[int]Listener
	listenerID int
}

// NewStore constructs an identity [Store] over the given persistence surface.
// The store starts in the Bootstrapping state; call [Store.Bootstrap] before use.
func NewStore(kv KeyValue, sessionKey, registryKey string) *Store {
	return &Store{
		kv:          kv,
		sessionKey:  sessionKey,
		registryKey: registryKey,
		loading:     true,
		listeners:   make(map[int]Listener),
	}
}

// # Session Bootstrap

/*
Bootstrap hydrates the session from the persistence surface.

Description: Reads the persisted session pointer once at startup. A missing
value, malformed JSON, or an account with an invalid role all resolve to the
Anonymous state — the corrupt value is discarded and repaired silently, never
surfaced as an error. This is the only place malformed persisted state is
repaired rather than reported.

Parameters:
  - context: context.Context

Returns:
  - error: Persistence connectivity failures only
*/
func (store *Store) Bootstrap(context context.Context) error {
	store.mu.Lock()

	raw, err := store.kv.Get(context, store.sessionKey)
	switch {
	case err == ErrNoValue:
		// No persisted session: start anonymous
		store.current = nil

	case err != nil:
		store.loading = false
		store.mu.Unlock()
		return fmt.Errorf("identity_bootstrap_failed: %w", err)

	default:
		account, ok := decodeSessionAccount(raw)
		if !ok {
			// Corrupt or role-invalid blob: silent repair, start anonymous
			_ = store.kv.Remove(context, store.sessionKey)
			store.current = nil
		} else {
			store.current = &account
		}
	}

	store.loading = false
	store.mu.Unlock()

	store.notify()
	return nil
}

// decodeSessionAccount parses a persisted session blob and validates its role.
func decodeSessionAccount(raw string) (Account, bool) {
	var account Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return Account{}, false
	}

	if _, ok := sec.ParseRole(string(account.Role)); !ok {
		return Account{}, false
	}

	return account, true
}

// # Registration

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

/*
Register validates and persists a brand new account, then activates it as the
current session.

Description: The registry update is an optimistic read-modify-write: read the
persisted array, verify email uniqueness against demo ∪ persisted accounts,
append, and compare-and-swap. On CAS contention the whole cycle retries so a
concurrent registration of the same email can never slip through.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Account: Created entity
  - error: ErrInvalidRole, ErrEmailAlreadyExists, or storage failures
*/
func (store *Store) Register(context context.Context, input RegisterInput) (*Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	// Role must normalize to one of the two valid roles
	role, ok := sec.ParseRole(input.Role)
	if !ok {
		return nil, store.fail(ErrInvalidRole)
	}

	email := NormalizeEmail(input.Email)

	var account Account
	for attempt := 0; attempt < casMaxAttempts; attempt++ {

		raw, accounts, err := store.readRegistry(context)
		if err != nil {
			return nil, store.fail(err)
		}

		// Uniqueness across demo ∪ persisted accounts, case-insensitive
		if emailTaken(accounts, email) {
			return nil, store.fail(ErrEmailAlreadyExists)
		}

		account = Account{
			ID:        uuidv7.New(),
			Name:      strings.TrimSpace(input.Name),
			Email:     email,
			Password:  input.Password,
			Role:      role,
			IsDemo:    false,
			CreatedAt: time.Now().UTC(),
		}

		next, err := json.Marshal(append(accounts, account))
		if err != nil {
			return nil, store.fail(fmt.Errorf("identity_registry_encode_failed: %w", err))
		}

		swapped, err := store.kv.CompareAndSwap(context, store.registryKey, raw, string(next))
		if err != nil {
			return nil, store.fail(err)
		}
		if swapped {
			return store.activate(context, account)
		}

		// Lost the CAS race: re-read and re-check uniqueness
	}

	return nil, store.fail(fmt.Errorf("identity_registry_contended: gave up after %d attempts", casMaxAttempts))
}

// # Authentication

/*
Login authenticates an account by email and password.

Description: The email is normalized exactly as at registration; the password
comparison is exact and case-sensitive. Demo accounts participate in matching.
No distinction is surfaced between an unknown email and a wrong password.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *Account: The authenticated account
  - error: ErrInvalidCredentials or storage failures
*/
func (store *Store) Login(context context.Context, email, password string) (*Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	normalized := NormalizeEmail(email)

	_, accounts, err := store.readRegistry(context)
	if err != nil {
		return nil, store.fail(err)
	}

	for _, account := range allKnownAccounts(accounts) {
		if account.Email == normalized && account.Password == password {
			return store.activate(context, account)
		}
	}

	return nil, store.fail(ErrInvalidCredentials)
}

/*
LoginDemo activates one of the two seeded demo accounts.

Parameters:
  - context: context.Context
  - role: string ("admin" or "user", case-insensitive)

Returns:
  - *Account: The demo account (IsDemo is always true)
  - error: ErrInvalidRole, or ErrDemoAccountNotFound if the seed invariant is broken
*/
func (store *Store) LoginDemo(context context.Context, role string) (*Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	parsed, ok := sec.ParseRole(role)
	if !ok {
		return nil, store.fail(ErrInvalidRole)
	}

	account, ok := demoAccountByRole(parsed)
	if !ok {
		return nil, store.fail(ErrDemoAccountNotFound)
	}

	return store.activate(context, account)
}

/*
Logout clears the persisted session pointer and the in-memory session.

Description: Unconditional and idempotent — calling it with no active session
is a no-op, never an error.

Parameters:
  - context: context.Context

Returns:
  - error: Persistence failures only
*/
func (store *Store) Logout(context context.Context) error {
	store.mu.Lock()

	if err := store.kv.Remove(context, store.sessionKey); err != nil {
		store.mu.Unlock()
		return fmt.Errorf("identity_logout_failed: %w", err)
	}

	store.current = nil
	store.lastError = ""
	store.mu.Unlock()

	store.notify()
	return nil
}

// # Lookups & Session Reads

/*
FindByID returns the account with the given ID from demo ∪ persisted accounts.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or storage failures
*/
func (store *Store) FindByID(context context.Context, id string) (*Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, accounts, err := store.readRegistry(context)
	if err != nil {
		return nil, err
	}

	for _, account := range allKnownAccounts(accounts) {
		if account.ID == id {
			found := account
			return &found, nil
		}
	}

	return nil, apperr.NotFound("Account")
}

/*
CountByRole returns the number of known accounts per role, demo seeds included.

Parameters:
  - context: context.Context

Returns:
  - map[sec.UserRole]int: Role → count
  - error: Storage failures
*/
func (store *Store) CountByRole(context context.Context) (map[sec.UserRole]int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, accounts, err := store.readRegistry(context)
	if err != nil {
		return nil, err
	}

	counts := make(map[sec.UserRole]int)
	for _, account := range allKnownAccounts(accounts) {
		counts[account.Role]++
	}
	return counts, nil
}

// CurrentAccount returns a copy of the authenticated account, or nil when anonymous.
func (store *Store) CurrentAccount() *Account {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.current == nil {
		return nil
	}
	account := *store.current
	return &account
}

// IsLoading reports whether the store is still bootstrapping its session.
func (store *Store) IsLoading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
}

// LastError returns the message of the most recent failed operation, or "".
func (store *Store) LastError() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.lastError
}

// # Observer Contract

// Subscribe registers a listener invoked synchronously after every successful
// session mutation. The returned function unsubscribes it.
func (store *Store) Subscribe(listener Listener) (unsubscribe func()) {
	store.mu.Lock()
	defer store.mu.Unlock()

	id := store.listenerID
	store.listenerID++
	store.listeners[id] = listener

	return func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		delete(store.listeners, id)
	}
}

// notify invokes all listeners with the current account, outside the lock so a
// listener may call back into the store.
func (store *Store) notify() {
	store.mu.Lock()
	current := store.current
	if current != nil {
		account := *current
		current = &account
	}
	listeners := make([]Listener, 0, len(store.listeners))
	for _, listener := range store.listeners {
		listeners = append(listeners, listener)
	}
	store.mu.Unlock()

	for _, listener := range listeners {
		listener(current)
	}
}

// # Internals

// activate persists the session pointer and makes account the active session.
// Caller must hold the mutex.
func (store *Store) activate(context context.Context, account Account) (*Account, error) {
	raw, err := json.Marshal(account)
	if err != nil {
		return nil, store.fail(fmt.Errorf("identity_session_encode_failed: %w", err))
	}

	if err := store.kv.Set(context, store.sessionKey, string(raw)); err != nil {
		return nil, store.fail(err)
	}

	store.current = &account
	store.lastError = ""

	// Release around the listener fan-out, then restore for the deferred unlock
	store.mu.Unlock()
	store.notify()
	store.mu.Lock()

	result := account
	return &result, nil
}

// fail records the message for LastError and passes the error through.
// Caller must hold the mutex.
func (store *Store) fail(err error) error {
	store.lastError = err.Error()
	return err
}

// readRegistry loads the persisted account array. A missing or malformed
// value yields the empty registry and the raw string that was actually read,
// so CompareAndSwap can detect concurrent modification precisely.
func (store *Store) readRegistry(context context.Context) (raw string, accounts []Account, err error) {
	raw, err = store.kv.Get(context, store.registryKey)
	if err == ErrNoValue {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("identity_registry_read_failed: %w", err)
	}

	if jsonErr := json.Unmarshal([]byte(raw), &accounts); jsonErr != nil {
		// Malformed registry blob: treat as empty but keep raw for CAS
		return raw, nil, nil
	}

	return raw, accounts, nil
}

// allKnownAccounts is the demo ∪ persisted union used by every lookup.
func allKnownAccounts(persisted []Account) []Account {
	return append(DemoAccounts(), persisted...)
}

// emailTaken reports whether any known account already uses the normalized email.
func emailTaken(persisted []Account, normalized string) bool {
	for _, account := range allKnownAccounts(persisted) {
		if NormalizeEmail(account.Email) == normalized {
			return true
		}
	}
	return false
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Registration and login must use the identical normalization or the
// uniqueness invariant silently splits into case-variant duplicates.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
