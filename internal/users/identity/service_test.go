// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package identity_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepsakehq/keepsake/internal/users/identity"
)

const (
	testSessionKey  = "identity:session"
	testRegistryKey = "identity:registry"
)

// newTestStore builds a bootstrapped store over a fresh in-memory surface.
func newTestStore(t *testing.T) (*identity.Store, *identity.MemoryKeyValue) {
	t.Helper()

	kv := identity.NewMemoryKeyValue()
	store := identity.NewStore(kv, testSessionKey, testRegistryKey)
	require.NoError(t, store.Bootstrap(context.Background()))

	return store, kv
}

/*
TestStore_Bootstrap verifies session hydration across the possible persisted states.
*/
func TestStore_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_surface_starts_anonymous", func(t *testing.T) {
		store, _ := newTestStore(t)

		assert.Nil(t, store.CurrentAccount())
		assert.False(t, store.IsLoading())
	})

	t.Run("valid_session_is_restored", func(t *testing.T) {
		kv := identity.NewMemoryKeyValue()
		seeded := identity.DemoAccounts()[1]
		raw, err := json.Marshal(seeded)
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, testSessionKey, string(raw)))

		store := identity.NewStore(kv, testSessionKey, testRegistryKey)
		assert.True(t, store.IsLoading())
		require.NoError(t, store.Bootstrap(ctx))

		current := store.CurrentAccount()
		require.NotNil(t, current)
		assert.Equal(t, seeded.ID, current.ID)
		assert.False(t, store.IsLoading())
	})

	t.Run("corrupt_blob_is_repaired_to_anonymous", func(t *testing.T) {
		kv := identity.NewMemoryKeyValue()
		require.NoError(t, kv.Set(ctx, testSessionKey, "{not json"))

		store := identity.NewStore(kv, testSessionKey, testRegistryKey)
		require.NoError(t, store.Bootstrap(ctx))

		assert.Nil(t, store.CurrentAccount())

		// The corrupt value is discarded, not left behind
		_, err := kv.Get(ctx, testSessionKey)
		assert.ErrorIs(t, err, identity.ErrNoValue)
	})

	t.Run("invalid_role_in_blob_is_repaired", func(t *testing.T) {
		kv := identity.NewMemoryKeyValue()
		require.NoError(t, kv.Set(ctx, testSessionKey, `{"id":"x","email":"x@y.z","role":"superadmin"}`))

		store := identity.NewStore(kv, testSessionKey, testRegistryKey)
		require.NoError(t, store.Bootstrap(ctx))

		assert.Nil(t, store.CurrentAccount())
	})
}

/*
TestStore_Register covers account creation, validation, and the uniqueness invariant.
*/
func TestStore_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_account_and_activates_session", func(t *testing.T) {
		store, kv := newTestStore(t)

		account, err := store.Register(ctx, identity.RegisterInput{
			Name:     "Ada Lovelace",
			Email:    "Ada@Example.com",
			Password: "s3cret",
			Role:     "user",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, account.ID)
		assert.Equal(t, "ada@example.com", account.Email)
		assert.False(t, account.IsDemo)
		assert.False(t, account.CreatedAt.IsZero())

		current := store.CurrentAccount()
		require.NotNil(t, current)
		assert.Equal(t, account.ID, current.ID)

		// Registry and session pointer were both persisted
		raw, err := kv.Get(ctx, testRegistryKey)
		require.NoError(t, err)
		var persisted []identity.Account
		require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
		require.Len(t, persisted, 1)
		assert.Equal(t, "s3cret", persisted[0].Password)

		_, err = kv.Get(ctx, testSessionKey)
		assert.NoError(t, err)
	})

	t.Run("rejects_invalid_role", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Register(ctx, identity.RegisterInput{
			Name:     "Bad",
			Email:    "bad@example.com",
			Password: "pw",
			Role:     "superadmin",
		})
		assert.ErrorIs(t, err, identity.ErrInvalidRole)
		assert.NotEmpty(t, store.LastError())
	})

	t.Run("role_is_case_insensitive", func(t *testing.T) {
		store, _ := newTestStore(t)

		account, err := store.Register(ctx, identity.RegisterInput{
			Name:     "Cased",
			Email:    "cased@example.com",
			Password: "pw",
			Role:     "  Admin ",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", string(account.Role))
	})

	t.Run("rejects_duplicate_email_any_case", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Register(ctx, identity.RegisterInput{
			Name: "First", Email: "taken@example.com", Password: "pw", Role: "user",
		})
		require.NoError(t, err)

		_, err = store.Register(ctx, identity.RegisterInput{
			Name: "Second", Email: "TAKEN@example.COM", Password: "pw2", Role: "user",
		})
		assert.ErrorIs(t, err, identity.ErrEmailAlreadyExists)
	})

	t.Run("rejects_demo_account_email", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Register(ctx, identity.RegisterInput{
			Name: "Imposter", Email: "admin@keepsake.demo", Password: "pw", Role: "user",
		})
		assert.ErrorIs(t, err, identity.ErrEmailAlreadyExists)
	})

	t.Run("malformed_registry_blob_is_treated_as_empty", func(t *testing.T) {
		store, kv := newTestStore(t)
		require.NoError(t, kv.Set(ctx, testRegistryKey, "][ nonsense"))

		account, err := store.Register(ctx, identity.RegisterInput{
			Name: "Fresh", Email: "fresh@example.com", Password: "pw", Role: "user",
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh@example.com", account.Email)
	})
}

/*
TestStore_Login exercises credential matching across persisted and demo accounts.
*/
func TestStore_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("matches_registered_account", func(t *testing.T) {
		store, _ := newTestStore(t)

		registered, err := store.Register(ctx, identity.RegisterInput{
			Name: "Ada", Email: "ada@example.com", Password: "s3cret", Role: "user",
		})
		require.NoError(t, err)
		require.NoError(t, store.Logout(ctx))

		account, err := store.Login(ctx, "  ADA@example.com ", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
		assert.Empty(t, store.LastError())
	})

	t.Run("matches_demo_account_by_credentials", func(t *testing.T) {
		store, _ := newTestStore(t)

		account, err := store.Login(ctx, "demo@keepsake.demo", "demo1234")
		require.NoError(t, err)
		assert.True(t, account.IsDemo)
	})

	t.Run("wrong_password_and_unknown_email_are_indistinguishable", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Register(ctx, identity.RegisterInput{
			Name: "Ada", Email: "ada@example.com", Password: "s3cret", Role: "user",
		})
		require.NoError(t, err)

		_, wrongPassword := store.Login(ctx, "ada@example.com", "nope")
		_, unknownEmail := store.Login(ctx, "ghost@example.com", "s3cret")

		assert.ErrorIs(t, wrongPassword, identity.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, identity.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})

	t.Run("password_comparison_is_case_sensitive", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Login(ctx, "demo@keepsake.demo", "DEMO1234")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})
}

/*
TestStore_LoginDemo verifies the one-click demo session flow.
*/
func TestStore_LoginDemo(t *testing.T) {
	ctx := context.Background()

	t.Run("activates_demo_account_per_role", func(t *testing.T) {
		store, kv := newTestStore(t)

		admin, err := store.LoginDemo(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, admin.IsDemo)
		assert.Equal(t, "admin@keepsake.demo", admin.Email)

		user, err := store.LoginDemo(ctx, "USER")
		require.NoError(t, err)
		assert.Equal(t, "demo@keepsake.demo", user.Email)

		// Demo accounts never enter the persisted registry
		_, err = kv.Get(ctx, testRegistryKey)
		assert.ErrorIs(t, err, identity.ErrNoValue)
	})

	t.Run("rejects_invalid_role", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.LoginDemo(ctx, "root")
		assert.ErrorIs(t, err, identity.ErrInvalidRole)
	})
}

/*
TestStore_Logout verifies idempotent session teardown.
*/
func TestStore_Logout(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	_, err := store.LoginDemo(ctx, "user")
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx))
	assert.Nil(t, store.CurrentAccount())

	_, err = kv.Get(ctx, testSessionKey)
	assert.ErrorIs(t, err, identity.ErrNoValue)

	// Logging out while anonymous is a no-op, never an error
	require.NoError(t, store.Logout(ctx))
}

/*
TestStore_FindByID checks registry lookups across demo and persisted accounts.
*/
func TestStore_FindByID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	registered, err := store.Register(ctx, identity.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "pw", Role: "user",
	})
	require.NoError(t, err)

	found, err := store.FindByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", found.Email)

	demo := identity.DemoAccounts()[0]
	found, err = store.FindByID(ctx, demo.ID)
	require.NoError(t, err)
	assert.True(t, found.IsDemo)

	_, err = store.FindByID(ctx, "no-such-id")
	assert.Error(t, err)
}

/*
TestStore_Subscribe verifies the synchronous observer contract.
*/
func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var events []*identity.Account
	unsubscribe := store.Subscribe(func(current *identity.Account) {
		events = append(events, current)
	})

	_, err := store.LoginDemo(ctx, "user")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0])
	assert.Equal(t, "demo@keepsake.demo", events[0].Email)

	require.NoError(t, store.Logout(ctx))
	require.Len(t, events, 2)
	assert.Nil(t, events[1])

	// Failed operations notify nobody
	_, err = store.LoginDemo(ctx, "root")
	require.Error(t, err)
	assert.Len(t, events, 2)

	unsubscribe()
	_, err = store.LoginDemo(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

/*
TestStore_RegistryRoundTrip replays a full lifecycle through a second store
sharing the same persistence surface.
*/
func TestStore_RegistryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := identity.NewMemoryKeyValue()

	first := identity.NewStore(kv, testSessionKey, testRegistryKey)
	require.NoError(t, first.Bootstrap(ctx))

	registered, err := first.Register(ctx, identity.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "s3cret", Role: "user",
	})
	require.NoError(t, err)

	// A second process over the same surface sees both the session and the account
	second := identity.NewStore(kv, testSessionKey, testRegistryKey)
	require.NoError(t, second.Bootstrap(ctx))

	current := second.CurrentAccount()
	require.NotNil(t, current)
	assert.Equal(t, registered.ID, current.ID)

	account, err := second.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
}

/*
TestMemoryKeyValue_CompareAndSwap pins the optimistic-locking semantics the
registry depends on.
*/
func TestMemoryKeyValue_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	kv := identity.NewMemoryKeyValue()

	// Empty expected means "expect absent"
	swapped, err := kv.CompareAndSwap(ctx, "k", "", "v1")
	require.NoError(t, err)
	assert.True(t, swapped)

	// Stale expected is rejected without error
	swapped, err = kv.CompareAndSwap(ctx, "k", "stale", "v2")
	require.NoError(t, err)
	assert.False(t, swapped)

	// Matching expected applies the swap
	swapped, err = kv.CompareAndSwap(ctx, "k", "v1", "v2")
	require.NoError(t, err)
	assert.True(t, swapped)

	value, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)
}
