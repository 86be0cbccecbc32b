// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package identity

import (
	"context"
	"errors"
)

// # Key-Value Persistence Surface

// ErrNoValue is returned by [KeyValue.Get] when no value exists for a key.
var ErrNoValue = errors.New("identity: no value stored for key")

// KeyValue defines the persistence contract for the identity store.
//
// Exactly two keys are ever used: the session pointer (a JSON-serialized
// Account) and the account registry (a JSON-serialized array of Accounts).
// A malformed value on read is treated as absent by the store, never as a
// fatal error.
type KeyValue interface {

	/*
		Get returns the string value stored under key.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - string: Stored value
		  - error: ErrNoValue when absent, or retrieval failures
	*/
	Get(context context.Context, key string) (string, error)

	/*
		Set stores value under key, replacing any previous value.

		Parameters:
		  - context: context.Context
		  - key: string
		  - value: string

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, key string, value string) error

	/*
		Remove deletes the value under key. Removing an absent key is a no-op.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Persistence failures
	*/
	Remove(context context.Context, key string) error

	/*
		CompareAndSwap writes next under key only if the current value still
		equals expected. An empty expected string means "expect absent".

		This is the optimistic-concurrency primitive guarding the registry's
		read-modify-write cycle against concurrent writers sharing the same
		persistence surface.

		Parameters:
		  - context: context.Context
		  - key: string
		  - expected: string
		  - next: string

		Returns:
		  - bool: Whether the swap was applied
		  - error: Persistence failures
	*/
	CompareAndSwap(context context.Context, key string, expected string, next string) (bool, error)
}
