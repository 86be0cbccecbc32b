// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyValue implements the [KeyValue] port using Redis.
type RedisKeyValue struct {
	client *redis.Client
}

// NewRedisKeyValue creates a new Redis-backed [KeyValue].
func NewRedisKeyValue(client *redis.Client) *RedisKeyValue {
	return &RedisKeyValue{client: client}
}

/*
Get returns the value stored under key.

Description: Maps redis.Nil onto [ErrNoValue] so callers never see
driver-level sentinels.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - string: Stored value
  - error: ErrNoValue or connectivity errors
*/
func (keyValue *RedisKeyValue) Get(context context.Context, key string) (string, error) {

	// Get the value from Redis
	value, err := keyValue.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoValue
		}
		return "", fmt.Errorf("redis_kv_get_failed: %w", err)
	}

	// Return the value
	return value, nil
}

/*
Set stores value under key with no expiration.

Parameters:
  - context: context.Context
  - key: string
  - value: string

Returns:
  - error: Execution errors
*/
func (keyValue *RedisKeyValue) Set(context context.Context, key string, value string) error {

	// Registry and session state are durable; no TTL
	if err := keyValue.client.Set(context, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis_kv_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Remove deletes the value under key.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Deletion failures
*/
func (keyValue *RedisKeyValue) Remove(context context.Context, key string) error {

	// Delete the key from Redis; DEL of a missing key is a no-op
	if err := keyValue.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_kv_remove_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
CompareAndSwap writes next under key only if the current value equals expected.

Description: Implemented with Redis optimistic locking (WATCH + MULTI/EXEC).
If another client writes the key between the read and the transaction commit,
the swap reports false and the caller re-reads and retries.

Parameters:
  - context: context.Context
  - key: string
  - expected: string (empty string means "expect absent")
  - next: string

Returns:
  - bool: Whether the swap was applied
  - error: Connectivity errors
*/
func (keyValue *RedisKeyValue) CompareAndSwap(context context.Context, key string, expected string, next string) (bool, error) {
	swapped := false

	err := keyValue.client.Watch(context, func(tx *redis.Tx) error {

		// Read the current value under WATCH
		current, err := tx.Get(context, key).Result()
		if errors.Is(err, redis.Nil) {
			current = ""
		} else if err != nil {
			return err
		}

		// Value moved underneath us: report no swap without an error
		if current != expected {
			return nil
		}

		// Commit the write transactionally; EXEC fails if key was touched
		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, key, next, 0)
			return nil
		})
		if err != nil {
			return err
		}

		swapped = true
		return nil
	}, key)

	// A failed EXEC is contention, not an error condition
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis_kv_cas_failed: %w", err)
	}

	return swapped, nil
}
