// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package identity

import (
	"context"
	"sync"
)

// MemoryKeyValue implements the [KeyValue] port with an in-process map.
//
// # Usage
//
// It backs the identity store in unit tests and in local development when no
// Redis instance is available. All operations are safe for concurrent use.
type MemoryKeyValue struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKeyValue creates an empty in-memory [KeyValue].
func NewMemoryKeyValue() *MemoryKeyValue {
	return &MemoryKeyValue{values: make(map[string]string)}
}

// Get returns the value stored under key, or [ErrNoValue] when absent.
func (keyValue *MemoryKeyValue) Get(_ context.Context, key string) (string, error) {
	keyValue.mu.Lock()
	defer keyValue.mu.Unlock()

	value, ok := keyValue.values[key]
	if !ok {
		return "", ErrNoValue
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (keyValue *MemoryKeyValue) Set(_ context.Context, key string, value string) error {
	keyValue.mu.Lock()
	defer keyValue.mu.Unlock()

	keyValue.values[key] = value
	return nil
}

// Remove deletes the value under key. Removing an absent key is a no-op.
func (keyValue *MemoryKeyValue) Remove(_ context.Context, key string) error {
	keyValue.mu.Lock()
	defer keyValue.mu.Unlock()

	delete(keyValue.values, key)
	return nil
}

// CompareAndSwap writes next only if the current value equals expected.
// An empty expected string means "expect absent".
func (keyValue *MemoryKeyValue) CompareAndSwap(_ context.Context, key string, expected string, next string) (bool, error) {
	keyValue.mu.Lock()
	defer keyValue.mu.Unlock()

	current := keyValue.values[key]
	if current != expected {
		return false, nil
	}

	keyValue.values[key] = next
	return true, nil
}
