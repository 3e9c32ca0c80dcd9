// Package kv is the persisted store used by every per-session container:
// a byte-oriented key-value Backend plus typed JSON Load and Save helpers.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by backends when a key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Backend is durable (or stand-in) key-value storage.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Supported driver names for Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open builds the backend named by driver.
func Open(driver, path string) (Backend, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory()
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// Lookup reads and decodes the JSON value stored under key.
//
// Returns ErrNotFound for a missing key and a decode error for a value that
// does not parse as T.
func Lookup[T any](ctx context.Context, b Backend, key string) (T, error) {
	var v T
	raw, err := b.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// Load returns the value stored under key, or def when the key is missing,
// unreadable, or does not parse. It never fails.
func Load[T any](ctx context.Context, b Backend, key string, def T) T {
	v, err := Lookup[T](ctx, b, key)
	if err != nil {
		return def
	}
	return v
}

// Save encodes value as JSON and writes it under key unconditionally.
func Save[T any](ctx context.Context, b Backend, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
