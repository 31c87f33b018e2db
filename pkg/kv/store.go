package kv

import "context"

// Store defines the interface for durable client-state persistence.
// Values are opaque strings; callers JSON-encode anything structured.
type Store interface {
	// Get retrieves the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases any resources held by the store.
	Close() error
}
