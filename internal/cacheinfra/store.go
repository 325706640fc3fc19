package cacheinfra

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("cache store is closed")

// Store is a byte oriented key value store with per entry expiration.
// Implementations propagate transport failures instead of hiding them.
type Store interface {
	// Get returns the stored bytes and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying connections.
	Close() error
}

// NewStore validates cfg and builds the store for the selected backend.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendMemory:
		return NewSturdycStore(cfg)
	default:
		return NewRedisStore(cfg)
	}
}
