package cacheinfra

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/viccon/sturdyc"
)

// entry pairs encoded bytes with their own deadline so a write can ask for a
// shorter lifetime than the client wide TTL.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// sturdycStore keeps entries in an in-process sturdyc client.
type sturdycStore struct {
	client *sturdyc.Client[entry]
	ttl    time.Duration
	closed atomic.Bool
	now    func() time.Time
}

// NewSturdycStore creates the in-process store.
//
// The constructor translates Config parameters to sturdyc initialization:
// Capacity, NumShards, TTL and EvictionPercentage are passed to sturdyc.New(),
// EvictionInterval is applied as an option when set.
func NewSturdycStore(cfg Config) (*sturdycStore, error) {
	if cfg.Backend == "" {
		cfg.Backend = BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[entry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		options...,
	)

	return &sturdycStore{client: client, ttl: cfg.TTL, now: time.Now}, nil
}

// Get implements Store.Get. Entries past their own deadline count as misses
// and are dropped.
func (s *sturdycStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.usable(ctx); err != nil {
		return nil, false, err
	}

	e, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expiresAt) {
		s.client.Delete(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set implements Store.Set. A ttl longer than the client TTL is capped by the
// client; a non-positive ttl uses the client TTL.
func (s *sturdycStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.usable(ctx); err != nil {
		return err
	}
	if ttl <= 0 || ttl > s.ttl {
		ttl = s.ttl
	}

	data := make([]byte, len(value))
	copy(data, value)
	s.client.Set(key, entry{data: data, expiresAt: s.now().Add(ttl)})
	return nil
}

// Delete implements Store.Delete.
func (s *sturdycStore) Delete(ctx context.Context, key string) error {
	if err := s.usable(ctx); err != nil {
		return err
	}
	s.client.Delete(key)
	return nil
}

// Ping implements Store.Ping.
func (s *sturdycStore) Ping(ctx context.Context) error {
	return s.usable(ctx)
}

// Close implements Store.Close. Later calls fail with ErrClosed.
func (s *sturdycStore) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *sturdycStore) usable(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}
