// Package cache stores serialized user records by key for the cache-aside read path.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - Service: get, set and delete of user records with a default TTL
//   - KeySerializer: builds stable keys such as "user:42"
//
// The cache is derived state. The relational store stays authoritative and the
// usercache coordinator decides when entries are populated or dropped.
//
// # Basic Usage
//
//	svc, err := cache.NewService(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	u, err := svc.Get(ctx, cache.UserKey(42))
//	if err != nil {
//		return err // transport or decode failure
//	}
//	if u == nil {
//		// miss
//	}
//
// # Backends
//
// Config.Backend selects where entries live:
//
//   - "redis": a go-redis UniversalClient. Comma separated URLs form a cluster.
//   - "memory": an in-process sturdyc client, useful for tests and single node setups.
//
// Retries and timeouts are connection settings (ConnectionTimeout, MaxRetries).
// Service methods do not retry on their own.
//
// # Codecs
//
// Entries are encoded with JSON by default. Setting Config.Codec to "msgpack"
// trades readability in redis-cli for smaller values.
//
// # Error Handling
//
// A miss is (nil, nil). Anything else that goes wrong, including an entry that
// cannot be decoded, is returned to the caller. Check is the only method that
// swallows errors: it logs them and reports false.
package cache
