// Package usercache coordinates the user store and its cache.
//
// # Overview
//
// Coordinator owns no state of its own. Each call validates its input, talks
// to the storage.Repository and keeps the cache.Service entry for the record
// in step:
//
//   - GetUser reads the cache first and populates it from the store on a miss
//   - SetUser checks email and mobile uniqueness before inserting
//   - UpdateUser and ReplaceUser overwrite the cache entry with the stored result
//   - DelUser drops the cache entry before deleting the row
//
// # Basic Usage
//
//	store := storage.New(db)
//	svc, _ := cache.NewService(cache.DefaultConfig())
//	coord := usercache.New(store, svc, usercache.WithLogger(logger))
//
//	u, err := coord.SetUser(ctx, users.User{Name: "Ann", Email: "ann@x.com"})
//	u, err = coord.GetUser(ctx, u.ID)
//
// # Failure Policy
//
// Absence is not an error: a missing record is returned as (nil, nil).
//
// Cache read errors abort GetUser instead of falling back to the store, so an
// unhealthy cache is visible to callers. Cache write errors after a committed
// store write are also returned; the caller sees a failure although the row
// changed, and the next successful write or the TTL brings the cache back in
// line.
//
// When an update or replace matches no row the cache is left untouched.
//
// # Concurrency
//
// Calls run on the caller's goroutine and share the adapters' pools. There is
// no per id locking: concurrent writers to one id may leave the cache briefly
// stale until the next write or expiry.
package usercache
