package testsupport

import (
	"context"
	"testing"

	"github.com/goliatone/go-user-records/storage"
	"github.com/goliatone/go-user-records/users"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SQLiteDSN returns a DSN for a private in-memory database.
func SQLiteDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

// NewSQLiteDB opens an in-memory sqlite database with the users schema in
// place. It is closed when the test ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()

	db, err := storage.Open(storage.OpenOptions{
		Driver: storage.DriverSQLite,
		DSN:    SQLiteDSN(),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

// NewStore returns a storage.Store on a fresh in-memory database.
func NewStore(t testing.TB, opts ...storage.Option) *storage.Store {
	t.Helper()
	return storage.New(NewSQLiteDB(t), opts...)
}

// Users returns the records in testdata/users.json, without ids.
func Users(t testing.TB) []users.User {
	t.Helper()

	var records []users.User
	LoadFixtureJSON(t, FixturePath("users.json"), &records)
	return records
}

// SeedUsers creates every fixture user through repo and returns the stored records.
func SeedUsers(t testing.TB, repo storage.Repository) []users.User {
	t.Helper()

	var created []users.User
	for _, u := range Users(t) {
		stored, err := repo.Create(context.Background(), u)
		if err != nil {
			t.Fatalf("failed to seed %s: %v", u.Email, err)
		}
		created = append(created, *stored)
	}
	return created
}
