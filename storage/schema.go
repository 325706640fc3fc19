package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// EnsureSchema creates the lookup and users tables when they are missing.
// It never alters existing tables.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	lookups := []any{(*cityRow)(nil), (*countryRow)(nil)}
	for _, model := range lookups {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create lookup table: %w", err)
		}
	}

	_, err := db.NewCreateTable().
		Model((*userRow)(nil)).
		IfNotExists().
		ForeignKey(`("city") REFERENCES "cities" ("id")`).
		ForeignKey(`("country") REFERENCES "countries" ("id")`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}
