package storage

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// labelRow is a row of a name lookup table.
type labelRow interface {
	rowID() int64
}

func (r *cityRow) rowID() int64    { return r.ID }
func (r *countryRow) rowID() int64 { return r.ID }

// lookup resolves labels in one lookup table through a generic repository
// keyed by the unique name column.
type lookup[T labelRow] struct {
	table     string
	repo      repository.Repository[T]
	newRecord func(name string) T
}

func newLookup[T labelRow](db *bun.DB, table string, newRecord func(name string) T) *lookup[T] {
	handlers := repository.ModelHandlers[T]{
		NewRecord: func() T { return newRecord("") },
		// Lookup rows use integer autoincrement keys.
		GetID:         func(T) uuid.UUID { return uuid.Nil },
		SetID:         func(T, uuid.UUID) {},
		GetIdentifier: func() string { return "name" },
	}
	return &lookup[T]{
		table:     table,
		repo:      repository.NewRepository[T](db, handlers),
		newRecord: newRecord,
	}
}

func insertIgnoringName(q *bun.InsertQuery) *bun.InsertQuery {
	return q.On("CONFLICT (name) DO NOTHING")
}

// resolve returns the id of the row named name, creating it when missing.
// A conflicting insert returns no row; the winner is then read back.
func (l *lookup[T]) resolve(ctx context.Context, db bun.IDB, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}

	id, found, err := l.find(ctx, db, name)
	if err != nil {
		return nil, err
	}
	if found {
		return &id, nil
	}

	created, err := l.repo.CreateTx(ctx, db, l.newRecord(name), insertIgnoringName)
	if err != nil {
		return nil, fmt.Errorf("insert %s %q: %w", l.table, name, err)
	}
	if id := created.rowID(); id != 0 {
		return &id, nil
	}

	id, found, err = l.find(ctx, db, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("resolve %s %q: row missing after insert", l.table, name)
	}
	return &id, nil
}

func (l *lookup[T]) find(ctx context.Context, db bun.IDB, name string) (int64, bool, error) {
	row, err := l.repo.GetTx(ctx, db, repository.SelectBy("name", "=", name))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select %s %q: %w", l.table, name, err)
	}
	return row.rowID(), true, nil
}

// ResolveLookup returns the id of the row named name in table, creating the
// row when missing. An empty name resolves to nil so the reference is cleared.
func (s *Store) ResolveLookup(ctx context.Context, table, name string) (*int64, error) {
	return s.ResolveLookupTx(ctx, s.db, table, name)
}

// ResolveLookupTx is ResolveLookup on db.
func (s *Store) ResolveLookupTx(ctx context.Context, db bun.IDB, table, name string) (*int64, error) {
	switch table {
	case citiesTable:
		return s.cities.resolve(ctx, db, name)
	case countriesTable:
		return s.countries.resolve(ctx, db, name)
	default:
		return nil, fmt.Errorf("unknown lookup table %q", table)
	}
}
