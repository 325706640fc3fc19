package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// OpenOptions selects the driver and connection string for Open.
type OpenOptions struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Logger       logrus.FieldLogger
}

// Open connects to the database and wraps it in a bun.DB with the matching
// dialect. It does not verify connectivity; use Store.Check for that.
func Open(opts OpenOptions) (*bun.DB, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	sqldb, err := sql.Open(driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if opts.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(opts.MaxOpenConns)
	}

	var db *bun.DB
	if driver == DriverSQLite {
		// An in-memory database exists per connection.
		if strings.Contains(opts.DSN, ":memory:") || strings.Contains(opts.DSN, "mode=memory") {
			sqldb.SetMaxOpenConns(1)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	} else {
		db = bun.NewDB(sqldb, pgdialect.New())
	}

	if opts.Logger != nil {
		db.AddQueryHook(NewQueryHook(opts.Logger))
	}
	return db, nil
}
