package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-user-records/users"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

// Repository is the storage contract the coordinator depends on.
type Repository interface {
	Check(ctx context.Context) bool
	SelectByID(ctx context.Context, id int64) (*users.User, error)
	Create(ctx context.Context, user users.User) (*users.User, error)
	UpdatePartial(ctx context.Context, id int64, partial users.PartialUser) (*users.User, error)
	Replace(ctx context.Context, id int64, user users.User) (*users.User, error)
	DeleteByID(ctx context.Context, id int64) (*users.User, error)
	ExistsByField(ctx context.Context, field users.Field, value string) (bool, error)
}

// Store implements Repository on a bun database. Every method returns
// (nil, nil) when the target row does not exist.
type Store struct {
	db        *bun.DB
	users     repository.Repository[*userRow]
	cities    *lookup[*cityRow]
	countries *lookup[*countryRow]
	logger    logrus.FieldLogger
}

var _ Repository = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report failed health checks.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Store on db.
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{
		db:        db,
		users:     repository.NewRepository[*userRow](db, userHandlers()),
		cities:    newLookup(db, citiesTable, func(name string) *cityRow { return &cityRow{Name: name} }),
		countries: newLookup(db, countriesTable, func(name string) *countryRow { return &countryRow{Name: name} }),
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func userHandlers() repository.ModelHandlers[*userRow] {
	return repository.ModelHandlers[*userRow]{
		NewRecord:     func() *userRow { return &userRow{} },
		GetID:         func(*userRow) uuid.UUID { return uuid.Nil },
		SetID:         func(*userRow, uuid.UUID) {},
		GetIdentifier: func() string { return "email" },
	}
}

// Check issues a trivial query and reports whether it succeeded.
func (s *Store) Check(ctx context.Context) bool {
	var one int
	if err := s.db.NewRaw("SELECT 1").Scan(ctx, &one); err != nil {
		s.logger.WithError(err).Error("database health check failed")
		return false
	}
	return true
}

// SelectByID returns the joined record for id.
func (s *Store) SelectByID(ctx context.Context, id int64) (*users.User, error) {
	return s.SelectByIDTx(ctx, s.db, id)
}

// SelectByIDTx is SelectByID on db.
func (s *Store) SelectByIDTx(ctx context.Context, db bun.IDB, id int64) (*users.User, error) {
	var row joinedUser
	err := db.NewSelect().
		ColumnExpr("u.id, u.name, u.email, u.mobile").
		ColumnExpr("c.name AS city").
		ColumnExpr("co.name AS country").
		TableExpr("? AS u", bun.Ident(usersTable)).
		Join("LEFT JOIN ? AS c ON c.id = u.city", bun.Ident(citiesTable)).
		Join("LEFT JOIN ? AS co ON co.id = u.country", bun.Ident(countriesTable)).
		Where("u.id = ?", id).
		Limit(1).
		Scan(ctx, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return row.toUser(), nil
}

// Create inserts user, resolving its labels, and returns the stored record.
func (s *Store) Create(ctx context.Context, user users.User) (*users.User, error) {
	var out *users.User
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = s.CreateTx(ctx, tx, user)
		return err
	})
	return out, err
}

// CreateTx is Create on db.
func (s *Store) CreateTx(ctx context.Context, db bun.IDB, user users.User) (*users.User, error) {
	city, err := s.ResolveLookupTx(ctx, db, citiesTable, user.City)
	if err != nil {
		return nil, err
	}
	country, err := s.ResolveLookupTx(ctx, db, countriesTable, user.Country)
	if err != nil {
		return nil, err
	}

	row := &userRow{
		Name:    user.Name,
		Email:   user.Email,
		Mobile:  nullable(user.Mobile),
		City:    city,
		Country: country,
	}
	res, err := db.NewInsert().Model(row).Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", translateWriteError(err))
	}
	if row.ID == 0 {
		if id, err := res.LastInsertId(); err == nil {
			row.ID = id
		}
	}

	return s.SelectByIDTx(ctx, db, row.ID)
}

// UpdatePartial writes the present fields of partial to row id. It fails
// with users.ErrNoFields before touching the database when no field is present.
func (s *Store) UpdatePartial(ctx context.Context, id int64, partial users.PartialUser) (*users.User, error) {
	if partial.Empty() {
		return nil, users.ErrNoFields
	}

	var out *users.User
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = s.UpdatePartialTx(ctx, tx, id, partial)
		return err
	})
	return out, err
}

// UpdatePartialTx is UpdatePartial on db.
func (s *Store) UpdatePartialTx(ctx context.Context, db bun.IDB, id int64, partial users.PartialUser) (*users.User, error) {
	fields := partial.Present()
	if len(fields) == 0 {
		return nil, users.ErrNoFields
	}

	q := db.NewUpdate().Model((*userRow)(nil)).Where("id = ?", id)
	for _, f := range fields {
		col, err := column(f)
		if err != nil {
			return nil, err
		}
		value, err := s.fieldValue(ctx, db, f, partial)
		if err != nil {
			return nil, err
		}
		q = q.Set("? = ?", bun.Ident(col), value)
	}

	return s.execUpdate(ctx, db, q, id)
}

// Replace overwrites every mutable column of row id with user.
func (s *Store) Replace(ctx context.Context, id int64, user users.User) (*users.User, error) {
	var out *users.User
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = s.ReplaceTx(ctx, tx, id, user)
		return err
	})
	return out, err
}

// ReplaceTx is Replace on db.
func (s *Store) ReplaceTx(ctx context.Context, db bun.IDB, id int64, user users.User) (*users.User, error) {
	city, err := s.ResolveLookupTx(ctx, db, citiesTable, user.City)
	if err != nil {
		return nil, err
	}
	country, err := s.ResolveLookupTx(ctx, db, countriesTable, user.Country)
	if err != nil {
		return nil, err
	}

	q := db.NewUpdate().
		Model((*userRow)(nil)).
		Set("name = ?", user.Name).
		Set("email = ?", user.Email).
		Set("mobile = ?", nullable(user.Mobile)).
		Set("city = ?", city).
		Set("country = ?", country).
		Where("id = ?", id)

	return s.execUpdate(ctx, db, q, id)
}

func (s *Store) execUpdate(ctx context.Context, db bun.IDB, q *bun.UpdateQuery, id int64) (*users.User, error) {
	res, err := q.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, translateWriteError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	if n == 0 {
		return nil, nil
	}

	return s.SelectByIDTx(ctx, db, id)
}

// fieldValue returns the value bound for f. Labels are resolved to lookup
// ids and an empty mobile is stored as NULL.
func (s *Store) fieldValue(ctx context.Context, db bun.IDB, f users.Field, p users.PartialUser) (any, error) {
	switch f {
	case users.FieldName:
		return *p.Name, nil
	case users.FieldEmail:
		return *p.Email, nil
	case users.FieldMobile:
		return nullable(*p.Mobile), nil
	case users.FieldCity, users.FieldCountry:
		table, _ := lookupTableFor(f)
		label := *p.City
		if f == users.FieldCountry {
			label = *p.Country
		}
		return s.ResolveLookupTx(ctx, db, table, label)
	default:
		return nil, fmt.Errorf("unknown field %q", string(f))
	}
}

// DeleteByID removes row id and returns its last joined state.
func (s *Store) DeleteByID(ctx context.Context, id int64) (*users.User, error) {
	var out *users.User
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = s.DeleteByIDTx(ctx, tx, id)
		return err
	})
	return out, err
}

// DeleteByIDTx is DeleteByID on db.
func (s *Store) DeleteByIDTx(ctx context.Context, db bun.IDB, id int64) (*users.User, error) {
	existing, err := s.SelectByIDTx(ctx, db, id)
	if err != nil || existing == nil {
		return nil, err
	}

	if err := s.users.DeleteTx(ctx, db, &userRow{ID: id}); err != nil {
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}
	return existing, nil
}

// ExistsByField reports whether a user has value in the email or mobile
// column. Other fields fail with ErrFieldNotAllowed without a query.
func (s *Store) ExistsByField(ctx context.Context, field users.Field, value string) (bool, error) {
	col, err := uniqueColumn(field)
	if err != nil {
		return false, err
	}

	exists, err := s.db.NewSelect().
		Model((*userRow)(nil)).
		Where("? = ?", bun.Ident(col), value).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check %s exists: %w", col, err)
	}
	return exists, nil
}
