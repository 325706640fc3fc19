package storage

import (
	"github.com/goliatone/go-user-records/users"
	"github.com/uptrace/bun"
)

const (
	usersTable     = "users"
	citiesTable    = "cities"
	countriesTable = "countries"
)

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID      int64   `bun:"id,pk,autoincrement"`
	Name    string  `bun:"name,type:varchar(255),notnull"`
	Email   string  `bun:"email,type:varchar(255),notnull,unique"`
	Mobile  *string `bun:"mobile,type:varchar(255),unique"`
	City    *int64  `bun:"city"`
	Country *int64  `bun:"country"`
}

type cityRow struct {
	bun.BaseModel `bun:"table:cities,alias:c"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,type:varchar(255),notnull,unique"`
}

type countryRow struct {
	bun.BaseModel `bun:"table:countries,alias:co"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,type:varchar(255),notnull,unique"`
}

// joinedUser is the users row with its labels joined in.
type joinedUser struct {
	ID      int64   `bun:"id"`
	Name    string  `bun:"name"`
	Email   string  `bun:"email"`
	Mobile  *string `bun:"mobile"`
	City    *string `bun:"city"`
	Country *string `bun:"country"`
}

func (j joinedUser) toUser() *users.User {
	return &users.User{
		ID:      j.ID,
		Name:    j.Name,
		Email:   j.Email,
		Mobile:  deref(j.Mobile),
		City:    deref(j.City),
		Country: deref(j.Country),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable maps the empty string to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
