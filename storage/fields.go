package storage

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-user-records/users"
)

// ErrFieldNotAllowed is returned for an existence check on a column that is
// not one of the unique user columns.
var ErrFieldNotAllowed = errors.New("field not allowed for existence check")

// column returns the users column for a field. The mapping is static: the
// returned identifier never comes from caller input.
func column(f users.Field) (string, error) {
	switch f {
	case users.FieldName:
		return "name", nil
	case users.FieldEmail:
		return "email", nil
	case users.FieldMobile:
		return "mobile", nil
	case users.FieldCity:
		return "city", nil
	case users.FieldCountry:
		return "country", nil
	default:
		return "", fmt.Errorf("unknown field %q", string(f))
	}
}

// uniqueColumn is column restricted to the fields ExistsByField accepts.
func uniqueColumn(f users.Field) (string, error) {
	if !f.Unique() {
		return "", fmt.Errorf("%w: %q", ErrFieldNotAllowed, string(f))
	}
	return column(f)
}

// lookupTableFor returns the lookup table backing a label field.
func lookupTableFor(f users.Field) (string, bool) {
	switch f {
	case users.FieldCity:
		return citiesTable, true
	case users.FieldCountry:
		return countriesTable, true
	default:
		return "", false
	}
}
