package storage

import (
	"errors"
	"strings"

	"github.com/goliatone/go-user-records/users"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const pqUniqueViolation = "23505"

// translateWriteError maps unique violations on users.email and users.mobile
// to the domain conflict errors. Other errors are returned unchanged.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		if conflict := conflictFor(pqErr.Constraint + " " + pqErr.Detail); conflict != nil {
			return conflict
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		if conflict := conflictFor(liteErr.Error()); conflict != nil {
			return conflict
		}
	}

	return err
}

func conflictFor(text string) error {
	switch {
	case strings.Contains(text, "email"):
		return users.ErrDuplicateEmail
	case strings.Contains(text, "mobile"):
		return users.ErrDuplicateMobile
	default:
		return nil
	}
}
