package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ConstraintKind identifies which kind of integrity constraint a write violated.
type ConstraintKind int

const (
	UniqueViolation ConstraintKind = iota + 1
	ForeignKeyViolation
)

func (k ConstraintKind) String() string {
	switch k {
	case UniqueViolation:
		return "unique"
	case ForeignKeyViolation:
		return "foreign key"
	default:
		return "unknown"
	}
}

// ConstraintViolation is returned by repositories when the database rejects a
// write because of a unique or foreign key constraint.
type ConstraintViolation struct {
	Kind       ConstraintKind
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s constraint %q violated", e.Kind, e.Constraint)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// Postgres SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// classify converts lib/pq constraint errors into *ConstraintViolation and
// returns every other error unchanged.
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return &ConstraintViolation{Kind: UniqueViolation, Constraint: pqErr.Constraint, Err: err}
	case pqForeignKeyViolation:
		return &ConstraintViolation{Kind: ForeignKeyViolation, Constraint: pqErr.Constraint, Err: err}
	}
	return err
}

// IsConstraintViolation reports whether err carries a ConstraintViolation of the given kind.
func IsConstraintViolation(err error, kind ConstraintKind) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv) && cv.Kind == kind
}
