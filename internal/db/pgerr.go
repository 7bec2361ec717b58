package db

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	pqErr, ok := pqError(err)
	return ok && pqErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation matches both inserts referencing a missing row and
// deletes blocked by an ON DELETE RESTRICT reference.
func IsForeignKeyViolation(err error) bool {
	pqErr, ok := pqError(err)
	return ok && pqErr.Code == pgForeignKeyViolation
}

// Constraint returns the violated constraint name, or "".
func Constraint(err error) string {
	if pqErr, ok := pqError(err); ok {
		return pqErr.Constraint
	}
	return ""
}
