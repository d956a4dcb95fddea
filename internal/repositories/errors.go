package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies store failures at the repository boundary. Callers above the
// service layer never see the underlying database error, only the kind.
type Kind string

const (
	KindConflict           Kind = "conflict"
	KindNotFound           Kind = "not_found"
	KindValidationFailed   Kind = "validation_failed"
	KindStorageUnavailable Kind = "storage_unavailable"
)

// StoreError wraps a low-level database error with its classification.
// Constraint carries the violated constraint name when the database reports
// one, so callers can tell conflicts on different constraints apart.
type StoreError struct {
	Kind       Kind
	Op         string
	Constraint string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// classify maps a database error onto the store error taxonomy
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &StoreError{Kind: KindNotFound, Op: op, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			// unique_violation
			return &StoreError{Kind: KindConflict, Op: op, Constraint: pgErr.ConstraintName, Err: err}
		case strings.HasPrefix(pgErr.Code, "23"), strings.HasPrefix(pgErr.Code, "22"):
			// other integrity violations and bad input data
			return &StoreError{Kind: KindValidationFailed, Op: op, Constraint: pgErr.ConstraintName, Err: err}
		}
	}

	return &StoreError{Kind: KindStorageUnavailable, Op: op, Err: err}
}

// ConflictOn reports whether err is a unique-constraint conflict on the named
// constraint
func ConflictOn(err error, constraint string) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == KindConflict && se.Constraint == constraint
}

// KindOf returns the classification of a store error, or
// KindStorageUnavailable for anything unclassified.
func KindOf(err error) Kind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorageUnavailable
}
