package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when an insert/update references a missing row.
	ErrForeignKey = errors.New("foreign key constraint violation")
)

// ConstraintError carries the name of the violated constraint alongside one
// of ErrDuplicateKey or ErrForeignKey.
type ConstraintError struct {
	Kind       error
	Constraint string
	Message    string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v: %s (constraint: %s)", e.Kind, e.Message, e.Constraint)
}

func (e *ConstraintError) Unwrap() error { return e.Kind }

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx
// This allows repository methods to be used within transactions or with a direct DB connection.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// wrapWriteError maps pq constraint violations to ConstraintError and
// everything else to ErrDatabaseError.
func wrapWriteError(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return &ConstraintError{Kind: ErrDuplicateKey, Constraint: pqErr.Constraint, Message: pqErr.Message}
		case "foreign_key_violation":
			return &ConstraintError{Kind: ErrForeignKey, Constraint: pqErr.Constraint, Message: pqErr.Message}
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
}

// checkAffected turns a zero-row update or delete into ErrNotFound.
func checkAffected(result sql.Result, action string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for %s: %v", ErrDatabaseError, action, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
