// Package dberr turns raw Postgres constraint failures into typed errors
// that name the offending field, so callers can tell a duplicate username
// from a duplicate email without parsing driver message text.
package dberr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes handled by Translate.
const (
	codeUniqueViolation  = "23505"
	codeNotNullViolation = "23502"
	codeCheckViolation   = "23514"
	codeStringTruncation = "22001"
)

// Check describes a CHECK constraint: the field it guards and the rule it
// enforces (e.g. "available_copies <= total_copies").
type Check struct {
	Field string
	Rule  string
}

// Table carries the metadata Translate needs to resolve a constraint failure
// back to a field. Lengths maps a declared varchar length to its column,
// because Postgres reports string truncation (22001) without a column name.
type Table struct {
	Name    string
	Uniques map[string]string // constraint name -> field
	Checks  map[string]Check  // constraint name -> check
	Lengths map[int]string    // varchar(n) -> field
}

// DuplicateKeyError reports a unique-constraint violation.
type DuplicateKeyError struct {
	Field      string
	Constraint string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s already exists (constraint %s)", e.Field, e.Constraint)
}

// CheckError reports a CHECK-constraint violation.
type CheckError struct {
	Field      string
	Rule       string
	Constraint string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check violation on %s: %s (constraint %s)", e.Field, e.Rule, e.Constraint)
}

// NotNullError reports a NOT NULL violation.
type NotNullError struct {
	Field string
}

func (e *NotNullError) Error() string {
	return fmt.Sprintf("null value in required field %s", e.Field)
}

// LengthError reports a value exceeding its declared column length.
type LengthError struct {
	Field string
	Limit int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("value for %s exceeds %d characters", e.Field, e.Limit)
}

var varcharLenRe = regexp.MustCompile(`character varying\((\d+)\)`)

// Translate maps a Postgres constraint failure to a typed error using the
// table metadata. Errors that are not *pgconn.PgError constraint failures
// (connectivity, timeouts, syntax) are returned unchanged.
func Translate(err error, t Table) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		field := t.Uniques[pgErr.ConstraintName]
		if field == "" {
			field = pgErr.ConstraintName
		}
		return &DuplicateKeyError{Field: field, Constraint: pgErr.ConstraintName}

	case codeCheckViolation:
		c := t.Checks[pgErr.ConstraintName]
		if c.Field == "" {
			c.Field = pgErr.ConstraintName
		}
		return &CheckError{Field: c.Field, Rule: c.Rule, Constraint: pgErr.ConstraintName}

	case codeNotNullViolation:
		return &NotNullError{Field: pgErr.ColumnName}

	case codeStringTruncation:
		limit, field := 0, ""
		if m := varcharLenRe.FindStringSubmatch(pgErr.Message); m != nil {
			limit, _ = strconv.Atoi(m[1])
			field = t.Lengths[limit]
		}
		return &LengthError{Field: field, Limit: limit}
	}
	return err
}

// IsConstraint reports whether err is any of the typed constraint errors
// produced by Translate.
func IsConstraint(err error) bool {
	var dup *DuplicateKeyError
	var chk *CheckError
	var nn *NotNullError
	var ln *LengthError
	return errors.As(err, &dup) || errors.As(err, &chk) || errors.As(err, &nn) || errors.As(err, &ln)
}
