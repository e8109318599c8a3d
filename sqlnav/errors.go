package sqlnav

import (
	"errors"
	"fmt"
)

// Error represents a table or column that could not be found.
//
// Two kinds exist:
//   - Construction errors: Database.Table was asked for a table that does
//     not exist (ErrCodeNoSuchTable).
//   - Lookup errors: a lazily created view was used after its table or
//     column went missing, or before it was created (ErrCodeTableNotFound,
//     ErrCodeColumnNotFound).
//
// Failures reported by the database engine itself are never converted to
// Error; they are returned unchanged.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Table is the table involved.
	Table string

	// Column is the column involved (lookup errors only).
	Column string
}

// ErrorCode categorizes sqlnav errors.
type ErrorCode string

const (
	// ErrCodeNoSuchTable indicates a Table view was requested for a missing table.
	ErrCodeNoSuchTable ErrorCode = "NO_SUCH_TABLE"

	// ErrCodeTableNotFound indicates a view's table was missing when the view was used.
	ErrCodeTableNotFound ErrorCode = "TABLE_NOT_FOUND"

	// ErrCodeColumnNotFound indicates a referenced column was missing when used.
	ErrCodeColumnNotFound ErrorCode = "COLUMN_NOT_FOUND"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (table=%s, column=%s)", e.Code, e.Message, e.Table, e.Column)
	}
	return fmt.Sprintf("%s: %s (table=%s)", e.Code, e.Message, e.Table)
}

// IsConstructionError returns true if a view could not be created.
// Uses errors.As to handle wrapped errors.
func IsConstructionError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeNoSuchTable
	}
	return false
}

// IsLookupError returns true if a table or column was missing at the time
// a view was used.
// Uses errors.As to handle wrapped errors.
func IsLookupError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeTableNotFound || e.Code == ErrCodeColumnNotFound
	}
	return false
}

// IsNotFound returns true for any sqlnav Error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

func newNoSuchTableError(table string) *Error {
	return &Error{
		Code:    ErrCodeNoSuchTable,
		Message: "no such table",
		Table:   table,
	}
}

func newTableNotFoundError(table string) *Error {
	return &Error{
		Code:    ErrCodeTableNotFound,
		Message: "table does not exist",
		Table:   table,
	}
}

func newColumnNotFoundError(table, column string) *Error {
	return &Error{
		Code:    ErrCodeColumnNotFound,
		Message: "column does not exist",
		Table:   table,
		Column:  column,
	}
}
