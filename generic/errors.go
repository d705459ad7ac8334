/*
errors.go - Centralized error types for the generic package

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculation core never returns these: an unparseable date or an
  uncovered range simply produces no periods. They surface from the edges
  (cycle selection, record import) where a caller must be told what is wrong.

ERROR CATEGORIES:
  1. Input errors - Dates and cycles that cannot be interpreted
  2. Import errors - Batches that violate the tabular contract

SEE ALSO:
  - factory/record.go: Returns the import errors as built here
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date string matches no accepted format
	// or does not name a real calendar day.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownCycle is returned when a payroll cycle name is not recognized.
	ErrUnknownCycle = errors.New("unknown payroll cycle")

	// ErrMissingColumns is returned when an imported batch lacks a required column.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrTooManyRows is returned when a batch exceeds the configured row ceiling.
	ErrTooManyRows = errors.New("too many rows")

	// ErrEmptyBatch is returned when a batch carries no data rows.
	ErrEmptyBatch = errors.New("empty batch")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CycleError reports an unrecognized cycle name.
type CycleError struct {
	Input string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("unknown payroll cycle %q (use monthly or semi_monthly)", e.Input)
}

func (e *CycleError) Unwrap() error {
	return ErrUnknownCycle
}

// MissingColumnsError lists the required columns absent from a header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %v", e.Columns)
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// RowLimitError reports a batch larger than the allowed ceiling.
type RowLimitError struct {
	Rows  int
	Limit int
}

func (e *RowLimitError) Error() string {
	return fmt.Sprintf("batch has %d rows, limit is %d", e.Rows, e.Limit)
}

func (e *RowLimitError) Unwrap() error {
	return ErrTooManyRows
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrUnknownCycle) ||
		errors.Is(err, ErrMissingColumns) ||
		errors.Is(err, ErrTooManyRows) ||
		errors.Is(err, ErrEmptyBatch)
}
