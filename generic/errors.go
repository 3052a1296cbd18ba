/*
errors.go - Centralized error types

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calendar engine itself almost never fails (it clamps, falls back or
  returns zero); these errors belong to parsing, validation and storage.

ERROR CATEGORIES:
  1. Parse errors - Malformed dates and clock times
  2. Validation errors - Business rule violations on input
  3. Store errors - Missing records, conflicts

USAGE:
  if errors.Is(err, generic.ErrOverlap) {
      // 409
  }

SEE ALSO:
  - store/sqlite/sqlite.go: Wraps driver errors into these
  - api/handlers.go: Maps these onto HTTP status codes
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
	// ErrInvalidDate is returned for strings that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidClock is returned for strings that are not HH:MM.
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidPeriod is returned when a range ends before it starts.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidInput is the catch-all for rejected request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique key (e.g. email) is taken.
	ErrDuplicate = errors.New("duplicate")

	// ErrOverlap is returned when a vacation overlaps an existing one.
	ErrOverlap = errors.New("overlapping vacation")

	// ErrLastAdmin is returned when a change would leave no active admin.
	ErrLastAdmin = errors.New("at least one active admin must exist")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
	Err     error // defaults to ErrInvalidInput
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// OverlapError points at the existing vacation that blocks a new one.
type OverlapError struct {
	ExistingID string
	Existing   Period
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlaps existing vacation %s %s", e.ExistingID, e.Existing)
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrLastAdmin)
}

// IsConflict returns true if the error collides with existing data.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrOverlap)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
