package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidEpsilon is returned when epsilon is negative or NaN.
	ErrInvalidEpsilon = errors.New("epsilon must be a non-negative number")

	// ErrInvalidWindow is returned when a window length is not positive.
	ErrInvalidWindow = errors.New("window length must be positive")
)

// ErrDimensionMismatch is a named error type for length mismatches between
// a query (or series) and the indexed units.
type ErrDimensionMismatch struct {
	Expected int // Expected length
	Actual   int // Actual length
}

// Error returns the error message for dimension mismatch
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidOption indicates an index option out of range.
type ErrInvalidOption struct {
	Name  string
	Value int
}

func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("invalid option %s: %d", e.Name, e.Value)
}

// InvariantViolation is reported by integrity checks only.
type InvariantViolation struct {
	Path   []byte // symbol path from the root to the offending node
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation at %v: %s", e.Path, e.Reason)
}
