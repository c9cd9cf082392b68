package sfatrie

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/symbolic"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidEpsilon is returned when a range radius is negative or NaN.
	ErrInvalidEpsilon = errors.New("epsilon must be a non-negative number")

	// ErrInvalidWindow is returned when a subsequence window length is not positive.
	ErrInvalidWindow = errors.New("window length must be positive")
)

// ErrDimensionMismatch indicates a series/query length mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidOption indicates an option value out of range.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidOption struct {
	Name  string
	Value int
	cause error
}

func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("invalid option %s: %d", e.Name, e.Value)
}

func (e *ErrInvalidOption) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Argument normalization.
	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var opt *index.ErrInvalidOption
	if errors.As(err, &opt) {
		return &ErrInvalidOption{Name: opt.Name, Value: opt.Value, cause: err}
	}
	var ip *symbolic.ErrInvalidParameter
	if errors.As(err, &ip) {
		return &ErrInvalidOption{Name: ip.Name, Value: ip.Value, cause: err}
	}
	if errors.Is(err, index.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}
	if errors.Is(err, index.ErrInvalidEpsilon) {
		return fmt.Errorf("%w: %w", ErrInvalidEpsilon, err)
	}
	if errors.Is(err, index.ErrInvalidWindow) {
		return fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}

	return err
}
