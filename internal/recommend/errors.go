package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is matched by errors from comparing vectors of
	// different lengths, which means they were built from different vocabularies.
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")

	// ErrInvalidLimit is matched by errors from a non-positive result limit.
	ErrInvalidLimit = errors.New("invalid recommendation limit")
)

// DimensionMismatchError reports the lengths of two incomparable vectors.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("feature vector dimension mismatch: %d != %d", e.Left, e.Right)
}

// Is makes errors.Is(err, ErrDimensionMismatch) hold.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// InvalidLimitError reports a limit that is zero or negative.
type InvalidLimitError struct {
	Limit int
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid recommendation limit %d: must be positive", e.Limit)
}

// Is makes errors.Is(err, ErrInvalidLimit) hold.
func (e *InvalidLimitError) Is(target error) bool {
	return target == ErrInvalidLimit
}
