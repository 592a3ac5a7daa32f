package impurity

import "github.com/pkg/errors"

var (
	// ErrColumnOutOfRange is returned when a row has no value at the requested column
	ErrColumnOutOfRange = errors.New("column index out of range")

	// ErrEmptyPartition is returned when an impurity or information gain is
	// requested for a set of rows with no rows on it
	ErrEmptyPartition = errors.New("empty partition")
)
