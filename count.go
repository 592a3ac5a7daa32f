package impurity

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

/*
CountClasses takes a slice of rows and a column index and returns a map
with the number of rows exhibiting each distinct value at that column. The
counts on the map always add up to the number of rows, and no value has a
count of zero.

An error wrapping ErrColumnOutOfRange is returned if any row has no value
at the given column.
*/
func CountClasses[V comparable](rows [][]V, column int) (map[V]int, error) {
	values, err := columnValues(rows, column)
	if err != nil {
		return nil, err
	}
	return lo.CountValues(values), nil
}

func columnValues[V comparable](rows [][]V, column int) ([]V, error) {
	values := make([]V, 0, len(rows))
	for i, row := range rows {
		if column < 0 || column >= len(row) {
			return nil, errors.Wrapf(ErrColumnOutOfRange, "row %d has %d values, requested column %d", i, len(row), column)
		}
		values = append(values, row[column])
	}
	return values, nil
}
