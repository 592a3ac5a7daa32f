package impurity

import "golang.org/x/exp/maps"

/*
Set is a collection of distinct values with no order.
*/
type Set[V comparable] map[V]struct{}

/*
UniqueValues takes a slice of rows and a column index and returns the set
of distinct values at that column. An empty slice of rows yields an empty set.

An error wrapping ErrColumnOutOfRange is returned if any row has no value
at the given column.
*/
func UniqueValues[V comparable](rows [][]V, column int) (Set[V], error) {
	values, err := columnValues(rows, column)
	if err != nil {
		return nil, err
	}
	s := make(Set[V])
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s, nil
}

// Contains tells whether v belongs to the set
func (s Set[V]) Contains(v V) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of values in the set
func (s Set[V]) Len() int {
	return len(s)
}

// Values returns the values in the set in no particular order
func (s Set[V]) Values() []V {
	return maps.Keys(s)
}
