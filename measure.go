package impurity

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

/*
Measure is a function that takes a non-empty slice of rows and a column
index and returns how mixed the values at that column are.
*/
type Measure[V comparable] func(rows [][]V, column int) (float64, error)

/*
Gini takes a non-empty slice of rows and a column index and returns the Gini
impurity of the values at that column: the probability that two rows drawn at
random have different values. The result is in [0, 1) and it is 0 only when
all rows share the same value.

An error wrapping ErrEmptyPartition is returned for an empty slice of rows.
*/
func Gini[V comparable](rows [][]V, column int) (float64, error) {
	if len(rows) == 0 {
		return 0, errors.Wrap(ErrEmptyPartition, "calculating gini impurity")
	}
	counts, err := CountClasses(rows, column)
	if err != nil {
		return 0, errors.Wrap(err, "calculating gini impurity")
	}
	return GiniOfCounts(counts)
}

/*
GiniOfCounts returns the Gini impurity of a set of rows from its class
counts, as returned by CountClasses. An error wrapping ErrEmptyPartition is
returned if the counts add up to zero.
*/
func GiniOfCounts[V comparable](counts map[V]int) (float64, error) {
	ps, err := probabilities(counts)
	if err != nil {
		return 0, errors.Wrap(err, "calculating gini impurity")
	}
	impurity := 1.0
	for _, p := range ps {
		impurity -= p * p
	}
	return impurity, nil
}

/*
Entropy takes a non-empty slice of rows and a column index and returns the
Shannon entropy in nats of the values at that column. It is 0 only when all
rows share the same value.

An error wrapping ErrEmptyPartition is returned for an empty slice of rows.
*/
func Entropy[V comparable](rows [][]V, column int) (float64, error) {
	if len(rows) == 0 {
		return 0, errors.Wrap(ErrEmptyPartition, "calculating entropy")
	}
	counts, err := CountClasses(rows, column)
	if err != nil {
		return 0, errors.Wrap(err, "calculating entropy")
	}
	return EntropyOfCounts(counts)
}

/*
EntropyOfCounts returns the entropy of a set of rows from its class counts,
as returned by CountClasses. An error wrapping ErrEmptyPartition is returned
if the counts add up to zero.
*/
func EntropyOfCounts[V comparable](counts map[V]int) (float64, error) {
	ps, err := probabilities(counts)
	if err != nil {
		return 0, errors.Wrap(err, "calculating entropy")
	}
	var result float64
	for _, p := range ps {
		result -= p * math.Log(p)
	}
	return result, nil
}

func probabilities[V comparable](counts map[V]int) ([]float64, error) {
	var total int
	for _, c := range counts {
		if c < 0 {
			return nil, errors.Errorf("negative count %d", c)
		}
		total += c
	}
	if total == 0 {
		return nil, ErrEmptyPartition
	}
	result := make([]float64, 0, len(counts))
	for _, c := range counts {
		if c > 0 {
			result = append(result, float64(c)/float64(total))
		}
	}
	// map order is random, sum in a fixed order so results are reproducible
	sort.Float64s(result)
	return result, nil
}
