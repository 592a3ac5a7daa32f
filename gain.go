package impurity

import "github.com/pkg/errors"

/*
InformationGain takes the left and right rows of a two-way split, the Gini
impurity of the undivided rows and a column index, and returns the reduction
in impurity the split achieves: the parent impurity minus the impurity of
each side weighted by its share of rows.

Both sides must have rows, otherwise an error wrapping ErrEmptyPartition is
returned.
*/
func InformationGain[V comparable](left, right [][]V, parentImpurity float64, column int) (float64, error) {
	return InformationGainWith(Gini[V], left, right, parentImpurity, column)
}

/*
InformationGainWith works as InformationGain but measures the impurity of each
side with the given Measure. The parentImpurity must have been obtained with
the same measure.
*/
func InformationGainWith[V comparable](m Measure[V], left, right [][]V, parentImpurity float64, column int) (float64, error) {
	if len(left) == 0 || len(right) == 0 {
		return 0, errors.Wrapf(ErrEmptyPartition, "calculating information gain of split with %d and %d rows", len(left), len(right))
	}
	leftImpurity, err := m(left, column)
	if err != nil {
		return 0, errors.Wrap(err, "left side")
	}
	rightImpurity, err := m(right, column)
	if err != nil {
		return 0, errors.Wrap(err, "right side")
	}
	p := float64(len(left)) / float64(len(left)+len(right))
	return parentImpurity - p*leftImpurity - (1-p)*rightImpurity, nil
}
