/*
Package report builds summaries of the splitting criteria of datasets:
class counts, unique values, impurity and information gain.
*/
package report

import (
	"fmt"

	"github.com/pbanos/impurity"
	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/value"
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/slices"
)

/*
ClassCount is the number of rows taking a value
*/
type ClassCount struct {
	Value value.Value `json:"value" yaml:"value"`
	Count int         `json:"count" yaml:"count"`
}

/*
ColumnReport summarizes the values taken by the rows of a dataset for a
feature. Gini and Entropy are nil for datasets with no rows.
*/
type ColumnReport struct {
	Column       string        `json:"column" yaml:"column"`
	Rows         int           `json:"rows" yaml:"rows"`
	ClassCounts  []ClassCount  `json:"classCounts" yaml:"classCounts"`
	UniqueValues []value.Value `json:"uniqueValues" yaml:"uniqueValues"`
	Gini         *float64      `json:"gini,omitempty" yaml:"gini,omitempty"`
	Entropy      *float64      `json:"entropy,omitempty" yaml:"entropy,omitempty"`
}

/*
GainReport summarizes the information gain of splitting a dataset in two.
*/
type GainReport struct {
	Column          string  `json:"column" yaml:"column"`
	Criterion       string  `json:"criterion,omitempty" yaml:"criterion,omitempty"`
	ParentImpurity  float64 `json:"parentImpurity" yaml:"parentImpurity"`
	LeftRows        int     `json:"leftRows" yaml:"leftRows"`
	LeftImpurity    float64 `json:"leftImpurity" yaml:"leftImpurity"`
	RightRows       int     `json:"rightRows" yaml:"rightRows"`
	RightImpurity   float64 `json:"rightImpurity" yaml:"rightImpurity"`
	InformationGain float64 `json:"informationGain" yaml:"informationGain"`
}

/*
Column takes a dataset and the name of one of its features and returns
a ColumnReport for it.
*/
func Column(ds *dataset.Dataset, name string) (*ColumnReport, error) {
	counts, err := ds.ClassCounts(name)
	if err != nil {
		return nil, err
	}
	r := FromCounts(name, counts)
	if ds.Count() == 0 {
		return r, nil
	}
	g, err := ds.Gini(name)
	if err != nil {
		return nil, err
	}
	e, err := ds.Entropy(name)
	if err != nil {
		return nil, err
	}
	r.Gini, r.Entropy = &g, &e
	return r, nil
}

/*
FromCounts takes a feature name and the class counts of a dataset for it and
returns a ColumnReport without impurity measures. It is meant for backends
able to count classes without loading rows.
*/
func FromCounts(name string, counts map[value.Value]int) *ColumnReport {
	r := &ColumnReport{Column: name, ClassCounts: []ClassCount{}, UniqueValues: []value.Value{}}
	for v, c := range counts {
		r.ClassCounts = append(r.ClassCounts, ClassCount{v, c})
		r.UniqueValues = append(r.UniqueValues, v)
		r.Rows += c
	}
	slices.SortFunc(r.ClassCounts, func(a, b ClassCount) bool {
		return value.Less(a.Value, b.Value)
	})
	slices.SortFunc(r.UniqueValues, value.Less)
	return r
}

/*
WithImpurity fills the Gini and Entropy fields of a report built with
FromCounts from its class counts.
*/
func (r *ColumnReport) WithImpurity() (*ColumnReport, error) {
	if r.Rows == 0 {
		return r, nil
	}
	counts := make(map[value.Value]int, len(r.ClassCounts))
	for _, cc := range r.ClassCounts {
		counts[cc.Value] = cc.Count
	}
	g, err := impurity.GiniOfCounts(counts)
	if err != nil {
		return nil, err
	}
	e, err := impurity.EntropyOfCounts(counts)
	if err != nil {
		return nil, err
	}
	r.Gini, r.Entropy = &g, &e
	return r, nil
}

/*
Describe takes a dataset, a slice of feature names and a concurrency level
and returns a ColumnReport for each of the given features, in the same order.
If no names are given, all features of the dataset are described. Reports
are built in parallel on up to concurrency goroutines.
*/
func Describe(ds *dataset.Dataset, names []string, concurrency int) ([]*ColumnReport, error) {
	if len(names) == 0 {
		for _, f := range ds.Features {
			names = append(names, f.Name())
		}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	reports := make([]*ColumnReport, len(names))
	errs := make([]error, len(names))
	essentials.ConcurrentMap(essentials.MinInt(concurrency, len(names)), len(names), func(i int) {
		reports[i], errs[i] = Column(ds, names[i])
	})
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("describing %s: %v", names[i], err)
		}
	}
	return reports, nil
}

/*
Gain takes the two sides of a split of a dataset and the name of the feature
to measure, and returns a GainReport with the information gain of the split.
If parentImpurity is nil it is calculated from the union of both sides.
*/
func Gain(left, right *dataset.Dataset, name string, parentImpurity *float64) (*GainReport, error) {
	i, err := left.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	if j, err := right.ColumnIndex(name); err != nil || j != i {
		return nil, fmt.Errorf("feature %s is not on the same column on both sides of the split", name)
	}
	r := &GainReport{Column: name, LeftRows: left.Count(), RightRows: right.Count()}
	if parentImpurity != nil {
		r.ParentImpurity = *parentImpurity
	} else {
		parent, err := left.Union(right)
		if err != nil {
			return nil, err
		}
		if r.ParentImpurity, err = parent.Gini(name); err != nil {
			return nil, err
		}
	}
	r.InformationGain, err = impurity.InformationGain(left.Rows, right.Rows, r.ParentImpurity, i)
	if err != nil {
		return nil, err
	}
	if r.LeftImpurity, err = left.Gini(name); err != nil {
		return nil, err
	}
	if r.RightImpurity, err = right.Gini(name); err != nil {
		return nil, err
	}
	return r, nil
}
