/*
Package dataset provides Dataset, a collection of rows described by a slice
of features, and the interfaces implemented by the backends rows are read
from.
*/
package dataset

import (
	"context"
	"fmt"

	"github.com/pbanos/impurity"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
)

/*
Dataset is a collection of rows, each holding a value for every feature in
the same position the feature has in Features. Functions working on a
Dataset never modify its rows.
*/
type Dataset struct {
	Features []feature.Feature
	Rows     [][]value.Value
}

/*
Reader is an interface for a backend from which rows can be sequentially
read.

Its Read method returns a channel of rows and a channel of errors. The rows
channel is closed once all rows have been sent or reading fails; in the latter
case the error will be available on the error channel, which is closed after
the rows channel.
*/
type Reader interface {
	Read(context.Context) (<-chan value.Row, <-chan error)
}

/*
ClassCounter is an interface for a backend able to count the values taken by
the rows for a feature without reading them, for instance by delegating it to
a database.
*/
type ClassCounter interface {
	CountClasses(context.Context, feature.Feature) (map[value.Value]int, error)
}

/*
New takes a slice of features and a slice of rows and returns a dataset
with them. An error is returned if a row does not have exactly a value
per feature or any value is not valid for its feature.
*/
func New(features []feature.Feature, rows [][]value.Value) (*Dataset, error) {
	for i, row := range rows {
		if err := validateRow(features, row); err != nil {
			return nil, fmt.Errorf("row %d: %v", i, err)
		}
	}
	return &Dataset{features, rows}, nil
}

/*
Load takes a context, a slice of features and a Reader, and returns a Dataset
with all the rows read from it, or an error if reading fails, a row is not
valid for the features or the context is cancelled.
*/
func Load(ctx context.Context, features []feature.Feature, r Reader) (*Dataset, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rows, errs := r.Read(ctx)
	ds := &Dataset{Features: features}
	var err error
	for row := range rows {
		if err != nil {
			continue
		}
		if err = validateRow(features, row); err != nil {
			err = fmt.Errorf("row %d: %v", len(ds.Rows), err)
			cancel()
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}
	if rerr := <-errs; err == nil && rerr != nil {
		err = rerr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

/*
Count returns the number of rows in the dataset
*/
func (ds *Dataset) Count() int {
	return len(ds.Rows)
}

/*
ColumnIndex returns the position of the feature with the given name on the
rows of the dataset or an error if the dataset has no such feature.
*/
func (ds *Dataset) ColumnIndex(name string) (int, error) {
	for i, f := range ds.Features {
		if f.Name() == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("dataset has no feature %s", name)
}

/*
ClassCounts returns the number of rows taking each value for the feature with
the given name.
*/
func (ds *Dataset) ClassCounts(name string) (map[value.Value]int, error) {
	i, err := ds.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	return impurity.CountClasses(ds.Rows, i)
}

/*
UniqueValues returns the set of values the rows take for the feature with the
given name.
*/
func (ds *Dataset) UniqueValues(name string) (impurity.Set[value.Value], error) {
	i, err := ds.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	return impurity.UniqueValues(ds.Rows, i)
}

/*
Gini returns the Gini impurity of the dataset for the feature with the given
name. It fails with impurity.ErrEmptyPartition on an empty dataset.
*/
func (ds *Dataset) Gini(name string) (float64, error) {
	return ds.measure(impurity.Gini[value.Value], name)
}

/*
Entropy returns the entropy of the dataset for the feature with the given
name. It fails with impurity.ErrEmptyPartition on an empty dataset.
*/
func (ds *Dataset) Entropy(name string) (float64, error) {
	return ds.measure(impurity.Entropy[value.Value], name)
}

func (ds *Dataset) measure(m impurity.Measure[value.Value], name string) (float64, error) {
	i, err := ds.ColumnIndex(name)
	if err != nil {
		return 0, err
	}
	return m(ds.Rows, i)
}

/*
Split takes a criterion and returns two datasets with the same features as
this one: the first with the rows satisfying the criterion, the second with
the rest. Rows are shared with the original dataset.
*/
func (ds *Dataset) Split(c feature.Criterion) (*Dataset, *Dataset, error) {
	i, err := ds.ColumnIndex(c.Feature().Name())
	if err != nil {
		return nil, nil, err
	}
	left := &Dataset{Features: ds.Features}
	right := &Dataset{Features: ds.Features}
	for _, row := range ds.Rows {
		if c.SatisfiedBy(row[i]) {
			left.Rows = append(left.Rows, row)
		} else {
			right.Rows = append(right.Rows, row)
		}
	}
	return left, right, nil
}

/*
Union returns a dataset with the rows of this dataset followed by those of
the given one. Both must have the same features in the same order.
*/
func (ds *Dataset) Union(other *Dataset) (*Dataset, error) {
	if len(ds.Features) != len(other.Features) {
		return nil, fmt.Errorf("joining datasets with %d and %d features", len(ds.Features), len(other.Features))
	}
	for i, f := range ds.Features {
		if f.Name() != other.Features[i].Name() {
			return nil, fmt.Errorf("joining datasets: feature %d is %s on one and %s on the other", i, f.Name(), other.Features[i].Name())
		}
	}
	rows := make([][]value.Value, 0, len(ds.Rows)+len(other.Rows))
	rows = append(rows, ds.Rows...)
	rows = append(rows, other.Rows...)
	return &Dataset{ds.Features, rows}, nil
}

func (ds *Dataset) String() string {
	return fmt.Sprintf("[ %v ]", len(ds.Rows))
}

func validateRow(features []feature.Feature, row []value.Value) error {
	if len(row) != len(features) {
		return fmt.Errorf("expected %d values, got %d", len(features), len(row))
	}
	for i, f := range features {
		if ok, err := f.Valid(row[i]); !ok {
			return fmt.Errorf("invalid value %v for feature %s: %v", row[i], f.Name(), err)
		}
	}
	return nil
}

/*
Read implements Reader, sending the rows of the dataset through the returned
channel until they are exhausted or the context is done.
*/
func (ds *Dataset) Read(ctx context.Context) (<-chan value.Row, <-chan error) {
	rows := make(chan value.Row)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(rows)
		for _, row := range ds.Rows {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case rows <- row:
			}
		}
	}()
	return rows, errs
}
