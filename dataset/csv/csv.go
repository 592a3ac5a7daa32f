/*
Package csv provides functions to read datasets from and write them to
CSV streams.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
)

/*
Writer is an interface for a CSV stream to which rows
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given rows and will
	// return the actually written number of rows and an
	// error (if not all rows could be written)
	Write(context.Context, [][]value.Value) (int, error)
	// Count returns the total number of rows written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count    int
	features []feature.Feature
	w        *csv.Writer
}

type reader struct {
	r        io.Reader
	features []feature.Feature
}

/*
ReadDataset takes an io.Reader for a CSV stream and a slice of features
and returns a dataset.Dataset with the rows parsed from the reader or an
error.

The header or first row of the CSV content is expected to consist of names
of the features in the given slice, in any order. Features missing from the
header take an undefined value on every row. The rest of the rows should
consist of valid values for the features and/or the '?' string to indicate
an undefined value.
*/
func ReadDataset(r io.Reader, features []feature.Feature) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{Features: features}
	err := ReadBySample(r, features, func(_ int, row value.Row) (bool, error) {
		ds.Rows = append(ds.Rows, row)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

/*
ReadBySample takes an io.Reader for a CSV stream, a slice of features and a
lambda function on an integer and a value.Row that returns a boolean value.
It parses the rows from the reader and for each it calls the lambda function
with the row and its index as parameters. If the lambda function returns true,
it will continue processing the next row, otherwise it will stop. An error is
returned if something goes wrong when reading the stream or parsing a row.

Rows passed to the lambda have their values in the order of the given
features, regardless of the column order on the CSV header.
*/
func ReadBySample(r io.Reader, features []feature.Feature, lambda func(int, value.Row) (bool, error)) error {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	positions, err := parsePositionsFromCSVHeader(header, features)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		row, err := parseRowFromCSVRecord(record, features, positions)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, row)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string and a slice of features,
opens the file to which the filepath points to and uses ReadDataset to return
a dataset.Dataset or an error read from it. If the filepath is "" os.Stdin is
used instead.
*/
func ReadDatasetFromFilePath(filepath string, features []feature.Feature) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f, features)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

/*
NewReader takes an io.Reader for a CSV stream and a slice of features and
returns a dataset.Reader that parses rows from it as ReadBySample does.
*/
func NewReader(r io.Reader, features []feature.Feature) dataset.Reader {
	return &reader{r, features}
}

func (cr *reader) Read(ctx context.Context) (<-chan value.Row, <-chan error) {
	rows := make(chan value.Row)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(rows)
		err := ReadBySample(cr.r, cr.features, func(_ int, row value.Row) (bool, error) {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case rows <- row:
			}
			return true, nil
		})
		if err != nil {
			errs <- err
		}
	}()
	return rows, errs
}

/*
NewWriter takes an io.Writer and a slice of feature.Features and
returns a Writer that will write rows with values for those features
on the io.Writer, after a header with their names.
*/
func NewWriter(writer io.Writer, features []feature.Feature) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, len(features))
	for i, f := range features {
		record[i] = f.Name()
	}
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
WriteDataset takes a writer and a dataset.Dataset and dumps the dataset
to the writer in CSV format. It returns an error if something went wrong
when writing to the writer.
*/
func WriteDataset(ctx context.Context, writer io.Writer, ds *dataset.Dataset) error {
	cw, err := NewWriter(writer, ds.Features)
	if err != nil {
		return err
	}
	_, err = cw.Write(ctx, ds.Rows)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parsePositionsFromCSVHeader(header []string, features []feature.Feature) ([]int, error) {
	positions := make([]int, len(features))
	for i := range positions {
		positions[i] = -1
	}
	for column, name := range header {
		found := false
		for i, f := range features {
			if f.Name() == name {
				if positions[i] >= 0 {
					return nil, fmt.Errorf("parsing header: feature %s appears twice", name)
				}
				positions[i] = column
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
	}
	return positions, nil
}

func parseRowFromCSVRecord(record []string, features []feature.Feature, positions []int) (value.Row, error) {
	row := make(value.Row, len(features))
	for i, f := range features {
		if positions[i] < 0 {
			continue
		}
		v, err := f.Parse(record[positions[i]])
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, rows [][]value.Value) (int, error) {
	for n, row := range rows {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := cw.writeRow(row); err != nil {
			return n, err
		}
	}
	return len(rows), nil
}

func (cw *csvWriter) writeRow(row []value.Value) error {
	if len(row) != len(cw.features) {
		return fmt.Errorf("writing CSV row %d: expected %d values, got %d", cw.count+1, len(cw.features), len(row))
	}
	record := make([]string, len(row))
	for j, v := range row {
		record[j] = v.String()
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
