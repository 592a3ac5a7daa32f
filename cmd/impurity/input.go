package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/dataset/csv"
	"github.com/pbanos/impurity/dataset/mongodataset"
	"github.com/pbanos/impurity/dataset/sqldataset"
	"github.com/pbanos/impurity/dataset/sqldataset/pgadapter"
	"github.com/pbanos/impurity/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/feature/yaml"
)

const inputFlagHelp = "path to an input CSV (.csv) or SQLite3 (.db) file, a PostgreSQL DB connection URL or a MongoDB connection URL with the data (defaults to STDIN, interpreted as CSV)"

type inputCmdConfig struct {
	*rootCmdConfig
	metadataInput string
	table         string
	maxDBConns    int
	ctx           context.Context
	cancelFunc    context.CancelFunc
}

type closerFunc func() error

func (cf closerFunc) Close() error {
	return cf()
}

func (icc *inputCmdConfig) Validate() error {
	if icc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

func (icc *inputCmdConfig) Features() ([]feature.Feature, error) {
	icc.Logf("Reading features from metadata at %s...", icc.metadataInput)
	features, err := yaml.ReadFeaturesFromFile(icc.metadataInput)
	if err != nil {
		return nil, err
	}
	icc.Logf("%d features read from metadata", len(features))
	return features, nil
}

/*
Reader returns a dataset.Reader for the given input, which may also
implement dataset.ClassCounter, and a closer to release it once done.
*/
func (icc *inputCmdConfig) Reader(input string, features []feature.Feature) (dataset.Reader, io.Closer, error) {
	switch {
	case strings.HasPrefix(input, "postgresql://") || strings.HasPrefix(input, "postgres://"):
		icc.Logf("Creating PostgreSQL adapter for url %s...", input)
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, nil, err
		}
		return icc.sqlReader(adapter, features)
	case strings.HasPrefix(input, "mongodb://"):
		icc.Logf("Connecting to MongoDB at %s...", input)
		session, err := mongodataset.Dial(input)
		if err != nil {
			return nil, nil, err
		}
		c, err := mongodataset.Open(session, icc.table, features)
		if err != nil {
			session.Close()
			return nil, nil, err
		}
		return c, closerFunc(func() error { session.Close(); return nil }), nil
	case strings.HasSuffix(input, ".db"):
		icc.Logf("Creating SQLite3 adapter for file %s...", input)
		adapter, err := sqlite3adapter.New(input, icc.maxDBConns)
		if err != nil {
			return nil, nil, err
		}
		return icc.sqlReader(adapter, features)
	case input == "":
		icc.Logf("Reading CSV data from STDIN...")
		return csv.NewReader(os.Stdin, features), closerFunc(func() error { return nil }), nil
	}
	icc.Logf("Opening %s to read CSV data...", input)
	f, err := os.Open(input)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input from %s: %v", input, err)
	}
	return csv.NewReader(f, features), f, nil
}

func (icc *inputCmdConfig) sqlReader(adapter sqldataset.Adapter, features []feature.Feature) (dataset.Reader, io.Closer, error) {
	icc.Logf("Opening table %s...", icc.table)
	t, err := sqldataset.Open(icc.Context(), adapter, icc.table, features)
	if err != nil {
		adapter.DB().Close()
		return nil, nil, err
	}
	return t, adapter.DB(), nil
}

/*
Dataset reads the whole given input into memory
*/
func (icc *inputCmdConfig) Dataset(input string, features []feature.Feature) (*dataset.Dataset, error) {
	r, closer, err := icc.Reader(input, features)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	ds, err := dataset.Load(icc.Context(), features, r)
	if err != nil {
		return nil, fmt.Errorf("loading dataset from %s: %v", describeInput(input), err)
	}
	icc.Logf("Loaded %d rows from %s", ds.Count(), describeInput(input))
	return ds, nil
}

func (icc *inputCmdConfig) Context() context.Context {
	icc.setContextAndCancelFunc()
	return icc.ctx
}

func (icc *inputCmdConfig) ContextCancelFunc() context.CancelFunc {
	icc.setContextAndCancelFunc()
	return icc.cancelFunc
}

func (icc *inputCmdConfig) setContextAndCancelFunc() {
	if icc.ctx == nil {
		icc.ctx, icc.cancelFunc = context.WithCancel(context.Background())
	}
}

/*
fingerprint returns a string identifying the current contents of an input
for cache keys: size and modification time for files, the input itself for
databases, whose contents are only bounded by the cache TTL.
*/
func fingerprint(input string) string {
	if input == "" || strings.Contains(input, "://") {
		return input
	}
	fi, err := os.Stat(input)
	if err != nil {
		return input
	}
	return fmt.Sprintf("%s:%d:%d", input, fi.Size(), fi.ModTime().UnixNano())
}

func describeInput(input string) string {
	if input == "" {
		return "STDIN"
	}
	return input
}
