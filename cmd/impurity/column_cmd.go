package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/pbanos/impurity"
	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/report"
	"github.com/pbanos/impurity/report/redisstore"
	"github.com/pbanos/impurity/value"
	"github.com/spf13/cobra"
)

type columnCmdConfig struct {
	*inputCmdConfig
	input    string
	column   string
	format   string
	cache    string
	cacheTTL time.Duration
}

type projection func(*report.ColumnReport) (interface{}, error)

func countsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return columnCmd(rootConfig, "counts", "Count the rows taking each value of a feature",
		func(r *report.ColumnReport) (interface{}, error) {
			return struct {
				Column      string              `json:"column" yaml:"column"`
				Rows        int                 `json:"rows" yaml:"rows"`
				ClassCounts []report.ClassCount `json:"classCounts" yaml:"classCounts"`
			}{r.Column, r.Rows, r.ClassCounts}, nil
		})
}

func uniqueCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return columnCmd(rootConfig, "unique", "List the distinct values taken by a feature",
		func(r *report.ColumnReport) (interface{}, error) {
			return struct {
				Column       string        `json:"column" yaml:"column"`
				UniqueValues []value.Value `json:"uniqueValues" yaml:"uniqueValues"`
			}{r.Column, r.UniqueValues}, nil
		})
}

func giniCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return columnCmd(rootConfig, "gini", "Measure the Gini impurity of a feature",
		func(r *report.ColumnReport) (interface{}, error) {
			if r.Gini == nil {
				return nil, fmt.Errorf("measuring gini impurity of %s: %v", r.Column, impurity.ErrEmptyPartition)
			}
			return struct {
				Column string  `json:"column" yaml:"column"`
				Rows   int     `json:"rows" yaml:"rows"`
				Gini   float64 `json:"gini" yaml:"gini"`
			}{r.Column, r.Rows, *r.Gini}, nil
		})
}

func entropyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return columnCmd(rootConfig, "entropy", "Measure the entropy of a feature",
		func(r *report.ColumnReport) (interface{}, error) {
			if r.Entropy == nil {
				return nil, fmt.Errorf("measuring entropy of %s: %v", r.Column, impurity.ErrEmptyPartition)
			}
			return struct {
				Column  string  `json:"column" yaml:"column"`
				Rows    int     `json:"rows" yaml:"rows"`
				Entropy float64 `json:"entropy" yaml:"entropy"`
			}{r.Column, r.Rows, *r.Entropy}, nil
		})
}

func columnCmd(rootConfig *rootCmdConfig, use, short string, project projection) *cobra.Command {
	config := &columnCmdConfig{inputCmdConfig: &inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + `, reading rows from a CSV file, an SQL table or a MongoDB collection.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			r, err := config.Report()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			output, err := project(r)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			err = report.Encode(cmd.OutOrStdout(), config.format, output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", inputFlagHelp)
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.Flags().StringVarP(&(config.column), "column", "c", "", "name of the feature to evaluate (required)")
	cmd.Flags().StringVarP(&(config.table), "table", "t", "samples", "name of the table or collection holding the rows on SQL and MongoDB inputs")
	cmd.Flags().StringVarP(&(config.format), "format", "f", report.JSON, "output format: json or yaml")
	cmd.Flags().StringVar(&(config.cache), "cache", "", "address of a redis server to cache reports on")
	cmd.Flags().DurationVar(&(config.cacheTTL), "cache-ttl", 10*time.Minute, "expiration of cached reports")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "maximum number of open connections to SQLite3 inputs (0 for unlimited)")
	return cmd
}

func (ccc *columnCmdConfig) Validate() error {
	if err := ccc.inputCmdConfig.Validate(); err != nil {
		return err
	}
	if ccc.column == "" {
		return fmt.Errorf("required column flag was not set")
	}
	if ccc.format != report.JSON && ccc.format != report.YAML {
		return fmt.Errorf("unknown format %q", ccc.format)
	}
	return nil
}

/*
Report returns the report for the configured column, taking it from the
cache when one is configured and holds it.
*/
func (ccc *columnCmdConfig) Report() (*report.ColumnReport, error) {
	var store *redisstore.Store
	var key string
	if ccc.cache != "" && ccc.input != "" {
		ccc.Logf("Connecting to redis at %s...", ccc.cache)
		rc, err := redisstore.Dial(ccc.cache)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		store = redisstore.New(rc, "impurity", ccc.cacheTTL, redisstore.NewJSONEncodeDecoder())
		md, err := ioutil.ReadFile(ccc.metadataInput)
		if err != nil {
			return nil, fmt.Errorf("reading metadata for cache key: %v", err)
		}
		key = redisstore.Key(fingerprint(ccc.input), ccc.table, string(md), ccc.column)
		r := &report.ColumnReport{}
		found, err := store.Get(ccc.Context(), key, r)
		if err != nil {
			return nil, err
		}
		if found {
			ccc.Logf("Report for %s found on cache", ccc.column)
			return r, nil
		}
	}
	r, err := ccc.buildReport()
	if err != nil {
		return nil, err
	}
	if store != nil {
		ccc.Logf("Storing report for %s on cache...", ccc.column)
		if err = store.Store(ccc.Context(), key, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (ccc *columnCmdConfig) buildReport() (*report.ColumnReport, error) {
	features, err := ccc.Features()
	if err != nil {
		return nil, err
	}
	reader, closer, err := ccc.Reader(ccc.input, features)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	if counter, ok := reader.(dataset.ClassCounter); ok {
		f, ok := feature.ByName(features, ccc.column)
		if !ok {
			return nil, fmt.Errorf("metadata has no feature %s", ccc.column)
		}
		ccc.Logf("Counting values of %s on %s...", ccc.column, describeInput(ccc.input))
		counts, err := counter.CountClasses(ccc.Context(), f)
		if err != nil {
			return nil, err
		}
		return report.FromCounts(ccc.column, counts).WithImpurity()
	}
	ds, err := dataset.Load(ccc.Context(), features, reader)
	if err != nil {
		return nil, fmt.Errorf("loading dataset from %s: %v", describeInput(ccc.input), err)
	}
	ccc.Logf("Loaded %d rows from %s", ds.Count(), describeInput(ccc.input))
	return report.Column(ds, ccc.column)
}
