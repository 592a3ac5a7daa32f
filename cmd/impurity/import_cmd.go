package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/impurity/dataset/csv"
	"github.com/pbanos/impurity/dataset/mongodataset"
	"github.com/pbanos/impurity/dataset/sqldataset"
	"github.com/pbanos/impurity/dataset/sqldataset/pgadapter"
	"github.com/pbanos/impurity/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
	"github.com/spf13/cobra"
)

const importBatchSize = 100

type importCmdConfig struct {
	*inputCmdConfig
	input  string
	output string
}

type rowWriter interface {
	Write(context.Context, [][]value.Value) (int, error)
}

type flushableRowWriter struct {
	rowWriter
	closer io.Closer
}

func importCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importCmdConfig{inputCmdConfig: &inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a dataset between backends",
		Long:  `Copy the rows of a dataset from a CSV file, SQL table or MongoDB collection into another one.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			features, err := config.Features()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			output, err := config.OutputWriter(features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			reader, closer, err := config.Reader(config.input, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer closer.Close()
			rows, errs := reader.Read(config.Context())
			var count int
			batch := make([][]value.Value, 0, importBatchSize)
			for row := range rows {
				if err != nil {
					continue
				}
				batch = append(batch, row)
				if len(batch) == importBatchSize {
					count, err = config.flushBatch(output, batch, count)
					batch = batch[:0]
				}
			}
			if err == nil {
				count, err = config.flushBatch(output, batch, count)
			}
			if rerr := <-errs; err == nil {
				err = rerr
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Flushing output after %d rows...", count)
			err = output.Flush()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", inputFlagHelp)
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the rows into (defaults to STDOUT in CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.Flags().StringVarP(&(config.table), "table", "t", "samples", "name of the table or collection holding the rows on SQL and MongoDB inputs and outputs")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "maximum number of open connections to SQLite3 inputs and outputs (0 for unlimited)")
	return cmd
}

func (icc *importCmdConfig) flushBatch(output rowWriter, batch [][]value.Value, count int) (int, error) {
	if len(batch) == 0 {
		return count, nil
	}
	n, err := output.Write(icc.Context(), batch)
	count += n
	if err != nil {
		icc.ContextCancelFunc()()
		return count, fmt.Errorf("writing rows after %d written: %v", count, err)
	}
	icc.Logf("%d rows written", count)
	return count, nil
}

/*
OutputWriter returns a writer for the configured output, creating the SQL
table when needed.
*/
func (icc *importCmdConfig) OutputWriter(features []feature.Feature) (*flushableRowWriter, error) {
	switch {
	case strings.HasPrefix(icc.output, "postgresql://") || strings.HasPrefix(icc.output, "postgres://"):
		icc.Logf("Creating PostgreSQL adapter for url %s to dump rows...", icc.output)
		adapter, err := pgadapter.New(icc.output)
		if err != nil {
			return nil, err
		}
		return icc.sqlWriter(adapter, features)
	case strings.HasPrefix(icc.output, "mongodb://"):
		icc.Logf("Connecting to MongoDB at %s to dump rows...", icc.output)
		session, err := mongodataset.Dial(icc.output)
		if err != nil {
			return nil, err
		}
		c, err := mongodataset.Open(session, icc.table, features)
		if err != nil {
			session.Close()
			return nil, err
		}
		return &flushableRowWriter{c, closerFunc(func() error { session.Close(); return nil })}, nil
	case strings.HasSuffix(icc.output, ".db"):
		icc.Logf("Creating SQLite3 adapter for file %s to dump rows...", icc.output)
		adapter, err := sqlite3adapter.New(icc.output, icc.maxDBConns)
		if err != nil {
			return nil, err
		}
		return icc.sqlWriter(adapter, features)
	}
	var outputFile *os.File
	if icc.output != "" {
		icc.Logf("Creating %s to dump rows...", icc.output)
		var err error
		outputFile, err = os.Create(icc.output)
		if err != nil {
			return nil, err
		}
	} else {
		icc.Logf("Using STDOUT to dump rows...")
		outputFile = os.Stdout
	}
	w, err := csv.NewWriter(outputFile, features)
	if err != nil {
		return nil, err
	}
	return &flushableRowWriter{w, closerFunc(func() error {
		if err := w.Flush(); err != nil {
			return err
		}
		if outputFile == os.Stdout {
			return nil
		}
		return outputFile.Close()
	})}, nil
}

func (icc *importCmdConfig) sqlWriter(adapter sqldataset.Adapter, features []feature.Feature) (*flushableRowWriter, error) {
	icc.Logf("Ensuring table %s exists...", icc.table)
	t, err := sqldataset.Create(icc.Context(), adapter, icc.table, features)
	if err != nil {
		adapter.DB().Close()
		return nil, err
	}
	return &flushableRowWriter{t, adapter.DB()}, nil
}

func (icc *importCmdConfig) Validate() error {
	if err := icc.inputCmdConfig.Validate(); err != nil {
		return err
	}
	if icc.input != "" && icc.input == icc.output {
		return fmt.Errorf("input and output must be different")
	}
	return nil
}

func (frw *flushableRowWriter) Flush() error {
	return frw.closer.Close()
}
