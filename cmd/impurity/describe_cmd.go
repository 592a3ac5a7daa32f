package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pbanos/impurity/report"
	"github.com/spf13/cobra"
)

type describeCmdConfig struct {
	*inputCmdConfig
	input       string
	columns     []string
	format      string
	concurrency int
}

func describeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &describeCmdConfig{inputCmdConfig: &inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Report class counts, unique values and impurity of several features",
		Long:  `Report class counts, unique values, Gini impurity and entropy for every feature of a dataset, or the given ones.`,
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
			ds, err := config.Dataset(config.input, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Describing %d rows with %d goroutines...", ds.Count(), config.concurrency)
			reports, err := report.Describe(ds, config.columns, config.concurrency)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			err = report.Encode(cmd.OutOrStdout(), config.format, reports)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", inputFlagHelp)
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.Flags().StringSliceVarP(&(config.columns), "columns", "c", nil, "names of the features to describe (defaults to all features)")
	cmd.Flags().StringVarP(&(config.table), "table", "t", "samples", "name of the table or collection holding the rows on SQL and MongoDB inputs")
	cmd.Flags().StringVarP(&(config.format), "format", "f", report.JSON, "output format: json or yaml")
	cmd.Flags().IntVar(&(config.concurrency), "concurrency", runtime.NumCPU(), "number of features to describe in parallel")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "maximum number of open connections to SQLite3 inputs (0 for unlimited)")
	return cmd
}

func (dcc *describeCmdConfig) Validate() error {
	if err := dcc.inputCmdConfig.Validate(); err != nil {
		return err
	}
	if dcc.format != report.JSON && dcc.format != report.YAML {
		return fmt.Errorf("unknown format %q", dcc.format)
	}
	if dcc.concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", dcc.concurrency)
	}
	return nil
}
