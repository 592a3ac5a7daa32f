package main

import (
	"fmt"
	"os"

	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/dataset/csv"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/report"
	"github.com/spf13/cobra"
)

type gainCmdConfig struct {
	*inputCmdConfig
	input          string
	split          string
	leftInput      string
	rightInput     string
	leftOutput     string
	rightOutput    string
	column         string
	format         string
	parentImpurity float64
	parentGiven    bool
}

func gainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &gainCmdConfig{inputCmdConfig: &inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "gain",
		Short: "Measure the information gain of a split",
		Long: `Measure the information gain on a feature of splitting a dataset in two.

The split is either given as two inputs with the rows of each side (--left and
--right) or as a single input and a criterion that sends the rows satisfying it
to the left side (--input and --split). Criteria take the form 'name=value' for
discrete features and 'name<x' or 'name>=x' for continuous ones.`,
		Run: func(cmd *cobra.Command, args []string) {
			config.parentGiven = cmd.Flags().Changed("parent-impurity")
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
			left, right, criterion, err := config.Sides(features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			var parent *float64
			if config.parentGiven {
				parent = &config.parentImpurity
			}
			r, err := report.Gain(left, right, config.column, parent)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			r.Criterion = criterion
			err = report.Encode(cmd.OutOrStdout(), config.format, r)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			if err = config.WriteSides(left, right); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", inputFlagHelp+" to split with the criterion given with --split")
	cmd.Flags().StringVarP(&(config.split), "split", "s", "", "criterion that rows on the left side of the split satisfy")
	cmd.Flags().StringVarP(&(config.leftInput), "left", "l", "", "input with the rows of the left side of the split")
	cmd.Flags().StringVarP(&(config.rightInput), "right", "r", "", "input with the rows of the right side of the split")
	cmd.Flags().StringVar(&(config.leftOutput), "left-output", "", "path to a CSV file to dump the rows of the left side of the split")
	cmd.Flags().StringVar(&(config.rightOutput), "right-output", "", "path to a CSV file to dump the rows of the right side of the split")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.Flags().StringVarP(&(config.column), "column", "c", "", "name of the feature to measure the gain on (required)")
	cmd.Flags().Float64Var(&(config.parentImpurity), "parent-impurity", 0, "Gini impurity of the undivided rows (defaults to the impurity of both sides together)")
	cmd.Flags().StringVarP(&(config.table), "table", "t", "samples", "name of the table or collection holding the rows on SQL and MongoDB inputs")
	cmd.Flags().StringVarP(&(config.format), "format", "f", report.JSON, "output format: json or yaml")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "maximum number of open connections to SQLite3 inputs (0 for unlimited)")
	return cmd
}

func (gcc *gainCmdConfig) Validate() error {
	if err := gcc.inputCmdConfig.Validate(); err != nil {
		return err
	}
	if gcc.column == "" {
		return fmt.Errorf("required column flag was not set")
	}
	if gcc.format != report.JSON && gcc.format != report.YAML {
		return fmt.Errorf("unknown format %q", gcc.format)
	}
	if gcc.parentGiven && gcc.parentImpurity < 0 {
		return fmt.Errorf("parent impurity must not be negative, got %f", gcc.parentImpurity)
	}
	if gcc.split == "" {
		if gcc.leftInput == "" || gcc.rightInput == "" {
			return fmt.Errorf("either the split flag or both left and right flags must be set")
		}
		if gcc.leftOutput != "" || gcc.rightOutput != "" {
			return fmt.Errorf("left and right outputs can only be dumped when splitting with a criterion")
		}
		return nil
	}
	if gcc.leftInput != "" || gcc.rightInput != "" {
		return fmt.Errorf("left and right flags cannot be used with the split flag")
	}
	return nil
}

/*
Sides returns the datasets for both sides of the split and the criterion
used to split them, if any.
*/
func (gcc *gainCmdConfig) Sides(features []feature.Feature) (*dataset.Dataset, *dataset.Dataset, string, error) {
	if gcc.split == "" {
		left, err := gcc.Dataset(gcc.leftInput, features)
		if err != nil {
			return nil, nil, "", err
		}
		right, err := gcc.Dataset(gcc.rightInput, features)
		if err != nil {
			return nil, nil, "", err
		}
		return left, right, "", nil
	}
	c, err := feature.ParseCriterion(features, gcc.split)
	if err != nil {
		return nil, nil, "", err
	}
	ds, err := gcc.Dataset(gcc.input, features)
	if err != nil {
		return nil, nil, "", err
	}
	left, right, err := ds.Split(c)
	if err != nil {
		return nil, nil, "", err
	}
	gcc.Logf("Split on %v sends %d rows left and %d right", c, left.Count(), right.Count())
	return left, right, fmt.Sprintf("%v", c), nil
}

func (gcc *gainCmdConfig) WriteSides(left, right *dataset.Dataset) error {
	for _, side := range []struct {
		path string
		ds   *dataset.Dataset
	}{{gcc.leftOutput, left}, {gcc.rightOutput, right}} {
		if side.path == "" {
			continue
		}
		gcc.Logf("Dumping %d rows into %s...", side.ds.Count(), side.path)
		f, err := os.Create(side.path)
		if err != nil {
			return err
		}
		err = csv.WriteDataset(gcc.Context(), f, side.ds)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("dumping split side into %s: %v", side.path, err)
		}
	}
	return nil
}
