package main

import (
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	logger
	profile  bool
	profiler interface{ Stop() }
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "impurity",
		Short: "impurity is a tool to evaluate decision tree splitting criteria",
		Long:  `A tool to count classes, enumerate values and measure the Gini impurity, entropy and information gain of your data`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if config.profile {
				config.profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if config.profiler != nil {
				config.profiler.Stop()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP((*bool)(&config.logger), "verbose", "v", false, "")
	rootCmd.PersistentFlags().BoolVar(&(config.profile), "profile", false, "write a CPU profile of the command to cpu.pprof")
	rootCmd.AddCommand(
		versionCmd(),
		countsCmd(config),
		uniqueCmd(config),
		giniCmd(config),
		entropyCmd(config),
		describeCmd(config),
		gainCmd(config),
		importCmd(config),
	)
	return rootCmd
}
