package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in impurity's version
	VersionMajor = 0
	// VersionMinor is the minor number in impurity's version
	VersionMinor = 1
	// VersionPatch is the patch number in impurity's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of impurity",
		Long:  `All software has versions. This is impurity's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "impurity v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
