package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/numerology"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of numerology",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "numerology version %s\n", strings.TrimSpace(numerology.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
