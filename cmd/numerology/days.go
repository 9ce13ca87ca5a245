package main

import (
	"time"

	"github.com/aretw0/numerology/internal/cli"
	"github.com/spf13/cobra"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the days of a month",
	Long:  `Prints the selectable days for --year and --month. Without --year the current year is used, without --month January.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")
		return cli.PrintDays(cmd.OutOrStdout(), time.Now(), year, month)
	},
}

func init() {
	rootCmd.AddCommand(daysCmd)
	daysCmd.Flags().Int("year", 0, "Year")
	daysCmd.Flags().Int("month", 0, "Month (1-12)")
}
