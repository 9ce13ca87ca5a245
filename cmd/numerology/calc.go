package main

import (
	"github.com/aretw0/numerology/internal/cli"
	"github.com/aretw0/numerology/pkg/validation"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate the six numbers once",
	Long: `Validates one date of birth and name, then prints the six numbers.
The name is used exactly as given: letters A-Z and single spaces only.`,
	Example: `  numerology calc --year 1990 --month 7 --day 15 --name "JOHN SMITH"
  numerology calc --year 1990 --month 7 --day 15 --name "JOHN SMITH" --mode detail --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		year, _ := cmd.Flags().GetString("year")
		month, _ := cmd.Flags().GetString("month")
		day, _ := cmd.Flags().GetString("day")
		name, _ := cmd.Flags().GetString("name")
		mode, _ := cmd.Flags().GetString("mode")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.Calculate(cmd.Context(), app, cli.CalcOptions{
			Input: validation.Input{Year: year, Month: month, Day: day, Name: name},
			Mode:  mode,
			JSON:  jsonMode,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().String("year", "", "Year of birth")
	calcCmd.Flags().String("month", "", "Month of birth (1-12)")
	calcCmd.Flags().String("day", "", "Day of birth")
	calcCmd.Flags().String("name", "", "Name in letters A-Z")
	calcCmd.Flags().String("mode", "", "Display mode: brief or detail (default from config)")
	calcCmd.Flags().Bool("json", false, "Print the result as JSON")
}
