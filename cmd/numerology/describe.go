package main

import (
	"strconv"

	"github.com/aretw0/numerology/internal/cli"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:     "describe <kind> <number>",
	Short:   "Explain one number",
	Long:    `Prints the text for one number of one kind: life_path, destiny, soul, personality, birthday or maturity.`,
	Example: `  numerology describe maturity 33 --mode detail`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		mode, _ := cmd.Flags().GetString("mode")
		return cli.Describe(app, args[0], n, mode, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().String("mode", "", "Display mode: brief or detail (default from config)")
}
