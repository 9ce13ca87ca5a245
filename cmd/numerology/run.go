package main

import (
	"context"
	"os"

	"github.com/aretw0/numerology/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive calculator",
	Long: `Prompts for year, month, day and name, then shows the six numbers.
At any prompt, :brief and :detail switch the display mode, :new starts over
and :quit exits.

With --json, each input line is a form {"year","month","day","name"}, a mode
switch {"mode":"detail"} or a command {"command":"new"|"quit"}, and each
output line is {"view":...}, {"error":...} or {"system":...}.

With --session the session is stored in the configured backend and resumed
on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		jsonMode, _ := cmd.Flags().GetBool("json")
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.Run(sigCtx, app, cli.RunOptions{
			JSON:      jsonMode,
			SessionID: sessionID,
			Fresh:     fresh,
		}, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().StringP("session", "s", "", "Session ID to resume or create")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
}
