package main

import (
	"fmt"
	"os"

	"github.com/aretw0/numerology/internal/cli"
	"github.com/aretw0/numerology/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "numerology",
	Short: "Numerology calculates life path, destiny and four more numbers",
	Long: `Numerology derives six numbers from a date of birth and a name written in
letters A-Z, and explains each one in a brief or a detailed form.

Settings come from --config (YAML) and NUMEROLOGY_* environment variables,
e.g. NUMEROLOGY_SESSION_BACKEND=redis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level to stderr")
}

// loadConfig reads the configuration and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Server.LogLevel = "debug"
	}
	return cfg, nil
}

// loadApp builds the application. Logs always go to stderr so stdout stays
// free for results.
func loadApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cfg, os.Stderr)
}
