// Package cmd provides the planner command line.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"personal-planner/config"
	"personal-planner/config/setup"
)

// Version information (set at build time via ldflags).
var Version = "dev"

// Global flags.
var flagConfigFile string

var (
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "planner",
	Short:        "Personal planner server",
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		if flagConfigFile != "" {
			if err := os.Setenv("CONFIG_FILE", flagConfigFile); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger = setup.NewLogger(cfg)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "path to a YAML config file (overrides CONFIG_FILE)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
