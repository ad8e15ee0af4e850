package cmd

import (
	"github.com/spf13/cobra"

	"personal-planner/config/setup"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema to the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := setup.InitStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		logger.Info("migrations applied", "store", cfg.StoreDriver)
		return nil
	},
}
