package cmd

import (
	"fmt"

	"cinema-ticketing/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		applied, err := database.Migrate(cmd.Context(), db, logger)
		if err != nil {
			return err
		}

		logger.Info("Migrations complete", zap.Int("applied", applied))
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", applied)
		return nil
	},
}
