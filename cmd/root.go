package cmd

import (
	"fmt"
	"os"

	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "cinema",
	Short:         "Cinema seat reservation and ticketing service",
	Long:          `Sells cinema seats per session, issues tickets and keeps an audit trail of every sale and cancellation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seatsCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config, starts the logger and connects to Postgres.
func bootstrap() (*utils.Config, *zap.Logger, database.PgxIface, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production defaults.\n", err)
		logger, _ = zap.NewProduction()
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	logger.Info("Database connected successfully")

	return config, logger, db, nil
}
