package cmd

import (
	"context"
	"fmt"

	"movie-review/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.InitDB(config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		return runMigrations(cmd.Context(), db, logger)
	},
}

func runMigrations(ctx context.Context, db database.PgxIface, logger *zap.Logger) error {
	applied, err := database.Migrate(ctx, db, logger)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if len(applied) == 0 {
		logger.Info("Schema is up to date")
		return nil
	}
	logger.Info("Migrations applied", zap.Strings("versions", applied))
	return nil
}
