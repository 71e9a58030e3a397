package cmd

import (
	"errors"

	"postal/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the PostgreSQL schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Storage != StoragePostgres {
			return errors.New("migrate requires STORAGE=postgres")
		}

		db, err := postgres.Open(cfg.Postgres().DSN(), logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("schema migrated")
		return nil
	},
}
