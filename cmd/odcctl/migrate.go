package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/repository/postgres"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long:  "Applies every *.up.sql file that is not yet recorded in schema_migrations, in lexicographic order.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := db.MigrateUp(cmd.Context(), migrationsDir)
		if err != nil {
			return eris.Wrap(err, "migrate up")
		}

		if len(applied) == 0 {
			zap.L().Info("schema is up to date")
			return nil
		}
		zap.L().Info("migrations applied", zap.Strings("versions", applied))
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := db.MigrateDown(cmd.Context(), migrationsDir)
		if err != nil {
			return eris.Wrap(err, "migrate down")
		}

		if version == "" {
			zap.L().Info("nothing to roll back")
			return nil
		}
		zap.L().Info("migration rolled back", zap.String("version", version))
		return nil
	},
}

func openDB() (*postgres.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := postgres.New(&cfg.Database, zap.L())
	if err != nil {
		return nil, eris.Wrap(err, "connect to database")
	}
	return db, nil
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "directory with *.up.sql / *.down.sql files")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
