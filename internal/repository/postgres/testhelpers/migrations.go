package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/odc-estimate/internal/repository/postgres"
)

// ApplyMigrations applies all .up.sql migration files from the specified directory
func ApplyMigrations(db *sqlx.DB, migrationsPath string) error {
	// чистая схема для каждого прогона
	downFiles, err := postgres.MigrationFiles(migrationsPath, ".down.sql")
	if err != nil {
		return err
	}
	for i := len(downFiles) - 1; i >= 0; i-- {
		content, err := os.ReadFile(filepath.Join(migrationsPath, downFiles[i]))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", downFiles[i], err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("revert migration %s: %w", downFiles[i], err)
		}
	}

	upFiles, err := postgres.MigrationFiles(migrationsPath, ".up.sql")
	if err != nil {
		return err
	}
	for _, file := range upFiles {
		content, err := os.ReadFile(filepath.Join(migrationsPath, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}
