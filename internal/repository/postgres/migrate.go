package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// MigrationFiles returns the sorted .up.sql (or .down.sql) files of a directory
func MigrationFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// MigrateUp применяет ещё не применённые .up.sql миграции, каждую в своей транзакции
func (db *DB) MigrateUp(ctx context.Context, dir string) ([]string, error) {
	if _, err := db.ExecContext(ctx, migrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := MigrationFiles(dir, ".up.sql")
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, file := range files {
		version := strings.TrimSuffix(file, ".up.sql")

		var exists bool
		if err := db.GetContext(ctx, &exists,
			db.Rebind(`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = ?)`), version); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if exists {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %s: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("apply migration %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_migrations (version) VALUES (?)`), version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", version, err)
		}

		db.logger.Info("Migration applied", zap.String("version", version))
		applied = append(applied, version)
	}

	return applied, nil
}

// MigrateDown откатывает последнюю применённую миграцию
func (db *DB) MigrateDown(ctx context.Context, dir string) (string, error) {
	var version string
	err := db.GetContext(ctx, &version, `SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find last migration: %w", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, version+".down.sql"))
	if err != nil {
		return "", fmt.Errorf("read down migration %s: %w", version, err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("revert migration %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM schema_migrations WHERE version = ?`), version); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("unrecord migration %s: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	db.logger.Info("Migration reverted", zap.String("version", version))
	return version, nil
}
