package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
	// Postgres is true when tests run against a real PostgreSQL instance
	Postgres bool
}

// SetupTestDB initializes a test database connection.
// With TEST_DB_HOST set the tests run against PostgreSQL and the project migrations;
// otherwise an in-memory SQLite database with an equivalent schema is used.
func SetupTestDB(t *testing.T, migrationsPath string) *TestDB {
	logger := zap.NewNop()

	if os.Getenv("TEST_DB_HOST") != "" {
		db := connectPostgres(t)
		if err := ApplyMigrations(db, migrationsPath); err != nil {
			t.Fatalf("Failed to apply migrations: %v", err)
		}
		return &TestDB{DB: db, Logger: logger, Postgres: true}
	}

	db, err := sqlx.Connect("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	// in-memory база живёт в пределах одного соединения
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		t.Fatalf("Failed to create sqlite schema: %v", err)
	}

	return &TestDB{DB: db, Logger: logger}
}

func connectPostgres(t *testing.T) *sqlx.DB {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "odc_test"),
		getEnv("TEST_DB_SSLMODE", "disable"),
	)

	// Retry connection with exponential backoff to wait for DB recovery
	var db *sqlx.DB
	var err error
	maxRetries := 5
	retryDelay := 500 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			return db
		}
		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	t.Skipf("PostgreSQL not available for integration tests: %v", err)
	return nil
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup cleans up test data
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	// children first
	tables := []string{
		"survey_constraints",
		"survey_pricing",
		"survey_reports",
		"transport_enquiries",
	}

	for _, table := range tables {
		if _, err := tdb.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
	}

	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
