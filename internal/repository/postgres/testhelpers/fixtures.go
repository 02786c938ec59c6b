package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sqlx.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(fixturesPath, file))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// SeedRoute inserts a bare catalog row and returns its id
func SeedRoute(db *sqlx.DB, title, start, end, keywords string) (int64, error) {
	var id int64
	err := db.QueryRowxContext(context.Background(), db.Rebind(`
		INSERT INTO survey_reports (title, start_keyword, end_keyword, route_keywords)
		VALUES (?, ?, ?, ?)
		RETURNING id`), title, start, end, keywords).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed route %q: %w", title, err)
	}
	return id, nil
}

// SeedPricing inserts one pricing row for a route
func SeedPricing(db *sqlx.DB, routeID int64, height, length, width, weight string, price float64) (int64, error) {
	var id int64
	err := db.QueryRowxContext(context.Background(), db.Rebind(`
		INSERT INTO survey_pricing (survey_id, height, length, width, weight, price_per_km)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`), routeID, height, length, width, weight, price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed pricing for route %d: %w", routeID, err)
	}
	return id, nil
}
