package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for route persistence.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRecommendedRoutesQuery := `
	CREATE TABLE IF NOT EXISTS recommended_routes (
		id TEXT PRIMARY KEY,
		route_name TEXT NOT NULL,
		display_name TEXT NOT NULL,
		source TEXT NOT NULL,
		destination TEXT NOT NULL,
		encoded_polyline TEXT NOT NULL,
		path JSONB NOT NULL,
		waypoints JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createCoveredPointsQuery := `
	CREATE TABLE IF NOT EXISTS covered_points (
		id BIGSERIAL PRIMARY KEY,
		route_id TEXT NOT NULL,
		route_name TEXT NOT NULL,
		source TEXT NOT NULL,
		destination TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		is_intermediate BOOLEAN NOT NULL,
		ts TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_covered_points_route_id
	ON covered_points(route_id);
	`

	statements := []string{
		createRecommendedRoutesQuery,
		createCoveredPointsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
