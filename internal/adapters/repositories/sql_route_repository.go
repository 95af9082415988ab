package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resilient-route-service/internal/domain"
)

// Postgres-backed implementation of the RecommendedRouteRepository port.
type SQLRouteRepository struct{ DB *sql.DB }

func NewSQLRouteRepository(db *sql.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: db}
}

func (r *SQLRouteRepository) SaveRecommendedRoute(ctx context.Context, route domain.RecommendedRoute) error {
	if r.DB == nil {
		return errors.New("route repository: DB is nil")
	}

	path, err := json.Marshal(route.Path)
	if err != nil {
		return fmt.Errorf("save recommended route: marshal path: %w", err)
	}
	waypoints, err := json.Marshal(route.Waypoints)
	if err != nil {
		return fmt.Errorf("save recommended route: marshal waypoints: %w", err)
	}

	query := `
	INSERT INTO recommended_routes (
		id,
		route_name,
		display_name,
		source,
		destination,
		encoded_polyline,
		path,
		waypoints,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.DB.ExecContext(ctx, query,
		route.ID,
		route.RouteName,
		route.DisplayName,
		route.Source,
		route.Destination,
		route.EncodedPolyline,
		path,
		waypoints,
		route.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save recommended route %s: %w", route.ID, err)
	}
	return nil
}
