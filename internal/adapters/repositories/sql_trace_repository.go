package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resilient-route-service/internal/domain"
)

// Postgres-backed implementation of the CoveredPointRepository port.
type SQLTraceRepository struct{ DB *sql.DB }

func NewSQLTraceRepository(db *sql.DB) *SQLTraceRepository {
	return &SQLTraceRepository{DB: db}
}

func (r *SQLTraceRepository) AppendCoveredPoint(ctx context.Context, point domain.CoveredPoint) error {
	if r.DB == nil {
		return errors.New("trace repository: DB is nil")
	}

	query := `
	INSERT INTO covered_points (
		route_id,
		route_name,
		source,
		destination,
		lat,
		lon,
		is_intermediate,
		ts
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.DB.ExecContext(ctx, query,
		point.RouteID,
		point.RouteName,
		point.Source,
		point.Destination,
		point.Lat,
		point.Lon,
		point.IsIntermediate,
		point.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append covered point route_id=%s: %w", point.RouteID, err)
	}
	return nil
}
