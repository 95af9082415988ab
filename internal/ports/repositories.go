package ports

import (
	"context"
	"resilient-route-service/internal/domain"
)

// Port: durable storage for selected best routes.
type RecommendedRouteRepository interface {
	// SaveRecommendedRoute persists a newly selected route. Insert-only.
	SaveRecommendedRoute(ctx context.Context, route domain.RecommendedRoute) error
}

// Port: durable append-only storage for simulated traversal samples.
type CoveredPointRepository interface {
	AppendCoveredPoint(ctx context.Context, point domain.CoveredPoint) error
}
