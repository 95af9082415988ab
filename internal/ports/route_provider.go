package ports

import (
	"context"
	"resilient-route-service/internal/domain"
)

// Port: a boundary for fetching raw route candidates between two points.
type RouteProvider interface {
	// FetchRoutes returns up to maxAlternatives candidates in provider
	// order. Order is significant: it becomes the positional fallback key
	// for score matching downstream.
	FetchRoutes(ctx context.Context, origin, dest domain.Coordinates, maxAlternatives int) ([]domain.RouteCandidate, error)
}
