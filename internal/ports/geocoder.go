package ports

import (
	"context"
	"resilient-route-service/internal/domain"
)

// Resolved coordinates for a place name.
type GeocodeResult struct {
	Coords      domain.Coordinates
	DisplayName string
}

// Port: a boundary for resolving place names to coordinates.
type Geocoder interface {
	// Resolve maps a place name to coordinates. found is false, with a nil
	// error, when the provider answered with no matches; errors are
	// provider/network failures and are propagated without retry.
	Resolve(ctx context.Context, place string) (result GeocodeResult, found bool, err error)
}
