package routing

import (
	"context"
	"log"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/ports"
)

// FallbackProvider tries the primary provider and falls back to the
// secondary on failure or an empty result. Provider order within a result
// is preserved; the combined result is truncated to maxAlternatives.
type FallbackProvider struct {
	Primary   ports.RouteProvider
	Secondary ports.RouteProvider
}

func NewFallbackProvider(primary, secondary ports.RouteProvider) *FallbackProvider {
	return &FallbackProvider{Primary: primary, Secondary: secondary}
}

func (f *FallbackProvider) FetchRoutes(ctx context.Context, origin, dest domain.Coordinates, maxAlternatives int) ([]domain.RouteCandidate, error) {
	candidates, primaryErr := f.Primary.FetchRoutes(ctx, origin, dest, maxAlternatives)
	if primaryErr == nil && len(candidates) > 0 {
		return truncate(candidates, maxAlternatives), nil
	}
	if primaryErr != nil {
		log.Printf("[routing] primary provider failed, trying secondary: %v", primaryErr)
	} else {
		log.Printf("[routing] primary provider returned no routes, trying secondary")
	}

	if f.Secondary == nil {
		if primaryErr != nil {
			return nil, &domain.FetchError{PrimaryErr: primaryErr}
		}
		return nil, nil
	}

	candidates, secondaryErr := f.Secondary.FetchRoutes(ctx, origin, dest, maxAlternatives)
	if secondaryErr == nil {
		return truncate(candidates, maxAlternatives), nil
	}
	return nil, &domain.FetchError{PrimaryErr: primaryErr, SecondaryErr: secondaryErr}
}

func truncate(candidates []domain.RouteCandidate, max int) []domain.RouteCandidate {
	if max > 0 && len(candidates) > max {
		return candidates[:max]
	}
	return candidates
}
