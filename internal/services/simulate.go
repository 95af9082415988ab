package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/ports"
)

// Points this close to a waypoint hint (per axis, in degrees) count as
// intermediate waypoint passes.
const waypointTolerance = 0.0005

const defaultSimStepDelay = 500 * time.Millisecond

// SimulateTraversal walks a persisted route point by point, appending a
// covered-point sample per step with a fixed delay between steps. A point
// is intermediate when it lies within tolerance of one of the route's
// waypoint hints.
func SimulateTraversal(ctx context.Context, trace ports.CoveredPointRepository, route domain.RecommendedRoute, stepDelay time.Duration) error {
	if stepDelay <= 0 {
		stepDelay = defaultSimStepDelay
	}

	for i, p := range route.Path {
		if err := ctx.Err(); err != nil {
			return err
		}

		point := domain.CoveredPoint{
			RouteID:        route.ID,
			RouteName:      route.RouteName,
			Source:         route.Source,
			Destination:    route.Destination,
			Lat:            p.Lat,
			Lon:            p.Lon,
			IsIntermediate: isIntermediate(p, route.Waypoints),
			Timestamp:      time.Now().UTC(),
		}
		if err := trace.AppendCoveredPoint(ctx, point); err != nil {
			return fmt.Errorf("simulate traversal route_id=%s point=%d: %w", route.ID, i, err)
		}

		if i < len(route.Path)-1 {
			timer := time.NewTimer(stepDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	log.Printf("[simulate] route_id=%s points=%d completed", route.ID, len(route.Path))
	return nil
}

func isIntermediate(p domain.Coordinates, waypoints []domain.Coordinates) bool {
	for _, wp := range waypoints {
		if p.Within(wp, waypointTolerance) {
			return true
		}
	}
	return false
}
