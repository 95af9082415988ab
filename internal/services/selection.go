package services

import (
	"fmt"
	"time"

	"github.com/twpayne/go-polyline"

	"resilient-route-service/internal/domain"
)

// SelectRecommended returns the first route with Recommended status in
// ranked order, or nil when no route qualifies.
func SelectRecommended(routes []domain.ScoredRoute) *domain.ScoredRoute {
	for i := range routes {
		if routes[i].Status == domain.StatusRecommended {
			return &routes[i]
		}
	}
	return nil
}

// BuildRecommendedRoute assembles the persistence record for a selected
// route from its scored form and the matching candidate. The encoded and
// decoded geometry are reconciled: whichever form the candidate carries is
// used to derive the other.
func BuildRecommendedRoute(selected domain.ScoredRoute, candidates []domain.RouteCandidate) (domain.RecommendedRoute, error) {
	var cand *domain.RouteCandidate
	for i := range candidates {
		if candidates[i].Name == selected.Name {
			cand = &candidates[i]
			break
		}
	}
	if cand == nil {
		return domain.RecommendedRoute{}, fmt.Errorf("build recommended route: no candidate named %q", selected.Name)
	}

	encoded := cand.EncodedPolyline
	path := cand.Geometry

	switch {
	case len(path) == 0 && encoded != "":
		coords, _, err := polyline.DecodeCoords([]byte(encoded))
		if err != nil {
			return domain.RecommendedRoute{}, fmt.Errorf("build recommended route: decode polyline: %w", err)
		}
		path = make([]domain.Coordinates, len(coords))
		for i, c := range coords {
			path[i] = domain.Coordinates{Lat: c[0], Lon: c[1]}
		}
	case encoded == "" && len(path) > 0:
		coords := make([][]float64, len(path))
		for i, p := range path {
			coords[i] = p.CoordsToList()
		}
		encoded = string(polyline.EncodeCoords(coords))
	}

	return domain.RecommendedRoute{
		ID:              selected.ID,
		RouteName:       selected.Name,
		DisplayName:     selected.DisplayName,
		Source:          selected.Origin,
		Destination:     selected.Destination,
		EncodedPolyline: encoded,
		Path:            path,
		Waypoints:       waypointHints(path),
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// waypointHints picks up to two interior points, at a third and two thirds
// of the path, as coarse progress markers.
func waypointHints(path []domain.Coordinates) []domain.Coordinates {
	if len(path) < 3 {
		return nil
	}
	return []domain.Coordinates{
		path[len(path)/3],
		path[2*len(path)/3],
	}
}
