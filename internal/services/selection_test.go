package services

import (
	"testing"

	"github.com/twpayne/go-polyline"

	"resilient-route-service/internal/domain"
)

func TestSelectRecommendedPicksFirst(t *testing.T) {
	routes := []domain.ScoredRoute{
		{Name: "A", Status: domain.StatusUnderEvaluation},
		{Name: "B", Status: domain.StatusRecommended},
		{Name: "C", Status: domain.StatusRecommended},
	}

	selected := SelectRecommended(routes)
	if selected == nil || selected.Name != "B" {
		t.Fatalf("selected = %+v, want B", selected)
	}
}

func TestSelectRecommendedNone(t *testing.T) {
	routes := []domain.ScoredRoute{
		{Name: "A", Status: domain.StatusFlagged},
		{Name: "B", Status: domain.StatusUnderEvaluation},
	}
	if selected := SelectRecommended(routes); selected != nil {
		t.Fatalf("selected = %+v, want nil", selected)
	}
}

func TestBuildRecommendedRouteFromGeometry(t *testing.T) {
	path := []domain.Coordinates{
		{Lat: 19.0, Lon: 72.0},
		{Lat: 21.0, Lon: 73.0},
		{Lat: 23.0, Lon: 74.0},
		{Lat: 25.0, Lon: 75.0},
		{Lat: 26.9, Lon: 75.8},
	}
	selected := domain.ScoredRoute{ID: "id-1", Name: "NH48", Origin: "Mumbai", Destination: "Jaipur"}
	candidates := []domain.RouteCandidate{{Name: "NH48", Geometry: path}}

	record, err := BuildRecommendedRoute(selected, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID != "id-1" || record.RouteName != "NH48" {
		t.Fatalf("record = %+v", record)
	}
	if len(record.Path) != 5 {
		t.Fatalf("path len = %d, want 5", len(record.Path))
	}
	// Missing encoded form is derived from the geometry.
	if record.EncodedPolyline == "" {
		t.Fatal("encoded polyline not derived")
	}
	coords, _, err := polyline.DecodeCoords([]byte(record.EncodedPolyline))
	if err != nil {
		t.Fatalf("derived polyline does not decode: %v", err)
	}
	if len(coords) != 5 {
		t.Fatalf("decoded coords len = %d, want 5", len(coords))
	}
	if len(record.Waypoints) != 2 {
		t.Fatalf("waypoints len = %d, want 2", len(record.Waypoints))
	}
}

func TestBuildRecommendedRouteFromPolyline(t *testing.T) {
	encoded := string(polyline.EncodeCoords([][]float64{
		{19.0, 72.0},
		{23.0, 74.0},
		{26.9, 75.8},
	}))
	selected := domain.ScoredRoute{ID: "id-2", Name: "NH52"}
	candidates := []domain.RouteCandidate{{Name: "NH52", EncodedPolyline: encoded}}

	record, err := BuildRecommendedRoute(selected, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Missing geometry is derived from the encoded form.
	if len(record.Path) != 3 {
		t.Fatalf("path len = %d, want 3", len(record.Path))
	}
	if !record.Path[1].Within(domain.Coordinates{Lat: 23.0, Lon: 74.0}, 0.0001) {
		t.Fatalf("path[1] = %+v", record.Path[1])
	}
}

func TestBuildRecommendedRouteUnknownCandidate(t *testing.T) {
	selected := domain.ScoredRoute{Name: "ghost"}
	if _, err := BuildRecommendedRoute(selected, []domain.RouteCandidate{{Name: "NH48"}}); err == nil {
		t.Fatal("expected error for unknown candidate")
	}
}

func TestWaypointHints(t *testing.T) {
	if got := waypointHints([]domain.Coordinates{{Lat: 1}, {Lat: 2}}); got != nil {
		t.Fatalf("short path hints = %+v, want nil", got)
	}

	path := make([]domain.Coordinates, 9)
	for i := range path {
		path[i] = domain.Coordinates{Lat: float64(i)}
	}
	hints := waypointHints(path)
	if len(hints) != 2 {
		t.Fatalf("hints len = %d, want 2", len(hints))
	}
	if hints[0].Lat != 3 || hints[1].Lat != 6 {
		t.Fatalf("hints = %+v", hints)
	}
}
