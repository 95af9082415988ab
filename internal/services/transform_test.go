package services

import (
	"testing"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/ports"
)

func record(name string, overall int) ports.ScoreRecord {
	return ports.ScoreRecord{
		RouteName:              name,
		WeatherRiskScore:       20,
		RoadSafetyScore:        30,
		SocialRiskScore:        10,
		TrafficRiskScore:       40,
		OverallResilienceScore: overall,
		ShortSummary:           "summary of " + name,
	}
}

func TestTransformScoresNameMatch(t *testing.T) {
	candidates := []domain.RouteCandidate{
		{Name: "A", DistanceMeters: 10000, DurationSeconds: 600},
		{Name: "B", DistanceMeters: 20000, DurationSeconds: 1200},
	}
	// Records arrive in reverse order; matching must go by name.
	scores := ports.ResilienceScores{
		Routes: []ports.ScoreRecord{record("B", 91), record("A", 55)},
	}

	routes := TransformScores(candidates, scores, TransformContext{Origin: "X", Destination: "Y"})
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].Name != "A" || routes[0].ResilienceScore != 5.5 {
		t.Fatalf("route A: name=%q score=%v", routes[0].Name, routes[0].ResilienceScore)
	}
	if routes[1].Name != "B" || routes[1].ResilienceScore != 9.1 {
		t.Fatalf("route B: name=%q score=%v", routes[1].Name, routes[1].ResilienceScore)
	}
	if routes[1].Summary != "summary of B" {
		t.Fatalf("route B summary = %q", routes[1].Summary)
	}
}

func TestTransformScoresStatusBands(t *testing.T) {
	cases := []struct {
		overall int
		status  domain.RouteStatus
		rec     bool
	}{
		{59, domain.StatusFlagged, false},
		{60, domain.StatusUnderEvaluation, false},
		{80, domain.StatusUnderEvaluation, false},
		{81, domain.StatusRecommended, true},
		{91, domain.StatusRecommended, true},
	}

	for _, tc := range cases {
		candidates := []domain.RouteCandidate{{Name: "R"}}
		scores := ports.ResilienceScores{Routes: []ports.ScoreRecord{record("R", tc.overall)}}

		routes := TransformScores(candidates, scores, TransformContext{})
		if routes[0].Status != tc.status {
			t.Fatalf("overall=%d: status = %q, want %q", tc.overall, routes[0].Status, tc.status)
		}
		if routes[0].IsRecommended != tc.rec {
			t.Fatalf("overall=%d: is_recommended = %v, want %v", tc.overall, routes[0].IsRecommended, tc.rec)
		}
	}
}

func TestTransformScoresPositionalFallback(t *testing.T) {
	candidates := []domain.RouteCandidate{
		{Name: "NH48"},
		{Name: "NH52"},
	}
	// Worker renamed the routes; positions still line up.
	scores := ports.ResilienceScores{
		Routes: []ports.ScoreRecord{record("Route 1", 85), record("Route 2", 45)},
	}

	routes := TransformScores(candidates, scores, TransformContext{})
	if routes[0].ResilienceScore != 8.5 {
		t.Fatalf("first route score = %v, want 8.5", routes[0].ResilienceScore)
	}
	if routes[1].ResilienceScore != 4.5 {
		t.Fatalf("second route score = %v, want 4.5", routes[1].ResilienceScore)
	}
	// Presentation keeps the candidate's name, not the record's.
	if routes[0].Name != "NH48" {
		t.Fatalf("first route name = %q, want NH48", routes[0].Name)
	}
}

func TestTransformScoresDefaultSubScores(t *testing.T) {
	candidates := []domain.RouteCandidate{
		{Name: "A"},
		{Name: "B"},
	}
	// Only one record: the second candidate gets neutral defaults.
	scores := ports.ResilienceScores{Routes: []ports.ScoreRecord{record("A", 70)}}

	routes := TransformScores(candidates, scores, TransformContext{})
	b := routes[1]
	if b.ResilienceScore != 5.0 {
		t.Fatalf("defaulted score = %v, want 5.0", b.ResilienceScore)
	}
	if b.Status != domain.StatusFlagged {
		t.Fatalf("defaulted status = %q, want Flagged", b.Status)
	}
	want := domain.SubScores{WeatherRisk: 50, RoadSafety: 50, SocialRisk: 50, TrafficRisk: 50}
	if b.SubScores != want {
		t.Fatalf("defaulted sub-scores = %+v", b.SubScores)
	}
}

func TestDisruptionRiskFromSocialScore(t *testing.T) {
	cases := []struct {
		social int
		want   domain.RiskLevel
	}{
		{10, domain.RiskLow},
		{40, domain.RiskLow},
		{41, domain.RiskMedium},
		{70, domain.RiskMedium},
		{71, domain.RiskHigh},
	}
	for _, tc := range cases {
		rec := ports.ScoreRecord{SocialRiskScore: tc.social}
		if got := disruptionRisk(domain.RouteCandidate{}, rec); got != tc.want {
			t.Fatalf("social=%d: risk = %q, want %q", tc.social, got, tc.want)
		}
	}
}

func TestDisruptionRiskFromWeatherCategory(t *testing.T) {
	cand := domain.RouteCandidate{
		Weather: &domain.WeatherConditions{Risk: &domain.WeatherRisk{Category: "High"}},
	}
	if got := disruptionRisk(cand, ports.ScoreRecord{}); got != domain.RiskHigh {
		t.Fatalf("category high: risk = %q, want High", got)
	}

	cand.Weather.Risk.Category = "moderate"
	if got := disruptionRisk(cand, ports.ScoreRecord{}); got != domain.RiskMedium {
		t.Fatalf("category moderate: risk = %q, want Medium", got)
	}
}

func TestDisruptionRiskFromWeatherFraction(t *testing.T) {
	frac := func(f float64) domain.RouteCandidate {
		return domain.RouteCandidate{
			Weather: &domain.WeatherConditions{Risk: &domain.WeatherRisk{Fraction: &f}},
		}
	}

	if got := disruptionRisk(frac(0.8), ports.ScoreRecord{}); got != domain.RiskHigh {
		t.Fatalf("fraction 0.8: risk = %q, want High", got)
	}
	if got := disruptionRisk(frac(0.5), ports.ScoreRecord{}); got != domain.RiskMedium {
		t.Fatalf("fraction 0.5: risk = %q, want Medium", got)
	}
	if got := disruptionRisk(frac(0.2), ports.ScoreRecord{}); got != domain.RiskLow {
		t.Fatalf("fraction 0.2: risk = %q, want Low", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{300, "5 min"},
		{3540, "59 min"},
		{3600, "1 hr"},
		{34200, "10 hr"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.seconds); got != tc.want {
			t.Fatalf("formatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestDisplayFormats(t *testing.T) {
	// Mumbai → Jaipur, roughly 1150 km and 19.5 hours.
	cand := domain.RouteCandidate{
		Name:            "NH48",
		DistanceMeters:  1150000,
		DurationSeconds: 70200,
	}
	scores := ports.ResilienceScores{Routes: []ports.ScoreRecord{record("NH48", 91)}}

	routes := TransformScores([]domain.RouteCandidate{cand}, scores, TransformContext{
		Origin:      "Mumbai",
		Destination: "Jaipur",
	})
	rt := routes[0]

	if rt.ResilienceScore != 9.1 || rt.Status != domain.StatusRecommended {
		t.Fatalf("score=%v status=%q", rt.ResilienceScore, rt.Status)
	}
	if rt.TimeDisplay != "20 hr" {
		t.Fatalf("time = %q, want 20 hr", rt.TimeDisplay)
	}
	if rt.DistanceDisplay != "1150 km" {
		t.Fatalf("distance = %q, want 1150 km", rt.DistanceDisplay)
	}
	if rt.CostDisplay != "₹16675" {
		t.Fatalf("cost = %q, want ₹16675", rt.CostDisplay)
	}
	if rt.CarbonDisplay != "943.0 kg CO2" {
		t.Fatalf("carbon = %q, want 943.0 kg CO2", rt.CarbonDisplay)
	}
	if rt.DisplayName != "Mumbai → Jaipur via NH48" {
		t.Fatalf("display name = %q", rt.DisplayName)
	}
}

func TestCarbonPrefersWorkerTotal(t *testing.T) {
	total := 812.5
	cand := domain.RouteCandidate{Name: "R", DistanceMeters: 1150000, CarbonKg: &total}
	scores := ports.ResilienceScores{Routes: []ports.ScoreRecord{record("R", 70)}}

	routes := TransformScores([]domain.RouteCandidate{cand}, scores, TransformContext{})
	if routes[0].CarbonDisplay != "812.5 kg CO2" {
		t.Fatalf("carbon = %q, want 812.5 kg CO2", routes[0].CarbonDisplay)
	}
}

func TestTransformAssignsUniqueIDs(t *testing.T) {
	candidates := []domain.RouteCandidate{{Name: "A"}, {Name: "B"}}
	scores := ports.ResilienceScores{
		Routes: []ports.ScoreRecord{record("A", 50), record("B", 50)},
	}

	routes := TransformScores(candidates, scores, TransformContext{})
	if routes[0].ID == "" || routes[1].ID == "" || routes[0].ID == routes[1].ID {
		t.Fatalf("ids not unique: %q %q", routes[0].ID, routes[1].ID)
	}
}
