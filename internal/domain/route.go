package domain

import "time"

// RouteStatus classifies a scored route by its resilience score.
type RouteStatus string

const (
	StatusUnderEvaluation RouteStatus = "Under Evaluation"
	StatusRecommended     RouteStatus = "Recommended"
	StatusFlagged         RouteStatus = "Flagged"
)

// StatusForScore maps a 0-10 resilience score onto a status. The bands
// partition the range with no gap or overlap:
// [0,6) Flagged, [6,8] Under Evaluation, (8,10] Recommended.
func StatusForScore(score float64) RouteStatus {
	switch {
	case score > 8:
		return StatusRecommended
	case score < 6:
		return StatusFlagged
	default:
		return StatusUnderEvaluation
	}
}

// RiskLevel is the disruption-risk bucket for a route.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Component risk/safety scores on the worker's 0-100 scale.
type SubScores struct {
	WeatherRisk int
	RoadSafety  int
	SocialRisk  int
	TrafficRisk int
}

// PriorityWeights are the user's relative priorities for scoring, each
// in [0,1]. The worker combines them; this service only validates presence
// and passes them through.
type PriorityWeights struct {
	Time           float64 `json:"time"`
	Distance       float64 `json:"distance"`
	CarbonEmission float64 `json:"carbonEmission"`
	RoadQuality    float64 `json:"roadQuality"`
}

// IsZero reports whether no weight was supplied at all.
func (p PriorityWeights) IsZero() bool {
	return p.Time == 0 && p.Distance == 0 && p.CarbonEmission == 0 && p.RoadQuality == 0
}

// ScoredRoute is the public result of an analysis or rescore.
//
// Invariants: Status == Recommended iff ResilienceScore > 8;
// Status == Flagged iff ResilienceScore < 6;
// IsRecommended == (Status == Recommended).
type ScoredRoute struct {
	ID              string
	Name            string
	DisplayName     string
	Origin          string
	Destination     string
	ResilienceScore float64 // 0-10, worker score / 10
	Status          RouteStatus
	IsRecommended   bool
	DisruptionRisk  RiskLevel
	TimeDisplay     string
	CostDisplay     string
	CarbonDisplay   string
	DistanceDisplay string
	OriginCoords    Coordinates
	DestCoords      Coordinates
	SubScores       SubScores
	Summary         string
	Reasoning       string
}

// RecommendedRoute is the persisted record of the selected best route.
// Written once per successful analysis/rescore that yields a qualifying
// route; never mutated afterwards.
type RecommendedRoute struct {
	ID              string
	RouteName       string
	DisplayName     string
	Source          string
	Destination     string
	EncodedPolyline string
	Path            []Coordinates
	Waypoints       []Coordinates // up to two intermediate hints
	CreatedAt       time.Time
}

// CoveredPoint is one geometry sample of a recommended route, appended by
// the traversal simulator. Append-only; never updated or deleted here.
type CoveredPoint struct {
	RouteID        string
	RouteName      string
	Source         string
	Destination    string
	Lat            float64
	Lon            float64
	IsIntermediate bool
	Timestamp      time.Time
}
