package dto

// Request/response shapes for the route analysis API. External field names
// are snake_case regardless of internal wire formats.

type PrioritiesRequest struct {
	Time           float64 `json:"time"`
	Distance       float64 `json:"distance"`
	CarbonEmission float64 `json:"carbon_emission"`
	RoadQuality    float64 `json:"road_quality"`
}

type AnalyzeRequest struct {
	Origin          string             `json:"origin"`
	Destination     string             `json:"destination"`
	Priorities      *PrioritiesRequest `json:"priorities"`
	MaxAlternatives int                `json:"max_alternatives"`
}

type RescoreRequest struct {
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Priorities  *PrioritiesRequest `json:"priorities"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type SubScoresResponse struct {
	WeatherRisk int `json:"weather_risk"`
	RoadSafety  int `json:"road_safety"`
	SocialRisk  int `json:"social_risk"`
	TrafficRisk int `json:"traffic_risk"`
}

type RouteResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	DisplayName     string              `json:"display_name"`
	ResilienceScore float64             `json:"resilience_score"`
	Status          string              `json:"status"`
	IsRecommended   bool                `json:"is_recommended"`
	DisruptionRisk  string              `json:"disruption_risk"`
	Time            string              `json:"time"`
	Cost            string              `json:"cost"`
	Carbon          string              `json:"carbon"`
	Distance        string              `json:"distance"`
	OriginCoords    CoordinatesResponse `json:"origin_coords"`
	DestCoords      CoordinatesResponse `json:"dest_coords"`
	SubScores       SubScoresResponse   `json:"sub_scores"`
	Summary         string              `json:"summary,omitempty"`
	Reasoning       string              `json:"reasoning,omitempty"`
}

type AnalysisResponse struct {
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	BestRouteName string          `json:"best_route_name,omitempty"`
	Routes        []RouteResponse `json:"routes"`
}
