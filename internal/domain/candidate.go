package domain

import (
	"encoding/json"
	"fmt"
)

// RouteCandidate is one raw route alternative between two endpoints.
// Provider order is preserved throughout the pipeline: the candidate's
// position is the fallback key for matching score records.
//
// The enrichment fields are empty when the candidate comes straight from a
// routing provider and are populated by the scoring worker in full mode.
// JSON tags follow the worker wire contract (camelCase); the same encoding is
// used for cache entries so a rescore replays exactly what the worker saw.
type RouteCandidate struct {
	Name            string        `json:"routeName"`
	DistanceMeters  float64       `json:"distanceMeters"`
	DurationSeconds float64       `json:"durationSeconds"`
	EncodedPolyline string        `json:"encodedPolyline,omitempty"`
	Geometry        []Coordinates `json:"geometry,omitempty"`

	Weather         *WeatherConditions `json:"weather,omitempty"`
	RoadTypes       []string           `json:"roadTypes,omitempty"`
	RoadCondition   string             `json:"roadCondition,omitempty"`
	PoliticalRisk   *float64           `json:"politicalRisk,omitempty"`
	SocialRisk      *float64           `json:"socialRisk,omitempty"`
	TrafficStatus   string             `json:"trafficStatus,omitempty"`
	RestStopsNearby bool               `json:"restStopsNearby,omitempty"`
	CarbonKg        *float64           `json:"carbonKg,omitempty"`
}

// WeatherConditions is the per-route weather summary attached by the worker.
type WeatherConditions struct {
	RainfallMM  float64      `json:"rainfallMm"`
	VisibilityM float64      `json:"visibilityM"`
	WindSpeed   float64      `json:"windspeed"`
	Temperature float64      `json:"temperature"`
	Risk        *WeatherRisk `json:"risk,omitempty"`
}

// WeatherRisk is the weather-risk indicator for a route. Upstream enrichment
// produces it in one of two forms: a categorical label ("low", "moderate",
// "high") or a fraction in [0,1]. Exactly one of Category/Fraction is set.
type WeatherRisk struct {
	Category string
	Fraction *float64
}

func (w *WeatherRisk) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		w.Category = s
		w.Fraction = nil
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		w.Category = ""
		w.Fraction = &f
		return nil
	}

	return fmt.Errorf("weather risk: expected string or number, got %s", string(b))
}

func (w WeatherRisk) MarshalJSON() ([]byte, error) {
	if w.Fraction != nil {
		return json.Marshal(*w.Fraction)
	}
	return json.Marshal(w.Category)
}
