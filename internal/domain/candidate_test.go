package domain

import (
	"encoding/json"
	"testing"
)

func TestWeatherRiskAcceptsBothForms(t *testing.T) {
	var w WeatherConditions
	if err := json.Unmarshal([]byte(`{"rainfallMm": 5, "risk": "high"}`), &w); err != nil {
		t.Fatalf("categorical form: %v", err)
	}
	if w.Risk == nil || w.Risk.Category != "high" || w.Risk.Fraction != nil {
		t.Fatalf("risk = %+v", w.Risk)
	}

	if err := json.Unmarshal([]byte(`{"rainfallMm": 5, "risk": 0.73}`), &w); err != nil {
		t.Fatalf("numeric form: %v", err)
	}
	if w.Risk == nil || w.Risk.Fraction == nil || *w.Risk.Fraction != 0.73 {
		t.Fatalf("risk = %+v", w.Risk)
	}

	if err := json.Unmarshal([]byte(`{"risk": true}`), &w); err == nil {
		t.Fatal("expected error for unsupported risk type")
	}
}

func TestStatusForScoreBands(t *testing.T) {
	cases := []struct {
		score float64
		want  RouteStatus
	}{
		{0, StatusFlagged},
		{5.9, StatusFlagged},
		{6.0, StatusUnderEvaluation},
		{8.0, StatusUnderEvaluation},
		{8.1, StatusRecommended},
		{10, StatusRecommended},
	}
	for _, tc := range cases {
		if got := StatusForScore(tc.score); got != tc.want {
			t.Fatalf("StatusForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
