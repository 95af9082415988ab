package services

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/ports"
)

const (
	costPerKm       = 14.5
	carbonPerKm     = 0.82
	defaultSubScore = 50
)

// TransformContext carries endpoint data into presentation fields.
type TransformContext struct {
	Origin       string
	Destination  string
	OriginCoords domain.Coordinates
	DestCoords   domain.Coordinates
}

// TransformScores merges worker score records into presentation-ready
// routes, one per candidate, preserving candidate order.
//
// Matching is by exact route name; candidates without a name match fall back
// to the record at the same position, and failing that get neutral default
// sub-scores. Both fallbacks are logged as warnings, never errors.
func TransformScores(candidates []domain.RouteCandidate, scores ports.ResilienceScores, tc TransformContext) []domain.ScoredRoute {
	byName := make(map[string]ports.ScoreRecord, len(scores.Routes))
	for _, rec := range scores.Routes {
		byName[rec.RouteName] = rec
	}

	routes := make([]domain.ScoredRoute, 0, len(candidates))
	for i, cand := range candidates {
		rec, ok := byName[cand.Name]
		if !ok && i < len(scores.Routes) {
			rec = scores.Routes[i]
			ok = true
			log.Printf("[transform] warning=%v", &domain.ScoreMatchWarning{
				CandidateName: cand.Name,
				RecordName:    rec.RouteName,
				Positional:    true,
			})
		}
		if !ok {
			rec = ports.ScoreRecord{
				RouteName:              cand.Name,
				WeatherRiskScore:       defaultSubScore,
				RoadSafetyScore:        defaultSubScore,
				SocialRiskScore:        defaultSubScore,
				TrafficRiskScore:       defaultSubScore,
				OverallResilienceScore: defaultSubScore,
			}
			log.Printf("[transform] warning=%v", &domain.ScoreMatchWarning{CandidateName: cand.Name})
		}

		score := float64(rec.OverallResilienceScore) / 10.0
		status := domain.StatusForScore(score)

		routes = append(routes, domain.ScoredRoute{
			ID:              uuid.NewString(),
			Name:            cand.Name,
			DisplayName:     displayName(tc.Origin, tc.Destination, cand.Name),
			Origin:          tc.Origin,
			Destination:     tc.Destination,
			ResilienceScore: score,
			Status:          status,
			IsRecommended:   status == domain.StatusRecommended,
			DisruptionRisk:  disruptionRisk(cand, rec),
			TimeDisplay:     formatDuration(cand.DurationSeconds),
			CostDisplay:     formatCost(cand.DistanceMeters),
			CarbonDisplay:   formatCarbon(cand),
			DistanceDisplay: formatDistance(cand.DistanceMeters),
			OriginCoords:    tc.OriginCoords,
			DestCoords:      tc.DestCoords,
			SubScores: domain.SubScores{
				WeatherRisk: rec.WeatherRiskScore,
				RoadSafety:  rec.RoadSafetyScore,
				SocialRisk:  rec.SocialRiskScore,
				TrafficRisk: rec.TrafficRiskScore,
			},
			Summary:   rec.ShortSummary,
			Reasoning: rec.Reasoning,
		})
	}
	return routes
}

// disruptionRisk buckets a route by its strongest risk signal: social risk
// from the worker record and weather risk from candidate enrichment, which
// arrives either as a category string or as a 0-1 fraction.
func disruptionRisk(cand domain.RouteCandidate, rec ports.ScoreRecord) domain.RiskLevel {
	social := float64(rec.SocialRiskScore)
	category, fraction := weatherRisk(cand)

	if social > 70 || category == "high" || fraction > 0.7 {
		return domain.RiskHigh
	}
	if social > 40 || category == "moderate" || fraction > 0.4 {
		return domain.RiskMedium
	}
	return domain.RiskLow
}

func weatherRisk(cand domain.RouteCandidate) (category string, fraction float64) {
	if cand.Weather == nil || cand.Weather.Risk == nil {
		return "", 0
	}
	risk := cand.Weather.Risk
	if risk.Fraction != nil {
		return "", *risk.Fraction
	}
	return strings.ToLower(strings.TrimSpace(risk.Category)), 0
}

func displayName(origin, destination, routeName string) string {
	base := fmt.Sprintf("%s → %s", origin, destination)
	if routeName == "" {
		return base
	}
	return fmt.Sprintf("%s via %s", base, routeName)
}

// formatDuration renders whole minutes, switching to whole hours at 60.
func formatDuration(seconds float64) string {
	minutes := math.Round(seconds / 60)
	if minutes >= 60 {
		return fmt.Sprintf("%.0f hr", math.Round(minutes/60))
	}
	return fmt.Sprintf("%.0f min", minutes)
}

func formatDistance(meters float64) string {
	return fmt.Sprintf("%.0f km", math.Round(meters/1000))
}

func formatCost(meters float64) string {
	return fmt.Sprintf("₹%.0f", math.Round(meters/1000)*costPerKm)
}

// formatCarbon prefers the worker-computed total and falls back to a
// distance-based estimate.
func formatCarbon(cand domain.RouteCandidate) string {
	if cand.CarbonKg != nil {
		return fmt.Sprintf("%.1f kg CO2", *cand.CarbonKg)
	}
	return fmt.Sprintf("%.1f kg CO2", math.Round(cand.DistanceMeters/1000)*carbonPerKm)
}
