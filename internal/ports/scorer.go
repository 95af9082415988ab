package ports

import (
	"context"
	"resilient-route-service/internal/domain"
)

// Input for a full scoring pass: fetched candidates plus endpoint metadata.
// The worker enriches each candidate (weather, road, risk) and scores it.
type FullScoreRequest struct {
	Candidates   []domain.RouteCandidate
	OriginCoords domain.Coordinates
	DestCoords   domain.Coordinates
	OriginName   string
	DestName     string
	Priorities   domain.PriorityWeights
}

// Input for a rescore-only pass: previously enriched candidates and new
// priority weights. No enrichment data is re-fetched.
type RescoreRequest struct {
	Candidates []domain.RouteCandidate
	Priorities domain.PriorityWeights
}

// Per-route score record produced by the worker. All scores are 0-100.
type ScoreRecord struct {
	RouteName              string `json:"routeName"`
	WeatherRiskScore       int    `json:"weatherRiskScore"`
	RoadSafetyScore        int    `json:"roadSafetyScore"`
	SocialRiskScore        int    `json:"socialRiskScore"`
	TrafficRiskScore       int    `json:"trafficRiskScore"`
	OverallResilienceScore int    `json:"overallResilienceScore"`
	ShortSummary           string `json:"shortSummary"`
	Reasoning              string `json:"reasoning"`
}

// Ranking block of the worker output.
type ResilienceScores struct {
	BestRouteName      string        `json:"bestRouteName"`
	ReasonForSelection string        `json:"reasonForSelection,omitempty"`
	RankedRoutes       []string      `json:"rankedRoutes,omitempty"`
	Routes             []ScoreRecord `json:"routes"`
}

// Complete worker output: enriched candidates plus scores.
// In rescore mode Routes may be empty; callers fall back to the cached
// candidates they submitted.
type ScoringResult struct {
	Routes           []domain.RouteCandidate `json:"routes"`
	ResilienceScores ResilienceScores        `json:"resilienceScores"`
}

// Port: a boundary for the external scoring computation, in its two modes.
type RouteScorer interface {
	ScoreFull(ctx context.Context, req FullScoreRequest) (*ScoringResult, error)
	Rescore(ctx context.Context, req RescoreRequest) (*ScoringResult, error)
}
