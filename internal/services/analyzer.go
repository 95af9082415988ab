package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/platform/obs"
	"resilient-route-service/internal/ports"
)

const defaultMaxAlternatives = 3

// Analyzer orchestrates the route analysis pipeline: geocode, fetch, score,
// transform, select, persist, simulate. Rescore replays the scoring half of
// the pipeline from cached enrichment.
type Analyzer struct {
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
	Scorer   ports.RouteScorer
	Cache    ports.RouteCache
	Routes   ports.RecommendedRouteRepository
	Trace    ports.CoveredPointRepository
	Runner   *Runner

	// SimStepDelay overrides the per-point simulation delay; zero uses the
	// default.
	SimStepDelay time.Duration
	// MaxAlternatives caps fetched candidates; zero uses the default.
	MaxAlternatives int
}

type AnalyzeRequest struct {
	Origin      string
	Destination string
	Priorities  domain.PriorityWeights
	// MaxAlternatives overrides the analyzer default for this request when
	// positive.
	MaxAlternatives int
}

type RescoreRequest struct {
	Origin      string
	Destination string
	Priorities  domain.PriorityWeights
}

type AnalysisResult struct {
	Routes        []domain.ScoredRoute
	BestRouteName string
}

// CacheKey normalizes an origin/destination pair into the cache key: both
// sides lowercased with runs of whitespace collapsed to single spaces.
func CacheKey(origin, destination string) string {
	normalize := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return normalize(origin) + "|" + normalize(destination)
}

// AnalyzeRoutes runs the full pipeline for an origin/destination pair and
// caches the enriched candidates for later rescoring.
func (a *Analyzer) AnalyzeRoutes(ctx context.Context, req AnalyzeRequest) (result *AnalysisResult, err error) {
	defer obs.Time(ctx, "analyzer.analyze_routes")(&err)

	if err := validateEndpoints(req.Origin, req.Destination); err != nil {
		return nil, err
	}

	origin, err := a.resolve(ctx, domain.GeocodeOrigin, req.Origin)
	if err != nil {
		return nil, err
	}
	dest, err := a.resolve(ctx, domain.GeocodeDestination, req.Destination)
	if err != nil {
		return nil, err
	}

	maxAlt := req.MaxAlternatives
	if maxAlt <= 0 {
		maxAlt = a.MaxAlternatives
	}
	if maxAlt <= 0 {
		maxAlt = defaultMaxAlternatives
	}
	candidates, err := a.Provider.FetchRoutes(ctx, origin.Coords, dest.Coords, maxAlt)
	if err != nil {
		return nil, fmt.Errorf("analyze routes: %w", err)
	}
	if len(candidates) == 0 {
		return nil, &domain.FetchError{}
	}

	scored, err := a.Scorer.ScoreFull(ctx, ports.FullScoreRequest{
		Candidates:   candidates,
		OriginCoords: origin.Coords,
		DestCoords:   dest.Coords,
		OriginName:   req.Origin,
		DestName:     req.Destination,
		Priorities:   req.Priorities,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze routes: %w", err)
	}

	// The worker returns candidates enriched with weather, road and risk
	// data; keep those for the cache so rescores see the same inputs.
	enriched := scored.Routes
	if len(enriched) == 0 {
		enriched = candidates
	}

	key := CacheKey(req.Origin, req.Destination)
	entry := ports.CacheEntry{
		Origin:       req.Origin,
		Destination:  req.Destination,
		OriginCoords: origin.Coords,
		DestCoords:   dest.Coords,
		Candidates:   enriched,
		AnalyzedAt:   time.Now().UTC(),
	}
	if err := a.Cache.Put(ctx, key, entry); err != nil {
		// A failed cache write degrades rescoring, not this analysis.
		log.Printf("[analyzer] cache put failed key=%q: %v", key, err)
	}

	return a.finish(ctx, enriched, scored.ResilienceScores, TransformContext{
		Origin:       req.Origin,
		Destination:  req.Destination,
		OriginCoords: origin.Coords,
		DestCoords:   dest.Coords,
	})
}

// RescoreRoutes re-runs scoring over the cached candidates of a prior
// analysis with new priority weights. Geocoding and fetching are skipped
// entirely; a missing cache entry is reported as such.
func (a *Analyzer) RescoreRoutes(ctx context.Context, req RescoreRequest) (result *AnalysisResult, err error) {
	defer obs.Time(ctx, "analyzer.rescore_routes")(&err)

	if err := validateEndpoints(req.Origin, req.Destination); err != nil {
		return nil, err
	}

	key := CacheKey(req.Origin, req.Destination)
	entry, found, err := a.Cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("rescore routes: %w", err)
	}
	if !found {
		return nil, &domain.CacheMissError{Key: key}
	}

	scored, err := a.Scorer.Rescore(ctx, ports.RescoreRequest{
		Candidates: entry.Candidates,
		Priorities: req.Priorities,
	})
	if err != nil {
		return nil, fmt.Errorf("rescore routes: %w", err)
	}

	candidates := scored.Routes
	if len(candidates) == 0 {
		candidates = entry.Candidates
	}

	return a.finish(ctx, candidates, scored.ResilienceScores, TransformContext{
		Origin:       entry.Origin,
		Destination:  entry.Destination,
		OriginCoords: entry.OriginCoords,
		DestCoords:   entry.DestCoords,
	})
}

// finish is the shared tail of both modes: transform scores, select the
// best route, and detach persistence plus the traversal simulation. The
// result is complete before the detached work starts; its failures are
// logged by the runner and never surface to the caller.
func (a *Analyzer) finish(_ context.Context, candidates []domain.RouteCandidate, scores ports.ResilienceScores, tc TransformContext) (*AnalysisResult, error) {
	routes := TransformScores(candidates, scores, tc)
	result := &AnalysisResult{Routes: routes, BestRouteName: scores.BestRouteName}

	selected := SelectRecommended(routes)
	if selected == nil {
		log.Printf("[analyzer] no recommended route origin=%q destination=%q", tc.Origin, tc.Destination)
		return result, nil
	}

	best := *selected
	stepDelay := a.SimStepDelay
	a.Runner.Go("persist_and_simulate", func(ctx context.Context) error {
		record, err := BuildRecommendedRoute(best, candidates)
		if err != nil {
			return fmt.Errorf("persist recommended route: %w", err)
		}
		if err := a.Routes.SaveRecommendedRoute(ctx, record); err != nil {
			return fmt.Errorf("persist recommended route: %w", err)
		}
		// Simulation only follows a successful persist.
		return SimulateTraversal(ctx, a.Trace, record, stepDelay)
	})

	return result, nil
}

func (a *Analyzer) resolve(ctx context.Context, side domain.GeocodeSide, place string) (ports.GeocodeResult, error) {
	result, found, err := a.Geocoder.Resolve(ctx, place)
	if err != nil {
		return ports.GeocodeResult{}, &domain.GeocodeError{Side: side, Place: place, Err: err}
	}
	if !found {
		return ports.GeocodeResult{}, &domain.GeocodeError{Side: side, Place: place}
	}
	return result, nil
}

func validateEndpoints(origin, destination string) error {
	if strings.TrimSpace(origin) == "" {
		return &domain.InputError{Field: "origin"}
	}
	if strings.TrimSpace(destination) == "" {
		return &domain.InputError{Field: "destination"}
	}
	return nil
}
