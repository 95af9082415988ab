package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/twpayne/go-polyline"

	"resilient-route-service/internal/domain"
)

const defaultOSRMBase = "https://router.project-osrm.org"

// OSRMRouteProvider fetches driving routes with alternatives from an OSRM
// instance.
type OSRMRouteProvider struct {
	baseURL string
	client  *http.Client
}

func NewOSRMRouteProvider(baseURL string) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = defaultOSRMBase
	}
	return &OSRMRouteProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Geometry string    `json:"geometry"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Summary string `json:"summary"`
}

func (p *OSRMRouteProvider) FetchRoutes(ctx context.Context, origin, dest domain.Coordinates, maxAlternatives int) ([]domain.RouteCandidate, error) {
	// OSRM wants lon,lat pairs.
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?alternatives=true&overview=full&steps=false",
		p.baseURL, origin.Lon, origin.Lat, dest.Lon, dest.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("osrm fetch: status %d: %s", resp.StatusCode, body)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("osrm fetch: decode response: %w", err)
	}
	if parsed.Code != "Ok" {
		return nil, fmt.Errorf("osrm fetch: code %q", parsed.Code)
	}
	if len(parsed.Routes) == 0 {
		return nil, nil
	}

	candidates := make([]domain.RouteCandidate, 0, len(parsed.Routes))
	for i, r := range parsed.Routes {
		if maxAlternatives > 0 && len(candidates) >= maxAlternatives {
			break
		}
		name := ""
		if len(r.Legs) > 0 {
			name = r.Legs[0].Summary
		}
		if name == "" {
			name = fmt.Sprintf("Route %d", i+1)
		}

		coords, _, err := polyline.DecodeCoords([]byte(r.Geometry))
		if err != nil {
			return nil, fmt.Errorf("osrm fetch: decode geometry for %q: %w", name, err)
		}
		geometry := make([]domain.Coordinates, len(coords))
		for j, c := range coords {
			geometry[j] = domain.Coordinates{Lat: c[0], Lon: c[1]}
		}

		candidates = append(candidates, domain.RouteCandidate{
			Name:            name,
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
			EncodedPolyline: r.Geometry,
			Geometry:        geometry,
		})
	}
	return candidates, nil
}
