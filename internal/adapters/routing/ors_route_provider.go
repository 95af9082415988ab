package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/twpayne/go-polyline"

	"resilient-route-service/internal/domain"
)

const defaultORSBase = "https://api.openrouteservice.org"

// ORSRouteProvider fetches driving routes from openrouteservice. It is the
// secondary provider behind OSRM and carries retry with backoff because the
// hosted ORS API rate-limits aggressively.
type ORSRouteProvider struct {
	baseURL string
	apiKey  string
	session *http.Client
}

func NewORSRouteProvider(baseURL, apiKey string) *ORSRouteProvider {
	if baseURL == "" {
		baseURL = defaultORSBase
	}
	return &ORSRouteProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		session: &http.Client{Timeout: 20 * time.Second},
	}
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type orsDirectionsRequest struct {
	Coordinates       [][]float64         `json:"coordinates"`
	AlternativeRoutes *orsAlternativeOpts `json:"alternative_routes,omitempty"`
}

type orsAlternativeOpts struct {
	TargetCount int `json:"target_count"`
}

type orsDirectionsResponse struct {
	Routes []orsRoute `json:"routes"`
}

type orsRoute struct {
	Summary  orsSummary `json:"summary"`
	Geometry string     `json:"geometry"`
}

type orsSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

func (p *ORSRouteProvider) FetchRoutes(ctx context.Context, origin, dest domain.Coordinates, maxAlternatives int) ([]domain.RouteCandidate, error) {
	payload := orsDirectionsRequest{
		Coordinates: [][]float64{
			{origin.Lon, origin.Lat},
			{dest.Lon, dest.Lat},
		},
	}
	if maxAlternatives > 1 {
		payload.AlternativeRoutes = &orsAlternativeOpts{TargetCount: maxAlternatives}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ors fetch: marshal request: %w", err)
	}

	url := p.baseURL + "/v2/directions/driving-car/json"
	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	})
	if err != nil {
		return nil, fmt.Errorf("ors fetch: %w", err)
	}
	defer resp.Body.Close()

	var parsed orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ors fetch: decode response: %w", err)
	}

	candidates := make([]domain.RouteCandidate, 0, len(parsed.Routes))
	for i, r := range parsed.Routes {
		if maxAlternatives > 0 && len(candidates) >= maxAlternatives {
			break
		}
		name := fmt.Sprintf("Route %d", i+1)

		coords, _, err := polyline.DecodeCoords([]byte(r.Geometry))
		if err != nil {
			return nil, fmt.Errorf("ors fetch: decode geometry for %q: %w", name, err)
		}
		geometry := make([]domain.Coordinates, len(coords))
		for j, c := range coords {
			geometry[j] = domain.Coordinates{Lat: c[0], Lon: c[1]}
		}

		candidates = append(candidates, domain.RouteCandidate{
			Name:            name,
			DistanceMeters:  r.Summary.Distance,
			DurationSeconds: r.Summary.Duration,
			EncodedPolyline: r.Geometry,
			Geometry:        geometry,
		})
	}
	return candidates, nil
}

func (p *ORSRouteProvider) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (p *ORSRouteProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (p *ORSRouteProvider) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
