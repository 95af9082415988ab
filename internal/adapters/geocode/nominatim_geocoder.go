package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/ports"
)

const defaultNominatimBase = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves place names against a Nominatim instance.
// Requests against the public instance are throttled to one per second per
// its usage policy; pass a zero minInterval for self-hosted instances.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	throttle  <-chan time.Time
}

func NewNominatimGeocoder(baseURL, userAgent string, minInterval time.Duration) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = defaultNominatimBase
	}
	g := &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	if minInterval > 0 {
		g.throttle = time.Tick(minInterval)
	}
	return g
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up a place name. A well-formed empty result set means the
// place is unknown (found=false, nil error); it is not retried here.
func (g *NominatimGeocoder) Resolve(ctx context.Context, place string) (ports.GeocodeResult, bool, error) {
	if g.throttle != nil {
		select {
		case <-g.throttle:
		case <-ctx.Done():
			return ports.GeocodeResult{}, false, ctx.Err()
		}
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")
	reqURL := g.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode %q: status %d: %s", place, resp.StatusCode, body)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode %q: decode response: %w", place, err)
	}
	if len(results) == 0 {
		return ports.GeocodeResult{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode %q: parse lat %q: %w", place, results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode %q: parse lon %q: %w", place, results[0].Lon, err)
	}

	return ports.GeocodeResult{
		Coords:      domain.Coordinates{Lat: lat, Lon: lon},
		DisplayName: results[0].DisplayName,
	}, true, nil
}
