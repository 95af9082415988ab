package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/ports"
)

func entry(origin, destination string, names ...string) ports.CacheEntry {
	candidates := make([]domain.RouteCandidate, len(names))
	for i, n := range names {
		candidates[i] = domain.RouteCandidate{Name: n, DistanceMeters: 1000}
	}
	return ports.CacheEntry{
		Origin:      origin,
		Destination: destination,
		Candidates:  candidates,
		AnalyzedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func testRouteCache(t *testing.T, c ports.RouteCache) {
	t.Helper()
	ctx := context.Background()

	// Miss before any write.
	_, found, err := c.Get(ctx, "mumbai|jaipur")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("expected miss on empty cache")
	}

	if err := c.Put(ctx, "mumbai|jaipur", entry("Mumbai", "Jaipur", "NH48", "NH52")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := c.Get(ctx, "mumbai|jaipur")
	if err != nil || !found {
		t.Fatalf("get after put: found=%v err=%v", found, err)
	}
	if len(got.Candidates) != 2 || got.Candidates[0].Name != "NH48" {
		t.Fatalf("candidates = %+v", got.Candidates)
	}

	// Overwrite replaces the entry wholesale.
	if err := c.Put(ctx, "mumbai|jaipur", entry("Mumbai", "Jaipur", "NH48-alt")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, found, err = c.Get(ctx, "mumbai|jaipur")
	if err != nil || !found {
		t.Fatalf("get after overwrite: found=%v err=%v", found, err)
	}
	if len(got.Candidates) != 1 || got.Candidates[0].Name != "NH48-alt" {
		t.Fatalf("overwrite not applied: %+v", got.Candidates)
	}

	// Other keys stay independent.
	if err := c.Put(ctx, "delhi|agra", entry("Delhi", "Agra", "YE")); err != nil {
		t.Fatalf("put second key: %v", err)
	}
	_, found, err = c.Get(ctx, "mumbai|jaipur")
	if err != nil || !found {
		t.Fatalf("first key lost: found=%v err=%v", found, err)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, found, err = c.Get(ctx, "mumbai|jaipur")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if found {
		t.Fatal("expected miss after clear")
	}
}

func TestMemoryRouteCache(t *testing.T) {
	c := NewMemoryRouteCache()
	defer c.Close()
	testRouteCache(t, c)
}

func TestRedisRouteCache(t *testing.T) {
	srv := miniredis.RunT(t)

	c, err := NewRedisRouteCache(context.Background(), srv.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	testRouteCache(t, c)
}

func TestRedisRouteCacheConnectFailure(t *testing.T) {
	// Port 1 is reserved and should refuse connections.
	if _, err := NewRedisRouteCache(context.Background(), "127.0.0.1:1"); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestRedisRouteCacheRoundTripsEnrichment(t *testing.T) {
	srv := miniredis.RunT(t)

	c, err := NewRedisRouteCache(context.Background(), srv.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	risk := 0.8
	social := 65.0
	e := entry("Mumbai", "Jaipur", "NH48")
	e.Candidates[0].Weather = &domain.WeatherConditions{
		RainfallMM: 12.5,
		Risk:       &domain.WeatherRisk{Fraction: &risk},
	}
	e.Candidates[0].SocialRisk = &social

	ctx := context.Background()
	if err := c.Put(ctx, "mumbai|jaipur", e); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, found, err := c.Get(ctx, "mumbai|jaipur")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}

	cand := got.Candidates[0]
	if cand.Weather == nil || cand.Weather.Risk == nil || cand.Weather.Risk.Fraction == nil {
		t.Fatalf("weather enrichment lost: %+v", cand.Weather)
	}
	if *cand.Weather.Risk.Fraction != 0.8 {
		t.Fatalf("risk fraction = %v, want 0.8", *cand.Weather.Risk.Fraction)
	}
	if cand.SocialRisk == nil || *cand.SocialRisk != 65.0 {
		t.Fatalf("social risk lost: %+v", cand.SocialRisk)
	}
}
