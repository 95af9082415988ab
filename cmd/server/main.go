package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"resilient-route-service/internal/adapters/cache"
	"resilient-route-service/internal/adapters/geocode"
	"resilient-route-service/internal/adapters/repositories"
	"resilient-route-service/internal/adapters/routing"
	"resilient-route-service/internal/adapters/scoring"
	"resilient-route-service/internal/api"
	"resilient-route-service/internal/config"
	"resilient-route-service/internal/platform/db"
	"resilient-route-service/internal/ports"
	"resilient-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Nominatim, OSRM/ORS, the
// scoring worker) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	workerCmd := os.Getenv("WORKER_CMD")
	if strings.TrimSpace(workerCmd) == "" {
		log.Fatal("WORKER_CMD is required")
	}

	port := config.Get("PORT", "8080")
	maxAlternatives := config.GetInt("MAX_ALTERNATIVES", 3)

	ctx := context.Background()

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := repositories.InitSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}

	routeCache, err := buildCache(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer routeCache.Close()

	scorer, err := scoring.NewProcessScorer(workerCmd)
	if err != nil {
		log.Fatal(err)
	}

	geocoder := geocode.NewNominatimGeocoder(
		config.Get("NOMINATIM_URL", ""),
		config.Get("GEOCODE_USER_AGENT", "resilient-route-service/1.0"),
		time.Second,
	)

	runner := services.NewRunner()
	defer runner.Close()

	analyzer := &services.Analyzer{
		Geocoder:        geocoder,
		Provider:        buildProvider(),
		Scorer:          scorer,
		Cache:           routeCache,
		Routes:          repositories.NewSQLRouteRepository(pool),
		Trace:           repositories.NewSQLTraceRepository(pool),
		Runner:          runner,
		MaxAlternatives: maxAlternatives,
	}

	router := api.NewRouter(analyzer)

	// Timeouts allow for geocoding, routing and worker latency end to end.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCache prefers Redis when configured, otherwise falls back to the
// in-process cache (single-instance deployments).
func buildCache(ctx context.Context) (ports.RouteCache, error) {
	addr := os.Getenv("REDIS_ADDR")
	if strings.TrimSpace(addr) == "" {
		log.Println("REDIS_ADDR not set, using in-memory route cache")
		return cache.NewMemoryRouteCache(), nil
	}
	return cache.NewRedisRouteCache(ctx, addr)
}

// buildProvider wires OSRM as the primary routing source with ORS as
// secondary when an API key is configured.
func buildProvider() ports.RouteProvider {
	primary := routing.NewOSRMRouteProvider(config.Get("OSRM_URL", ""))

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Println("ORS_API_KEY not set, running without secondary route provider")
		return routing.NewFallbackProvider(primary, nil)
	}
	secondary := routing.NewORSRouteProvider(config.Get("ORS_URL", ""), orsKey)
	return routing.NewFallbackProvider(primary, secondary)
}
