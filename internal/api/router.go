package api

import (
	"net/http"

	"resilient-route-service/internal/api/handlers"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(analyzer handlers.RouteAnalyzer) http.Handler {
	mux := http.NewServeMux()

	analysisHandler := &handlers.AnalysisHandler{Analyzer: analyzer}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/analyze", analysisHandler.Analyze)
	mux.HandleFunc("/routes/rescore", analysisHandler.Rescore)

	return loggingMiddleware(mux)
}
