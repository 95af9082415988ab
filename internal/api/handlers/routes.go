package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"resilient-route-service/internal/api/dto"
	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/services"
)

// RouteAnalyzer is the service surface this handler needs; satisfied by
// *services.Analyzer.
type RouteAnalyzer interface {
	AnalyzeRoutes(ctx context.Context, req services.AnalyzeRequest) (*services.AnalysisResult, error)
	RescoreRoutes(ctx context.Context, req services.RescoreRequest) (*services.AnalysisResult, error)
}

type AnalysisHandler struct {
	Analyzer RouteAnalyzer
}

// Analyze handles POST /routes/analyze: the full pipeline from place names
// to scored, persisted routes.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.MaxAlternatives < 0 || req.MaxAlternatives > 10 {
		writeError(w, r, http.StatusBadRequest, "max_alternatives must be between 0 and 10")
		return
	}

	result, err := h.Analyzer.AnalyzeRoutes(r.Context(), services.AnalyzeRequest{
		Origin:          req.Origin,
		Destination:     req.Destination,
		Priorities:      toPriorities(req.Priorities),
		MaxAlternatives: req.MaxAlternatives,
	})
	if err != nil {
		respondAnalysisError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toAnalysisResponse(req.Origin, req.Destination, result))
}

// Rescore handles POST /routes/rescore: re-rank a previously analyzed pair
// under new priorities, from cache.
func (h *AnalysisHandler) Rescore(w http.ResponseWriter, r *http.Request) {
	var req dto.RescoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.Analyzer.RescoreRoutes(r.Context(), services.RescoreRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		Priorities:  toPriorities(req.Priorities),
	})
	if err != nil {
		respondAnalysisError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toAnalysisResponse(req.Origin, req.Destination, result))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// respondAnalysisError maps pipeline error kinds onto HTTP statuses. Error
// text for 5xx responses stays generic; details go to the log.
func respondAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *domain.InputError
	var geocodeErr *domain.GeocodeError
	var cacheMiss *domain.CacheMissError
	var fetchErr *domain.FetchError
	var workerErr *domain.WorkerError
	var outputErr *domain.OutputFormatError

	switch {
	case errors.As(err, &inputErr):
		writeError(w, r, http.StatusBadRequest, inputErr.Error())
	case errors.As(err, &geocodeErr):
		writeError(w, r, http.StatusNotFound, geocodeErr.Error())
	case errors.As(err, &cacheMiss):
		writeError(w, r, http.StatusNotFound, "no prior analysis for this origin/destination; run a full analysis first")
	case errors.As(err, &fetchErr):
		log.Printf("route analysis failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route providers unavailable")
	case errors.As(err, &workerErr):
		log.Printf("route analysis failed: %v diagnostics=%q", err, workerErr.Diagnostics)
		writeError(w, r, http.StatusBadGateway, "scoring worker failed")
	case errors.As(err, &outputErr):
		log.Printf("route analysis failed: %v tail=%q", err, outputErr.Tail)
		writeError(w, r, http.StatusBadGateway, "scoring worker returned unusable output")
	default:
		log.Printf("route analysis failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func toPriorities(p *dto.PrioritiesRequest) domain.PriorityWeights {
	if p == nil {
		return domain.PriorityWeights{}
	}
	return domain.PriorityWeights{
		Time:           p.Time,
		Distance:       p.Distance,
		CarbonEmission: p.CarbonEmission,
		RoadQuality:    p.RoadQuality,
	}
}

func toAnalysisResponse(origin, destination string, result *services.AnalysisResult) dto.AnalysisResponse {
	res := dto.AnalysisResponse{
		Origin:        origin,
		Destination:   destination,
		BestRouteName: result.BestRouteName,
		Routes:        make([]dto.RouteResponse, 0, len(result.Routes)),
	}
	for _, rt := range result.Routes {
		res.Routes = append(res.Routes, dto.RouteResponse{
			ID:              rt.ID,
			Name:            rt.Name,
			DisplayName:     rt.DisplayName,
			ResilienceScore: rt.ResilienceScore,
			Status:          string(rt.Status),
			IsRecommended:   rt.IsRecommended,
			DisruptionRisk:  string(rt.DisruptionRisk),
			Time:            rt.TimeDisplay,
			Cost:            rt.CostDisplay,
			Carbon:          rt.CarbonDisplay,
			Distance:        rt.DistanceDisplay,
			OriginCoords:    dto.CoordinatesResponse{Lat: rt.OriginCoords.Lat, Lon: rt.OriginCoords.Lon},
			DestCoords:      dto.CoordinatesResponse{Lat: rt.DestCoords.Lat, Lon: rt.DestCoords.Lon},
			SubScores: dto.SubScoresResponse{
				WeatherRisk: rt.SubScores.WeatherRisk,
				RoadSafety:  rt.SubScores.RoadSafety,
				SocialRisk:  rt.SubScores.SocialRisk,
				TrafficRisk: rt.SubScores.TrafficRisk,
			},
			Summary:   rt.Summary,
			Reasoning: rt.Reasoning,
		})
	}
	return res
}
