package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"tube-route-service/internal/api/dto"
	"tube-route-service/internal/genetic"
	"tube-route-service/internal/ports"
	"tube-route-service/internal/services"
)

type OptimizeHandler struct {
	Repo     ports.StationRepository
	Provider ports.JourneyTimeProvider
}

// Optimize runs the genetic search for the requested start station and
// parameters. Omitted numeric parameters take the documented API
// defaults before validation; invalid values are rejected, never
// silently replaced.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	start := strings.TrimSpace(req.Start)
	if start == "" {
		writeError(w, r, http.StatusBadRequest, "start is required")
		return
	}

	params := genetic.Params{
		Generations:     req.Generations,
		PopulationSize:  req.PopulationSize,
		Seed:            req.RandomSeed,
		ProtectElites:   req.ProtectElites,
		StagnationLimit: req.StagnationLimit,
	}
	if params.Generations == 0 {
		params.Generations = 100
	}
	if params.PopulationSize == 0 {
		params.PopulationSize = 50
	}
	if req.EliteSize != nil {
		params.EliteSize = *req.EliteSize
	} else {
		params.EliteSize = params.PopulationSize / 5
	}
	if req.MutationRate != nil {
		params.MutationRate = *req.MutationRate
	} else {
		params.MutationRate = 0.01
	}

	svcReq := services.OptimizeRequest{Start: start, Params: params}

	result, err := services.OptimizeRoute(r.Context(), svcReq, h.Repo, h.Provider)
	if err != nil {
		var paramErr *genetic.InvalidParamsError
		if errors.As(err, &paramErr) {
			writeError(w, r, http.StatusBadRequest, paramErr.Error())
			return
		}
		if errors.Is(err, services.ErrUnknownStart) {
			writeError(w, r, http.StatusBadRequest, "start station is not in the station set")
			return
		}

		log.Printf("optimize route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toOptimizeResponse(result))
}

func toOptimizeResponse(result *genetic.Result) dto.OptimizeResponse {
	best := result.Best()
	bestPath := make([]string, 0, len(best.Path))
	for _, s := range best.Path {
		bestPath = append(bestPath, s.Name)
	}

	stats := make([]dto.GenerationStatsResponse, 0, len(result.Stats))
	for g, s := range result.Stats {
		stats = append(stats, dto.GenerationStatsResponse{
			Generation:  g,
			BestMinutes: s.Best,
			Mean:        s.Mean,
			StdDev:      s.StdDev,
		})
	}

	final := make([]dto.RankedRouteResponse, 0, len(result.FinalTable))
	for _, entry := range result.FinalTable {
		path := make([]string, 0, len(entry.Route.Path))
		for _, s := range entry.Route.Path {
			path = append(path, s.Name)
		}
		final = append(final, dto.RankedRouteResponse{
			Path:            path,
			DurationMinutes: entry.Route.Duration,
			Fitness:         entry.Fitness,
			CDF:             entry.CDF,
		})
	}

	return dto.OptimizeResponse{
		BestPath:            bestPath,
		BestDurationMinutes: best.Duration,
		Generations:         result.Generations,
		BestByGeneration:    result.BestByGeneration,
		Stats:               stats,
		FinalPopulation:     final,
		Homogeneity:         genetic.Homogeneity(result.FinalTable),
	}
}
