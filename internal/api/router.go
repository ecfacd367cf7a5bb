package api

import (
	"net/http"

	"tube-route-service/internal/api/handlers"
	"tube-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay
// unaware of concrete adapters).
func NewRouter(repo ports.StationRepository, provider ports.JourneyTimeProvider) http.Handler {
	mux := http.NewServeMux()

	stationHandler := &handlers.StationHandler{Repo: repo}
	optimizeHandler := &handlers.OptimizeHandler{
		Repo:     repo,
		Provider: provider,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stations", stationHandler.List)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)

	return loggingMiddleware(mux)
}
