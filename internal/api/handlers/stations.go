package handlers

import (
	"log"
	"net/http"

	"tube-route-service/internal/api/dto"
	"tube-route-service/internal/ports"
)

type StationHandler struct {
	Repo ports.StationRepository
}

// List returns the configured station set.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stations, err := h.Repo.ListStations(r.Context())
	if err != nil {
		log.Printf("list stations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStationsResponse{Stations: make([]dto.StationResponse, 0, len(stations))}
	for _, s := range stations {
		res.Stations = append(res.Stations, dto.StationResponse{ID: s.ID, Name: s.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}
