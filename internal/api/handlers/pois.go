package handlers

import (
	"log"
	"net/http"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/ports"
)

// POIHandler exposes read-only point-of-interest retrieval endpoints.
type POIHandler struct {
	Source ports.POISource
}

func (h *POIHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	points, err := h.Source.ListPointsOfInterest(r.Context())
	if err != nil {
		log.Printf("list pois failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPointsResponse{
		Points: make([]dto.PointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.Points = append(res.Points, toPointResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}
