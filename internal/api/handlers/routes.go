package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/services"
)

// RouteHandler answers point-to-point shortest-path queries over the
// complete travel-time graph. This is the secondary code path; day
// planning goes through the nearest-neighbor route instead.
type RouteHandler struct{}

func (h *RouteHandler) Shortest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ShortestRouteRequest

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

	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)
	if from == "" || to == "" {
		writeError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	points, err := normalizePoints(req.Points)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var lodging *domain.Lodging
	if req.Lodging != nil {
		if p := toGeoPoint(req.Lodging.Coordinates); p.Valid() {
			lodging = &domain.Lodging{Name: req.Lodging.Name, Location: p}
		}
	}

	graph, _, err := services.BuildGraph(lodging, points)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientData) {
			// A graph that cannot exist is a legitimate answer, not a failure.
			writeJSON(w, r, http.StatusOK, dto.ShortestRouteResponse{
				Path:      []string{},
				Algorithm: domain.AlgorithmNone,
			})
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	path, minutes := services.ShortestPath(graph, from, to)
	if math.IsInf(minutes, 1) {
		writeJSON(w, r, http.StatusOK, dto.ShortestRouteResponse{
			Path:      []string{},
			Algorithm: domain.AlgorithmNone,
		})
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ShortestRouteResponse{
		Path:         path,
		TotalMinutes: minutes,
		Algorithm:    domain.AlgorithmDijkstra,
		Reachable:    true,
	})
}
