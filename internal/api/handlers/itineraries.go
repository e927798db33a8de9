package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

const dateLayout = "2006-01-02"

type ItineraryHandler struct {
	Planner *services.TripPlanner
	// Optional: resolves lodging supplied as a free-text address.
	Geocoder ports.Geocoder
}

// Create runs the full planning pipeline: normalize the request into
// domain types, schedule points across days, route each day, and return
// the assembled itinerary. Only malformed input yields an error status;
// degraded routes come back with their algorithm and source tags set.
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ItineraryRequest

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

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start_date must be an ISO date (YYYY-MM-DD)")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "end_date must be an ISO date (YYYY-MM-DD)")
		return
	}

	points, err := normalizePoints(req.Points)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tripReq := services.TripRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Points:    points,
		Lodging:   h.resolveLodging(r, req.Lodging),
	}

	itinerary, err := h.Planner.PlanTrip(r.Context(), tripReq)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			writeError(w, r, http.StatusBadRequest, "start_date must not be after end_date")
			return
		}
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(itinerary))
}

// normalizePoints converts request points into canonical domain types.
// All coordinate-shape handling happens here; the core engine never
// branches on shape again.
func normalizePoints(in []dto.PointRequest) ([]domain.PointOfInterest, error) {
	points := make([]domain.PointOfInterest, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, p := range in {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("points[%d]: id is required", i)
		}
		if id == domain.LodgingID {
			return nil, fmt.Errorf("points[%d]: id %q is reserved", i, domain.LodgingID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("points[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}

		points = append(points, domain.PointOfInterest{
			ID:         id,
			Name:       p.Name,
			Category:   p.Category,
			Location:   toGeoPoint(p.Coordinates),
			VisitHours: domain.ParseVisitHours(p.Duration),
			Rating:     p.Rating,
		})
	}
	return points, nil
}

// toGeoPoint interprets a [lat, lng] pair; anything else is an absent
// location, detectable downstream but never clamped or guessed.
func toGeoPoint(coords []float64) domain.GeoPoint {
	if len(coords) != 2 {
		return domain.Absent()
	}
	p := domain.GeoPoint{Lat: coords[0], Lon: coords[1]}
	if !p.Valid() {
		return domain.Absent()
	}
	return p
}

// resolveLodging builds the trip's lodging anchor from coordinates, or
// geocodes the address when only text was supplied. A failed lookup
// leaves lodging absent: the trip plans as an open path instead of
// failing outright.
func (h *ItineraryHandler) resolveLodging(r *http.Request, in *dto.LodgingRequest) *domain.Lodging {
	if in == nil {
		return nil
	}

	if p := toGeoPoint(in.Coordinates); p.Valid() {
		return &domain.Lodging{Name: in.Name, Location: p}
	}

	address := strings.TrimSpace(in.Address)
	if address == "" || h.Geocoder == nil {
		return nil
	}

	p, err := h.Geocoder.Geocode(r.Context(), address)
	if err != nil {
		log.Printf("geocode lodging failed: %v", err)
		return nil
	}
	return &domain.Lodging{Name: in.Name, Location: p}
}

func toItineraryResponse(it *domain.Itinerary) dto.ItineraryResponse {
	res := dto.ItineraryResponse{
		Days:                   make([]dto.DayPlanResponse, 0, len(it.Days)),
		Roster:                 make([]dto.PointStatusResponse, 0, len(it.Roster)),
		TotalDistanceKm:        it.TotalDistanceKm,
		TotalTravelMinutes:     it.TotalTravelMinutes,
		TotalAttractionMinutes: it.TotalAttractionMinutes,
		Categories:             it.Categories,
		Advisories:             it.Advisories,
	}

	for _, day := range it.Days {
		d := dto.DayPlanResponse{
			Date:               day.Date.Format(dateLayout),
			Points:             make([]dto.PointResponse, 0, len(day.Points)),
			LodgingID:          day.LodgingID,
			MealSlot:           day.MealSlot,
			WindowStartHour:    day.WindowStartHour,
			WindowEndHour:      day.WindowEndHour,
			Route:              make([]dto.SegmentResponse, 0, len(day.Route)),
			TotalDistanceKm:    day.TotalDistanceKm,
			TotalTravelMinutes: day.TotalTravelMinutes,
			Algorithm:          day.Algorithm,
			Load:               day.Load,
			Efficiency:         day.Efficiency,
		}
		for _, p := range day.Points {
			d.Points = append(d.Points, toPointResponse(p))
		}
		for _, s := range day.Route {
			d.Route = append(d.Route, dto.SegmentResponse{
				From: toStopResponse(s.From),
				To:   toStopResponse(s.To),
				Route: dto.SegmentRouteResponse{
					Distance:     s.DistanceKm,
					Duration:     s.DurationMinutes,
					Instructions: []string{},
				},
				Source: s.Source,
			})
		}
		res.Days = append(res.Days, d)
	}

	for _, p := range it.Roster {
		res.Roster = append(res.Roster, dto.PointStatusResponse{ID: p.ID, Name: p.Name, Routed: p.Routed})
	}

	return res
}

func toStopResponse(s domain.Stop) dto.StopResponse {
	return dto.StopResponse{ID: s.ID, Name: s.Name, Coordinates: coordsOf(s.Location)}
}

func toPointResponse(p domain.PointOfInterest) dto.PointResponse {
	return dto.PointResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Coordinates: coordsOf(p.Location),
		VisitHours:  p.VisitHours,
		Rating:      p.Rating,
	}
}

// coordsOf exposes coordinates as [lat, lng]; absent locations serialize
// as an empty array rather than a fabricated pair.
func coordsOf(p domain.GeoPoint) []float64 {
	if !p.Valid() {
		return []float64{}
	}
	return []float64{p.Lat, p.Lon}
}
