package api

import (
	"net/http"

	"trip-route-service/internal/api/handlers"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.TripPlanner, source ports.POISource, geocoder ports.Geocoder) http.Handler {
	mux := http.NewServeMux()

	poiHandler := &handlers.POIHandler{Source: source}
	itineraryHandler := &handlers.ItineraryHandler{
		Planner:  planner,
		Geocoder: geocoder,
	}
	routeHandler := &handlers.RouteHandler{}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/pois", poiHandler.List)
	mux.HandleFunc("/itineraries", itineraryHandler.Create)
	mux.HandleFunc("/routes/shortest", routeHandler.Shortest)

	return loggingMiddleware(mux)
}
