package services

import (
	"math"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

const (
	earthRadiusKm = 6371

	// Linear travel model: 2 min/km approximates urban driving at ~30 km/h.
	// This is the authoritative fallback whenever no live provider answers.
	minutesPerKm = 2
)

// DistanceKm returns the great-circle (haversine) distance between two
// points. Symmetric, zero for identical points, side-effect free.
func DistanceKm(a, b domain.GeoPoint) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EstimateTravelMinutes converts a distance into an estimated driving time.
// Monotonically non-decreasing in distance.
func EstimateTravelMinutes(distanceKm float64) float64 {
	return distanceKm * minutesPerKm
}

// EstimateRoute returns locally estimated travel metrics between two points.
func EstimateRoute(origin, destination domain.GeoPoint) ports.RouteResult {
	km := DistanceKm(origin, destination)
	return ports.RouteResult{
		DistanceKm:      km,
		DurationMinutes: EstimateTravelMinutes(km),
	}
}
