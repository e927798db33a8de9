package domain

import (
	"fmt"
	"math"
)

// Immutable geographic point (latitude, longitude).
// A zero value is a valid coordinate (Null Island); callers that need to
// represent "no location" should use Absent().
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Absent returns the sentinel for a missing or unparseable coordinate.
// It always fails Valid().
func Absent() GeoPoint {
	return GeoPoint{Lat: math.NaN(), Lon: math.NaN()}
}

// Valid reports whether the point holds a usable coordinate.
// NaN or out-of-range values are treated as absent, never clamped.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Same reports whether two points hold the identical coordinate.
// Used to suppress zero-length return legs when a stop sits exactly at the lodging.
func (p GeoPoint) Same(o GeoPoint) bool {
	return p.Valid() && o.Valid() && p.Lat == o.Lat && p.Lon == o.Lon
}

// Return the point as [lon, lat] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lon, p.Lat} }

// PairKey builds a deterministic cache key for an ordered coordinate pair.
// Coordinates are rounded to 5 decimals (~1 m) so near-identical requests
// share cache entries.
func PairKey(from, to GeoPoint) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", from.Lat, from.Lon, to.Lat, to.Lon)
}
