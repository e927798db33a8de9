package ports

import (
	"context"
	"errors"

	"trip-route-service/internal/domain"
)

// ErrUnavailable marks a provider that could not answer (timeout, bad
// status, malformed payload, missing credential). Callers treat it as a
// signal to try the next provider or fall back to local estimation;
// it is never surfaced to the end user.
var ErrUnavailable = errors.New("route provider unavailable")

// Travel distance and duration between two coordinates.
type RouteResult struct {
	DistanceKm      float64
	DurationMinutes float64
}

// Contract for retrieving live travel metrics between two points.
type RouteProvider interface {
	// Return travel metrics from origin to destination.
	// Failures of any kind wrap ErrUnavailable.
	FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) (RouteResult, error)
}

// Optional extension of RouteProvider that supports batched matrix lookups.
type RouteMatrixProvider interface {
	RouteProvider
	// Return an origins x destinations matrix. Cells the provider could not
	// resolve are nil; a partially filled matrix is not an error.
	FetchRouteMatrix(ctx context.Context, origins, destinations []domain.GeoPoint) ([][]*RouteResult, error)
}
