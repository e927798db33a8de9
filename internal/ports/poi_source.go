package ports

import (
	"context"

	"trip-route-service/internal/domain"
)

// Port: a boundary for retrieving candidate points of interest.
type POISource interface {
	// Retrieve all stored points of interest in selection order.
	ListPointsOfInterest(ctx context.Context) ([]domain.PointOfInterest, error)
}
