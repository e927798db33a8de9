package ports

import (
	"context"

	"trip-route-service/internal/domain"
)

// Port: resolve a free-text address into a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}
