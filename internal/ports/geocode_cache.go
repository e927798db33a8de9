package ports

import (
	"context"

	"trip-route-service/internal/domain"
)

// Port: a boundary for caching address -> coordinate lookups.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}
