package ports

import "context"

// Port: a boundary for caching provider-resolved route segments.
// Keys are ordered coordinate-pair keys built with domain.PairKey.
type SegmentCache interface {
	// Return cached results for the given keys; missing keys are simply
	// absent from the map.
	GetMany(ctx context.Context, keys []string) (map[string]RouteResult, error)
	// Store results keyed by coordinate pair.
	PutMany(ctx context.Context, results map[string]RouteResult) error
}
