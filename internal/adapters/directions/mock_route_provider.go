package directions

import (
	"context"
	"fmt"
	"strings"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// normalize collapses whitespace so address-derived cache keys stay
// consistent regardless of caller formatting.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type MockLeg struct {
	From, To domain.GeoPoint
	Km       float64
	Minutes  float64
}

// MockRouteProvider serves fixed pair metrics for tests. Unknown pairs
// report unavailability exactly like a real provider outage would.
type MockRouteProvider struct {
	m map[string]ports.RouteResult
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		m[domain.PairKey(l.From, l.To)] = ports.RouteResult{DistanceKm: l.Km, DurationMinutes: l.Minutes}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) (ports.RouteResult, error) {
	r, ok := p.m[domain.PairKey(origin, destination)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing leg %s: %w", domain.PairKey(origin, destination), ports.ErrUnavailable)
	}

	return r, nil
}
