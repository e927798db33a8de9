package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// TripRequest carries everything one planning call needs. Per-point
// preferred days and preference hints are advisory upstream concerns and
// do not appear here; correctness never depends on them.
type TripRequest struct {
	StartDate time.Time
	EndDate   time.Time
	Points    []domain.PointOfInterest
	Lodging   *domain.Lodging
}

// TripPlanner turns a selection of points plus trip dates into a full
// itinerary. It is stateless per call and safe for concurrent use: each
// call owns its own graph and day plans.
//
// Providers are tried in order for every segment; the first answer wins.
// Exhausting the list (or having none configured) falls back to the local
// great-circle estimator, so planning always produces something renderable.
type TripPlanner struct {
	Providers   []ports.RouteProvider
	Cache       ports.SegmentCache
	MaxInFlight int
	DayTimeout  time.Duration
}

const (
	defaultMaxInFlight = 5
	defaultDayTimeout  = 15 * time.Second
)

// PlanTrip schedules points across days and computes each day's round-trip
// route. Only a malformed date range is a hard failure; unusable
// coordinates and provider outages degrade per the segment source and
// algorithm tags.
//
// Day routes are independent of each other and computed concurrently.
func (p *TripPlanner) PlanTrip(ctx context.Context, req TripRequest) (*domain.Itinerary, error) {
	days, err := scheduleDays(req)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	roster := make([]domain.PointStatus, 0, len(req.Points))
	for _, pt := range req.Points {
		roster = append(roster, domain.PointStatus{
			ID:     pt.ID,
			Name:   pt.Name,
			Routed: pt.Location.Valid(),
		})
	}

	var wg sync.WaitGroup
	for i := range days {
		wg.Add(1)
		go func(day *domain.DayPlan) {
			defer wg.Done()
			p.routeDay(ctx, day, req.Lodging)
		}(&days[i])
	}
	wg.Wait()

	return BuildItinerary(days, roster), nil
}

// routeDay orders one day's bucket and resolves its segments under the
// day's timeout. On deadline expiry already-resolved provider
// segments are kept and the rest fall back to the estimator.
func (p *TripPlanner) routeDay(ctx context.Context, day *domain.DayPlan, lodging *domain.Lodging) {
	timeout := p.DayTimeout
	if timeout <= 0 {
		timeout = defaultDayTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	order, algorithm := NearestNeighborOrder(lodging, day.Points)
	pairs := closedPairs(order, lodging)

	day.Algorithm = algorithm
	day.Route = p.resolveSegments(ctx, pairs)
	for _, s := range day.Route {
		day.TotalDistanceKm += s.DistanceKm
		day.TotalTravelMinutes += s.DurationMinutes
	}
}

type segmentResult struct {
	idx    int
	result ports.RouteResult
	fresh  bool
}

// resolveSegments turns ordered stop pairs into route segments.
// Cached provider answers are used first; remaining pairs go through a
// matrix-capable provider in one batched call when the chain has one, then
// fan out per pair with bounded concurrency; anything still unresolved is
// estimated locally. The output preserves pair order.
func (p *TripPlanner) resolveSegments(ctx context.Context, pairs [][2]domain.Stop) []domain.RouteSegment {
	segments := make([]domain.RouteSegment, len(pairs))
	if len(pairs) == 0 {
		return segments
	}

	keys := make([]string, len(pairs))
	for i, pair := range pairs {
		keys[i] = domain.PairKey(pair[0].Location, pair[1].Location)
	}

	cached := map[string]ports.RouteResult{}
	if p.Cache != nil {
		hits, err := p.Cache.GetMany(ctx, keys)
		if err != nil {
			// A broken cache must not break planning.
			log.Printf("op=segment.cache.get err=%v", err)
		} else {
			cached = hits
		}
	}

	resolved := make(map[int]segmentResult, len(pairs))
	misses := make([]int, 0, len(pairs))
	for i := range pairs {
		if r, ok := cached[keys[i]]; ok {
			resolved[i] = segmentResult{idx: i, result: r}
			continue
		}
		misses = append(misses, i)
	}

	misses = p.resolveByMatrix(ctx, pairs, misses, resolved)

	maxInFlight := p.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	sem := make(chan struct{}, maxInFlight)
	resultsCh := make(chan segmentResult, len(misses))

	var wg sync.WaitGroup
	for _, i := range misses {
		wg.Add(1)
		go func(idx int, from, to domain.GeoPoint) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			for _, provider := range p.Providers {
				r, err := provider.FetchRoute(ctx, from, to)
				if err == nil {
					resultsCh <- segmentResult{idx: idx, result: r, fresh: true}
					return
				}
			}
			resultsCh <- segmentResult{idx: idx, result: EstimateRoute(from, to)}
		}(i, pairs[i][0].Location, pairs[i][1].Location)
	}

	wg.Wait()
	close(resultsCh)

	for r := range resultsCh {
		resolved[r.idx] = r
	}

	fresh := make(map[string]ports.RouteResult)
	for i, pair := range pairs {
		r := resolved[i]
		source := domain.SourceEstimate
		if r.fresh {
			source = domain.SourceProvider
			fresh[keys[i]] = r.result
		}
		if _, ok := cached[keys[i]]; ok {
			// Cache entries originate from earlier provider answers.
			source = domain.SourceProvider
		}
		segments[i] = domain.RouteSegment{
			From:            pair[0],
			To:              pair[1],
			DistanceKm:      r.result.DistanceKm,
			DurationMinutes: r.result.DurationMinutes,
			Source:          source,
		}
	}

	if p.Cache != nil && len(fresh) > 0 {
		if err := p.Cache.PutMany(ctx, fresh); err != nil {
			log.Printf("op=segment.cache.put err=%v", err)
		}
	}

	return segments
}

// resolveByMatrix answers the missing legs in one batched call when the
// provider chain has a matrix-capable member. The k-th origin is paired
// with the k-th destination, so only the matrix diagonal is consumed.
// Cells the provider could not fill stay unresolved and fall through to
// per-pair resolution, as does the whole batch when the call fails.
func (p *TripPlanner) resolveByMatrix(ctx context.Context, pairs [][2]domain.Stop, misses []int, resolved map[int]segmentResult) []int {
	if len(misses) < 2 {
		return misses
	}

	var mp ports.RouteMatrixProvider
	for _, provider := range p.Providers {
		if m, ok := provider.(ports.RouteMatrixProvider); ok {
			mp = m
			break
		}
	}
	if mp == nil {
		return misses
	}

	origins := make([]domain.GeoPoint, len(misses))
	destinations := make([]domain.GeoPoint, len(misses))
	for k, idx := range misses {
		origins[k] = pairs[idx][0].Location
		destinations[k] = pairs[idx][1].Location
	}

	matrix, err := mp.FetchRouteMatrix(ctx, origins, destinations)
	if err != nil {
		log.Printf("op=segment.matrix err=%v", err)
		return misses
	}
	if len(matrix) != len(misses) {
		log.Printf("op=segment.matrix err=unexpected row count %d", len(matrix))
		return misses
	}

	remaining := make([]int, 0, len(misses))
	for k, idx := range misses {
		if k >= len(matrix[k]) || matrix[k][k] == nil {
			remaining = append(remaining, idx)
			continue
		}
		resolved[idx] = segmentResult{idx: idx, result: *matrix[k][k], fresh: true}
	}
	return remaining
}
