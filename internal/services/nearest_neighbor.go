package services

import (
	"math"

	"trip-route-service/internal/domain"
)

// NearestNeighborOrder produces the visiting sequence for one day's stops
// using a greedy nearest-neighbor walk over great-circle distance.
//
// The walk starts at the lodging when one with a usable coordinate is
// present, otherwise at the first valid point in selection order.
// At each step it advances to the closest unvisited point; ties break on
// the lexicographically smaller id so the order is deterministic.
// Points without usable coordinates never enter the candidate pool.
//
// The algorithm minimizes immediate travel at each step. It does not
// attempt global tour optimization: stop counts per day are small and
// predictable ordering matters more than optimality here.
//
// The returned sequence carries no closing leg back to the lodging; the
// assembler appends it (see closedPairs).
//
// The second return value is the algorithm tag for the day:
// none for zero routable stops or a single point with no anchor,
// simple_path for exactly two nodes, nearest_neighbor otherwise.
func NearestNeighborOrder(lodging *domain.Lodging, points []domain.PointOfInterest) ([]domain.Stop, string) {
	valid := make([]domain.Stop, 0, len(points))
	for _, p := range points {
		if p.Location.Valid() {
			valid = append(valid, p.Stop())
		}
	}

	hasLodging := lodging != nil && lodging.Location.Valid()

	if len(valid) == 0 {
		return []domain.Stop{}, domain.AlgorithmNone
	}
	// A single point without an anchor has no edges to draw.
	if !hasLodging && len(valid) == 1 {
		return valid, domain.AlgorithmNone
	}

	var start domain.Stop
	remaining := make([]domain.Stop, 0, len(valid))
	if hasLodging {
		start = lodging.Stop()
		remaining = append(remaining, valid...)
	} else {
		start = valid[0]
		remaining = append(remaining, valid[1:]...)
	}

	order := make([]domain.Stop, 0, len(remaining)+1)
	order = append(order, start)

	current := start
	for len(remaining) > 0 {
		best := -1
		minKm := math.Inf(1)
		for i, cand := range remaining {
			km := DistanceKm(current.Location, cand.Location)
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if km < minKm || (km == minKm && (best == -1 || cand.ID < remaining[best].ID)) {
				minKm = km
				best = i
			}
		}

		next := remaining[best]
		order = append(order, next)
		remaining = append(remaining[:best], remaining[best+1:]...)
		current = next
	}

	algorithm := domain.AlgorithmNearestNeighbor
	if len(order) == 2 {
		algorithm = domain.AlgorithmSimplePath
	}
	return order, algorithm
}

// closedPairs expands a visiting sequence into the ordered (from, to) pairs
// of the day's route. When a lodging anchors the day the loop is always
// closed with a final leg back to it, unless the last stop already sits on
// the identical coordinate (a zero-length duplicate segment helps nobody).
func closedPairs(order []domain.Stop, lodging *domain.Lodging) [][2]domain.Stop {
	pairs := make([][2]domain.Stop, 0, len(order))
	for i := 1; i < len(order); i++ {
		pairs = append(pairs, [2]domain.Stop{order[i-1], order[i]})
	}

	if lodging == nil || !lodging.Location.Valid() || len(order) < 2 {
		return pairs
	}

	last := order[len(order)-1]
	if last.Location.Same(lodging.Location) {
		return pairs
	}
	return append(pairs, [2]domain.Stop{last, lodging.Stop()})
}
