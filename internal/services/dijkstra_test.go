package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"trip-route-service/internal/domain"
)

// sparseGraph builds a hand-wired (non-complete) graph to exercise
// multi-hop relaxation, which a complete geographic graph rarely needs.
func sparseGraph() *RouteGraph {
	g := &RouteGraph{
		Order: []string{"a", "b", "c", "d"},
		Stops: map[string]domain.Stop{
			"a": {ID: "a"}, "b": {ID: "b"}, "c": {ID: "c"}, "d": {ID: "d"},
		},
		Adj: map[string][]GraphEdge{
			"a": {{To: "b", Minutes: 1}, {To: "c", Minutes: 5}},
			"b": {{To: "c", Minutes: 1}},
			"c": {{To: "d", Minutes: 1}},
			"d": {},
		},
	}
	return g
}

func TestShortestPathPrefersCheaperMultiHop(t *testing.T) {
	g := sparseGraph()

	path, minutes := ShortestPath(g, "a", "c")
	require.Equal(t, []string{"a", "b", "c"}, path)
	require.Equal(t, 2.0, minutes)

	path, minutes = ShortestPath(g, "a", "d")
	require.Equal(t, []string{"a", "b", "c", "d"}, path)
	require.Equal(t, 3.0, minutes)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := sparseGraph()

	// d has no outgoing edges, so a is unreachable from it.
	path, minutes := ShortestPath(g, "d", "a")
	require.Empty(t, path)
	require.True(t, math.IsInf(minutes, 1))
}

func TestShortestPathUnknownEndpoints(t *testing.T) {
	g := sparseGraph()

	path, minutes := ShortestPath(g, "a", "nope")
	require.Empty(t, path)
	require.True(t, math.IsInf(minutes, 1))

	path, minutes = ShortestPath(g, "nope", "a")
	require.Empty(t, path)
	require.True(t, math.IsInf(minutes, 1))

	path, minutes = ShortestPath(nil, "a", "b")
	require.Empty(t, path)
	require.True(t, math.IsInf(minutes, 1))
}

func TestShortestPathOnCompleteGraph(t *testing.T) {
	lodging := &domain.Lodging{Name: "hotel", Location: domain.GeoPoint{Lat: 0, Lon: 0}}
	points := []domain.PointOfInterest{
		poi("near", 0, 1),
		poi("far", 0, 3),
	}

	g, _, err := BuildGraph(lodging, points)
	require.NoError(t, err)

	// In a complete graph with straight-line weights the direct edge is
	// never worse than a detour, so the path is a single hop.
	path, minutes := ShortestPath(g, domain.LodgingID, "far")
	require.Equal(t, []string{domain.LodgingID, "far"}, path)
	require.InDelta(t, EstimateTravelMinutes(DistanceKm(lodging.Location, points[1].Location)), minutes, 1e-9)
}

func TestShortestPathSameStartAndEnd(t *testing.T) {
	g := sparseGraph()

	path, minutes := ShortestPath(g, "a", "a")
	require.Equal(t, []string{"a"}, path)
	require.Equal(t, 0.0, minutes)
}
