package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trip-route-service/internal/domain"
)

func poi(id string, lat, lon float64) domain.PointOfInterest {
	return domain.PointOfInterest{
		ID:       id,
		Name:     id,
		Location: domain.GeoPoint{Lat: lat, Lon: lon},
	}
}

func TestBuildGraphComplete(t *testing.T) {
	lodging := &domain.Lodging{Name: "hotel", Location: domain.GeoPoint{Lat: 0, Lon: 0}}
	points := []domain.PointOfInterest{
		poi("a", 0, 1),
		poi("b", 0, 2),
		poi("c", 1, 1),
	}

	g, excluded, err := BuildGraph(lodging, points)
	require.NoError(t, err)
	require.Empty(t, excluded)

	require.Equal(t, []string{domain.LodgingID, "a", "b", "c"}, g.Order)
	for _, id := range g.Order {
		require.Len(t, g.Adj[id], len(g.Order)-1, "node %s must connect to every other node", id)
		for _, e := range g.Adj[id] {
			require.NotEqual(t, id, e.To, "self-loops are excluded")
			require.GreaterOrEqual(t, e.DistanceKm, 0.0)
			require.Equal(t, EstimateTravelMinutes(e.DistanceKm), e.Minutes)
		}
	}
}

func TestBuildGraphDeterministic(t *testing.T) {
	points := []domain.PointOfInterest{
		poi("a", 10, 10),
		poi("b", 11, 11),
	}

	g1, _, err := BuildGraph(nil, points)
	require.NoError(t, err)
	g2, _, err := BuildGraph(nil, points)
	require.NoError(t, err)

	require.Equal(t, g1.Order, g2.Order)
	require.Equal(t, g1.Adj, g2.Adj)
}

func TestBuildGraphExcludesInvalidCoordinates(t *testing.T) {
	points := []domain.PointOfInterest{
		poi("a", 0, 1),
		poi("bad-lat", 95, 1),
		poi("b", 0, 2),
		{ID: "absent", Name: "absent", Location: domain.Absent()},
	}

	g, excluded, err := BuildGraph(nil, points)
	require.NoError(t, err)
	require.Equal(t, []string{"bad-lat", "absent"}, excluded)
	require.Equal(t, []string{"a", "b"}, g.Order)
}

func TestBuildGraphExcludesInvalidLodging(t *testing.T) {
	lodging := &domain.Lodging{Name: "hotel", Location: domain.Absent()}
	points := []domain.PointOfInterest{
		poi("a", 0, 1),
		poi("b", 0, 2),
	}

	g, excluded, err := BuildGraph(lodging, points)
	require.NoError(t, err)
	require.Equal(t, []string{domain.LodgingID}, excluded)
	require.Equal(t, []string{"a", "b"}, g.Order)
}

func TestBuildGraphInsufficientData(t *testing.T) {
	_, excluded, err := BuildGraph(nil, []domain.PointOfInterest{
		poi("only", 0, 1),
		poi("bad", 200, 200),
	})
	require.ErrorIs(t, err, ErrInsufficientData)
	require.Equal(t, []string{"bad"}, excluded)

	_, _, err = BuildGraph(nil, nil)
	require.ErrorIs(t, err, ErrInsufficientData)
}
