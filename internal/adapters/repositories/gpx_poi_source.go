package repositories

import (
	"context"
	"fmt"
	"os"

	"github.com/tkrajina/gpxgo/gpx"

	"trip-route-service/internal/domain"
)

// GPXPOISource implements the POISource port by reading waypoints from a
// GPX file. Useful for seeding a trip from an exported map selection
// without a database.
type GPXPOISource struct {
	Path string
}

func NewGPXPOISource(path string) *GPXPOISource {
	return &GPXPOISource{Path: path}
}

// Return one point of interest per GPX waypoint, in file order.
// Waypoint comments are treated as visit-duration hints ("2-3 hours").
func (s *GPXPOISource) ListPointsOfInterest(ctx context.Context) ([]domain.PointOfInterest, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("list pois: open gpx %q: %w", s.Path, err)
	}
	defer f.Close()

	data, err := gpx.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("list pois: parse gpx %q: %w", s.Path, err)
	}

	points := make([]domain.PointOfInterest, 0, len(data.Waypoints))
	for i, wpt := range data.Waypoints {
		name := wpt.Name
		if name == "" {
			name = fmt.Sprintf("waypoint %d", i+1)
		}

		points = append(points, domain.PointOfInterest{
			ID:         fmt.Sprintf("wpt-%d", i+1),
			Name:       name,
			Category:   wpt.Type,
			Location:   domain.GeoPoint{Lat: wpt.Latitude, Lon: wpt.Longitude},
			VisitHours: domain.ParseVisitHours(wpt.Comment),
		})
	}

	return points, nil
}
