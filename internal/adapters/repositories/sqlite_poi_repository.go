package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-route-service/internal/domain"
)

// SQLite-backed implementation of the POISource port.
type SqlitePOIRepository struct{ DB *sql.DB }

func NewSqlitePOIRepository(db *sql.DB) *SqlitePOIRepository {
	return &SqlitePOIRepository{DB: db}
}

// Return all stored points of interest in selection order. Rows without
// coordinates produce points with an absent location; the planner keeps
// them on the roster as unroutable.
func (s *SqlitePOIRepository) ListPointsOfInterest(ctx context.Context) ([]domain.PointOfInterest, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite poi repository: DB is nil")
	}

	query := `
	SELECT
		poi_id,
		name,
		category,
		lat,
		lon,
		visit_hours,
		rating
	FROM pois
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pois: query pois table: %w", err)
	}
	defer rows.Close()

	points := make([]domain.PointOfInterest, 0, 64)
	for rows.Next() {
		var (
			id, name, category string
			lat, lon           sql.NullFloat64
			visitHours         float64
			rating             sql.NullFloat64
		)
		if err := rows.Scan(&id, &name, &category, &lat, &lon, &visitHours, &rating); err != nil {
			return nil, fmt.Errorf("list pois: scan row: %w", err)
		}

		location := domain.Absent()
		if lat.Valid && lon.Valid {
			location = domain.GeoPoint{Lat: lat.Float64, Lon: lon.Float64}
		}

		p := domain.PointOfInterest{
			ID:         id,
			Name:       name,
			Category:   category,
			Location:   location,
			VisitHours: visitHours,
		}
		if rating.Valid {
			r := rating.Float64
			p.Rating = &r
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: row iteration: %w", err)
	}

	return points, nil
}
