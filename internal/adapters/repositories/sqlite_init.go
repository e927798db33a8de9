package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"trip-route-service/internal/domain"
)

// Initialize the database schema. The statements are portable across the
// SQLite and Postgres deployments.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPoisQuery := `
	CREATE TABLE IF NOT EXISTS pois (
		poi_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		lat REAL,
		lon REAL,
		visit_hours REAL NOT NULL DEFAULT 2,
		rating REAL,
		position INTEGER NOT NULL
	);
	`

	createSegmentCacheQuery := `
	CREATE TABLE IF NOT EXISTS segment_cache (
        pair_key TEXT PRIMARY KEY,
        distance_km REAL NOT NULL,
        duration_minutes REAL NOT NULL
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL
    );
	`

	for _, q := range []string{createPoisQuery, createSegmentCacheQuery, createGeocodeCacheQuery} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("init schema: exec create: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}

type poiSeed struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	VisitHours float64  `json:"visit_hours"`
	Duration   string   `json:"duration"`
	Rating     *float64 `json:"rating"`
}

// SeedFromJSON loads demo points of interest from a JSON file for local
// runs. Entries without coordinates are stored as-is; the planner reports
// them as unroutable rather than rejecting the seed.
func SeedFromJSON(db *sql.DB, path string) error {
	if db == nil {
		return errors.New("seed pois: DB is nil")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed pois: read %q: %w", path, err)
	}

	var seeds []poiSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed pois: parse %q: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed pois: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO pois (
		poi_id, name, category, lat, lon, visit_hours, rating, position
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed pois: prepare: %w", err)
	}
	defer stmt.Close()

	for i, s := range seeds {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("seed pois: entry %d has empty id", i)
		}

		hours := s.VisitHours
		if hours == 0 {
			hours = domain.ParseVisitHours(s.Duration)
		}

		if _, err := stmt.Exec(s.ID, s.Name, s.Category, s.Lat, s.Lon, hours, s.Rating, i); err != nil {
			return fmt.Errorf("seed pois: insert %q: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed pois: commit: %w", err)
	}

	return nil
}
