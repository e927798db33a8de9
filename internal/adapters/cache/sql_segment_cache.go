package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"
)

// SQLSegmentCache is a Postgres-backed cache for provider-resolved route
// segments, for deployments that share one cache across instances.
type SQLSegmentCache struct {
	DB *sql.DB
}

func NewSQLSegmentCache(db *sql.DB) *SQLSegmentCache {
	return &SQLSegmentCache{DB: db}
}

// Fetch cached segment metrics for the given pair keys.
func (s *SQLSegmentCache) GetMany(ctx context.Context, keys []string) (_ map[string]ports.RouteResult, err error) {
	defer obs.Time(ctx, "segment.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("segment cache: db is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}

	if len(uniq) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	q := `
	SELECT pair_key, distance_km, duration_minutes
    FROM segment_cache
    WHERE pair_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get segment cache: query segment_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.RouteResult, len(uniq))
	for rows.Next() {
		var key string
		var km, minutes float64
		if err := rows.Scan(&key, &km, &minutes); err != nil {
			return nil, fmt.Errorf("get segment cache: scan rows: %w", err)
		}
		out[key] = ports.RouteResult{
			DistanceKm:      km,
			DurationMinutes: minutes,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get segment cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many segment results keyed by coordinate pair.
func (s *SQLSegmentCache) PutMany(ctx context.Context, results map[string]ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("segment cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert segment cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO segment_cache (pair_key, distance_km, duration_minutes)
    VALUES ($1, $2, $3)
	ON CONFLICT (pair_key) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		duration_minutes = EXCLUDED.duration_minutes;
	`)
	if err != nil {
		return fmt.Errorf("insert segment cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, r := range results {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert segment cache: empty pair key")
		}

		if _, err := stmt.ExecContext(ctx, key, r.DistanceKm, r.DurationMinutes); err != nil {
			return fmt.Errorf("insert segment cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert segment cache commit: %w", err)
	}

	return nil
}
