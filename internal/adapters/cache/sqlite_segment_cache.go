package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-route-service/internal/ports"
)

// SQLite backed cache for provider-resolved route segments, keyed by the
// ordered coordinate-pair key. Keys are expected to be consistent
// (built with domain.PairKey) by the caller.
type SqliteSegmentCache struct {
	DB *sql.DB
}

func NewSqliteSegmentCache(db *sql.DB) *SqliteSegmentCache {
	return &SqliteSegmentCache{DB: db}
}

// Fetch cached segment metrics for the given pair keys.
func (s *SqliteSegmentCache) GetMany(ctx context.Context, keys []string) (map[string]ports.RouteResult, error) {
	if s.DB == nil {
		return nil, errors.New("segment cache: db is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	ph := make([]string, 0, len(keys))
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
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	placeholders := strings.Join(ph, ",")
	args := make([]any, 0, len(uniq))
	for _, k := range uniq {
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        pair_key,
        distance_km,
        duration_minutes
    FROM segment_cache
    WHERE pair_key IN (%s);
	`, placeholders)

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteSegmentCache) PutMany(ctx context.Context, results map[string]ports.RouteResult) error {
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
	INSERT OR REPLACE INTO segment_cache (
        pair_key,
        distance_km,
        duration_minutes
    )
    VALUES (?, ?, ?);
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
