package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tube-route-service/internal/platform/obs"
	"tube-route-service/internal/ports"
)

// Postgres-backed cache for origin->destination journey durations,
// used where a shared server-grade store is configured instead of the
// embedded SQLite file.
type PGJourneyCache struct {
	DB *sql.DB
}

func NewPGJourneyCache(db *sql.DB) *PGJourneyCache {
	return &PGJourneyCache{DB: db}
}

// Fetch cached durations for one origin and multiple destinations.
func (s *PGJourneyCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.JourneyResult, err error) {
	defer obs.Time(ctx, "journey.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("journey cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get journey cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]ports.JourneyResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}

	if len(uniq) == 0 {
		return map[string]ports.JourneyResult{}, nil
	}

	q := `
	SELECT destination, duration_minutes
    FROM journey_cache
    WHERE origin = $1
        AND destination = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get journey cache: query journey_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.JourneyResult, len(uniq))
	for rows.Next() {
		var dest string
		var minutes int
		if err := rows.Scan(&dest, &minutes); err != nil {
			return nil, fmt.Errorf("get journey cache: scan rows: %w", err)
		}
		out[dest] = ports.JourneyResult{DurationMinutes: minutes}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get journey cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached durations for a single origin.
func (s *PGJourneyCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.JourneyResult,
) error {
	if s.DB == nil {
		return errors.New("journey cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert journey cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert journey cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO journey_cache (origin, destination, duration_minutes)
    VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET duration_minutes = EXCLUDED.duration_minutes;
	`)
	if err != nil {
		return fmt.Errorf("insert journey cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert journey cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, origin, dest, r.DurationMinutes); err != nil {
			return fmt.Errorf("insert journey cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert journey cache commit: %w", err)
	}

	return nil
}
