package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tube-route-service/internal/ports"
)

// SQLite-backed cache for origin->destination journey durations. Keys
// are station ICS ids and are expected to be consistent (already
// normalized) by the caller.
type SqliteJourneyCache struct {
	DB *sql.DB
}

func NewSqliteJourneyCache(db *sql.DB) *SqliteJourneyCache {
	return &SqliteJourneyCache{DB: db}
}

// Fetch cached durations for one origin and multiple destinations.
func (s *SqliteJourneyCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.JourneyResult, error) {
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
	ph := make([]string, 0, len(destinations))
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
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]ports.JourneyResult{}, nil
	}

	placeholders := strings.Join(ph, ",")
	args := make([]any, 0, 1+len(uniq))
	args = append(args, origin)
	for _, d := range uniq {
		args = append(args, d)
	}

	// SQLite does not support binding slices directly in an IN (...)
	// clause. Only the placeholder structure is interpolated; all
	// values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        destination,
        duration_minutes
    FROM journey_cache
    WHERE origin = ?
        AND destination IN (%s);
	`, placeholders)

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteJourneyCache) PutMany(ctx context.Context, origin string, results map[string]ports.JourneyResult) error {
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
	INSERT OR REPLACE INTO journey_cache (
        origin,
        destination,
        duration_minutes
    )
    VALUES (?, ?, ?)
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
