package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed cache mapping station names to resolved ICS ids, so a
// name only goes through stop-point search once. Name keys are
// expected to be consistent (whitespace-normalized) by the caller.
type SqliteStationIDCache struct {
	DB *sql.DB
}

func NewSqliteStationIDCache(db *sql.DB) *SqliteStationIDCache {
	return &SqliteStationIDCache{DB: db}
}

// Fetch cached ids for the given station names.
func (s *SqliteStationIDCache) GetMany(ctx context.Context, names []string) (map[string]string, error) {
	if s.DB == nil {
		return nil, errors.New("station id cache: db is nil")
	}

	if len(names) == 0 {
		return map[string]string{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	ph := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	placeholders := strings.Join(ph, ",")
	args := make([]any, 0, len(uniq))
	for _, n := range uniq {
		args = append(args, n)
	}

	q := fmt.Sprintf(`
	SELECT
        name,
        ics_id
    FROM station_id_cache
    WHERE name IN (%s);
	`, placeholders)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get station id cache: query station_id_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string, len(uniq))
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("get station id cache: scan rows: %w", err)
		}
		out[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get station id cache: row iteration: %w", err)
	}

	return out, nil
}

// Store name -> id mappings in the cache.
func (s *SqliteStationIDCache) PutMany(ctx context.Context, ids map[string]string) error {
	if s.DB == nil {
		return errors.New("station id cache: db is nil")
	}

	if len(ids) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert station id cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO station_id_cache (
        name,
        ics_id
    )
    VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert station id cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for name, id := range ids {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(id) == "" {
			return fmt.Errorf("insert station id cache: empty name or id")
		}

		if _, err := stmt.ExecContext(ctx, name, id); err != nil {
			return fmt.Errorf("insert station id cache name=%q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert station id cache commit: %w", err)
	}

	return nil
}
