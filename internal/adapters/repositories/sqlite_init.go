package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		ics_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position INTEGER NOT NULL
	);
	`

	createJourneyCacheQuery := `
	CREATE TABLE IF NOT EXISTS journey_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        duration_minutes INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createStationIDCacheQuery := `
	CREATE TABLE IF NOT EXISTS station_id_cache (
        name TEXT PRIMARY KEY,
        ics_id TEXT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_journey_cache_destination_origin
    ON journey_cache(destination, origin);
	`

	statements := []string{
		createStationsQuery,
		createJourneyCacheQuery,
		createStationIDCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
