package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tube-route-service/internal/domain"
)

// SQLite-backed implementation of the StationRepository port. The
// position column preserves the station order of the imported matrix
// so journey-time assignment stays aligned.
type SqliteStationRepository struct{ DB *sql.DB }

func NewSqliteStationRepository(db *sql.DB) *SqliteStationRepository {
	return &SqliteStationRepository{DB: db}
}

// Return all stations stored in the database, in import order, without
// journey times assigned.
func (s *SqliteStationRepository) ListStations(ctx context.Context) ([]*domain.Station, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite station repository: DB is nil")
	}

	query := `
	SELECT
		ics_id,
		name
	FROM stations
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0, 32)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		stations = append(stations, domain.NewStation(name, id))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}

// Replace the stored station set, keeping the given order.
func (s *SqliteStationRepository) SaveStations(ctx context.Context, stations []*domain.Station) error {
	if s.DB == nil {
		return errors.New("sqlite station repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations;`); err != nil {
		return fmt.Errorf("save stations: clear stations table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stations (
		ics_id,
		name,
		position
	)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, st := range stations {
		if strings.TrimSpace(st.ID) == "" || strings.TrimSpace(st.Name) == "" {
			return fmt.Errorf("save stations: station at position %d has empty id or name", i)
		}
		if _, err := stmt.ExecContext(ctx, st.ID, st.Name, i); err != nil {
			return fmt.Errorf("save stations: insert ics_id=%q: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save stations: commit tx: %w", err)
	}

	return nil
}
