package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"tube-route-service/internal/adapters/cache"
	"tube-route-service/internal/adapters/repositories"
	"tube-route-service/internal/config"
	"tube-route-service/internal/domain"
	"tube-route-service/internal/matrixfile"
	"tube-route-service/internal/platform/db"
	"tube-route-service/internal/ports"
)

// dbtool imports a journey-time matrix CSV into the service's storage:
// stations and the journey cache go into the embedded SQLite file, and
// the journey cache is additionally mirrored into Postgres when
// DATABASE_URL is set (for deployments sharing a cache between
// instances).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()

	matrixPath := os.Getenv("MATRIX_PATH")
	if strings.TrimSpace(matrixPath) == "" {
		latest, err := matrixfile.FindLatest(config.Get("MATRIX_DIR", "station_matrices"))
		if err != nil {
			log.Fatalf("no MATRIX_PATH set and %v", err)
		}
		matrixPath = latest
	}

	log.Printf("Importing station matrix file=%s", matrixPath)
	names, ids, matrix, err := matrixfile.Read(matrixPath)
	if err != nil {
		log.Fatal(err)
	}

	stations := make([]*domain.Station, 0, len(names))
	for i := range names {
		stations = append(stations, domain.NewStation(names[i], ids[i]))
	}
	if err := domain.AssignJourneyTimes(stations, matrix); err != nil {
		log.Fatalf("matrix file is not a valid journey-time matrix: %v", err)
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", dbPath, err)
	}
	defer sqliteDB.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	repo := repositories.NewSqliteStationRepository(sqliteDB)
	if err := repo.SaveStations(ctx, stations); err != nil {
		log.Fatalf("saving stations failed: %v", err)
	}
	log.Printf("Saved %d stations.", len(stations))

	if err := seedJourneyCache(ctx, cache.NewSqliteJourneyCache(sqliteDB), stations, matrix); err != nil {
		log.Fatalf("seeding sqlite journey cache failed: %v", err)
	}
	log.Println("SQLite journey cache seeded.")

	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pool, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		if err := initPGSchema(ctx, pool); err != nil {
			log.Fatalf("postgres schema initialization failed: %v", err)
		}
		if err := seedJourneyCache(ctx, cache.NewPGJourneyCache(pool), stations, matrix); err != nil {
			log.Fatalf("seeding postgres journey cache failed: %v", err)
		}
		log.Println("Postgres journey cache seeded.")
	}
}

func seedJourneyCache(ctx context.Context, jc ports.JourneyCache, stations []*domain.Station, matrix [][]int) error {
	for i, origin := range stations {
		results := make(map[string]ports.JourneyResult, len(stations)-1)
		for j, dest := range stations {
			if i == j {
				continue
			}
			results[dest.ID] = ports.JourneyResult{DurationMinutes: matrix[i][j]}
		}
		if err := jc.PutMany(ctx, origin.ID, results); err != nil {
			return err
		}
	}
	return nil
}

func initPGSchema(ctx context.Context, pool *sql.DB) error {
	_, err := pool.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS journey_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`)
	return err
}
