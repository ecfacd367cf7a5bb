package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"tube-route-service/internal/adapters/cache"
	"tube-route-service/internal/adapters/repositories"
	"tube-route-service/internal/adapters/tfl"
	"tube-route-service/internal/api"
	"tube-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, TfL) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	port := getEnv("PORT", "8080")
	travelDate := os.Getenv("TRAVEL_DATE")
	travelTime := os.Getenv("TRAVEL_TIME")
	appKey := os.Getenv("TFL_APP_KEY")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema on startup for local runs; station data comes
	// from dbtool imports.
	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	// Journey durations cache in Redis when configured, otherwise in
	// the embedded SQLite file next to the station data.
	var journeyCache ports.JourneyCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		journeyCache = cache.NewRedisJourneyCache(client, 30*24*time.Hour)
		log.Printf("journey cache backend=redis addr=%s", addr)
	} else {
		journeyCache = cache.NewSqliteJourneyCache(db)
		log.Printf("journey cache backend=sqlite path=%s", dbPath)
	}

	idCache := cache.NewSqliteStationIDCache(db)
	provider, err := tfl.NewJourneyProvider(appKey, travelDate, travelTime, journeyCache, idCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteStationRepository(db)
	router := api.NewRouter(repo, provider)

	// Timeouts are tuned for cold-cache optimization runs: building a
	// fresh journey matrix means many external API round trips.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
