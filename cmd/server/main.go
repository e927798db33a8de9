package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/adapters/directions"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/api"
	"trip-route-service/internal/platform/db"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, Postgres, ORS) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/pois.json")
	port := getEnv("PORT", "8080")
	cacheBackend := getEnv("CACHE_BACKEND", "sqlite")

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}

	// GPX seeds are read directly; JSON seeds load into SQLite on startup
	// for local runs.
	var source ports.POISource
	if strings.HasSuffix(strings.ToLower(seedPath), ".gpx") {
		source = repositories.NewGPXPOISource(seedPath)
	} else {
		if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
			log.Fatal(err)
		}
		source = repositories.NewSqlitePOIRepository(sqliteDB)
	}

	segmentCache, err := newSegmentCache(cacheBackend, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}

	// Absence of the ORS credential is not fatal: planning falls back to
	// the local great-circle estimator for every segment.
	var providers []ports.RouteProvider
	var geocoder ports.Geocoder
	if key := strings.TrimSpace(os.Getenv("ORS_API_KEY")); key != "" {
		geocodeCache := cache.NewSqliteGeocodeCache(sqliteDB)
		ors, err := directions.NewORSRouteProvider(directions.Config{
			APIKey:  key,
			BaseURL: os.Getenv("ORS_BASE_URL"),
			Profile: os.Getenv("ORS_PROFILE"),
		}, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		providers = append(providers, ors)
		geocoder = ors
	} else {
		log.Println("ORS_API_KEY not set; using local travel estimates only")
	}

	planner := &services.TripPlanner{
		Providers:   providers,
		Cache:       segmentCache,
		MaxInFlight: getEnvInt("PROVIDER_MAX_IN_FLIGHT", 5),
		DayTimeout:  time.Duration(getEnvInt("DAY_TIMEOUT_SECONDS", 15)) * time.Second,
	}

	router := api.NewRouter(planner, source, geocoder)

	// Timeouts are tuned for cold-cache planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func newSegmentCache(backend string, sqliteDB *sql.DB) (ports.SegmentCache, error) {
	switch backend {
	case "sqlite":
		return cache.NewSqliteSegmentCache(sqliteDB), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
		ttl := time.Duration(getEnvInt("SEGMENT_TTL_HOURS", 24)) * time.Hour
		return cache.NewRedisSegmentCache(client, ttl), nil
	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, fmt.Errorf("CACHE_BACKEND=postgres requires DATABASE_URL")
		}
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		return cache.NewSQLSegmentCache(pg), nil
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", backend)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
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
