package main

import (
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/adapters/cache"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/adapters/repositories"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/adapters/route"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/api"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/config"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/metrics"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/platform/db"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/publisher"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, OSRM, Nominatim) behind ports and
// starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := repositories.InitSchema(store); err != nil {
		log.Fatal(err)
	}

	// Caches default to the local SQLite store; DATABASE_URL moves them to
	// Postgres so planner instances share entries, and REDIS_ADDR layers a
	// hot tier in front of the route cache.
	var (
		routeCache   route.RouteCache   = cache.NewSqliteRouteCache(store)
		geocodeCache route.GeocodeCache = cache.NewSqliteGeocodeCache(store)
	)
	if cfg.DatabaseURL != "" {
		pg, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		if err := repositories.InitSchema(pg); err != nil {
			log.Fatal(err)
		}
		routeCache = cache.NewSQLRouteCache(pg)
		geocodeCache = cache.NewSQLGeocodeCache(pg)
	}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		routeCache = cache.NewRedisRouteCache(client, 24*time.Hour)
	}

	collector := metrics.NewCollector()

	osrm := route.NewOSRMRouteProvider(cfg.OSRMBaseURL, routeCache)
	routes := route.NewFallbackRouteProvider(osrm, cfg.Rules.AvgSpeedKmh, collector)

	nominatim := route.NewNominatimGeocoder(cfg.NominatimBaseURL, geocodeCache)
	geocoder := route.NewFallbackGeocoder(nominatim)

	repo := repositories.NewSqliteTripRepository(store)

	var pub *publisher.NatsPublisher
	if cfg.NatsURL != "" {
		pub, err = publisher.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pub.Close()
	}

	router := api.NewRouter(api.Deps{
		Geocoder:  geocoder,
		Routes:    routes,
		Repo:      repo,
		Rules:     cfg.Rules,
		Metrics:   collector,
		Publisher: pub,
		Store:     store,
	})

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
