// Package config loads service configuration from the environment, with a
// local .env file honored for development runs.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

// Config holds the composition-root settings for the planner server.
type Config struct {
	Port   string
	DBPath string

	// DatabaseURL, when set, moves the route/geocode caches to Postgres so
	// multiple planner instances share them. The trip store stays on SQLite.
	DatabaseURL string

	// RedisAddr, when set, layers a Redis route cache in front of the SQL one.
	RedisAddr string

	// NatsURL, when set, enables publishing planned-trip events.
	NatsURL string

	OSRMBaseURL      string
	NominatimBaseURL string

	Rules domain.HOSRules
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	rules, err := RulesFromEnv()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "data/app.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		NatsURL:          os.Getenv("NATS_URL"),
		OSRMBaseURL:      os.Getenv("OSRM_BASE_URL"),
		NominatimBaseURL: os.Getenv("NOMINATIM_BASE_URL"),
		Rules:            rules,
	}, nil
}

// RulesFromEnv starts from the FMCSA defaults and applies any overrides
// present in the environment. The resulting rule set is validated so a bad
// override fails at startup rather than mid-simulation.
func RulesFromEnv() (domain.HOSRules, error) {
	r := domain.DefaultHOSRules()

	overrides := []struct {
		key string
		dst *float64
	}{
		{"HOS_MAX_DRIVING_HOURS", &r.MaxDrivingHours},
		{"HOS_MAX_DUTY_HOURS", &r.MaxDutyHours},
		{"HOS_MIN_REST_HOURS", &r.MinRestHours},
		{"HOS_BREAK_AFTER_HOURS", &r.BreakAfterHours},
		{"HOS_CYCLE_LIMIT_HOURS", &r.CycleLimitHours},
		{"HOS_FUEL_INTERVAL_KM", &r.FuelIntervalKm},
		{"HOS_PICKUP_HOURS", &r.PickupHours},
		{"HOS_DROPOFF_HOURS", &r.DropoffHours},
		{"HOS_FUEL_STOP_HOURS", &r.FuelStopHours},
		{"HOS_REST_BREAK_HOURS", &r.RestBreakHours},
		{"HOS_AVG_SPEED_KMH", &r.AvgSpeedKmh},
		{"HOS_MAX_CHUNK_HOURS", &r.MaxChunkHours},
	}
	for _, o := range overrides {
		raw := os.Getenv(o.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.HOSRules{}, fmt.Errorf("config: parse %s=%q: %w", o.key, raw, err)
		}
		*o.dst = v
	}

	if err := r.Validate(); err != nil {
		return domain.HOSRules{}, fmt.Errorf("config: %w", err)
	}
	return r, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
