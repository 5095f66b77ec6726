package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	HostawayAccountID string
	HostawayKey       string
	HostawayBase      string
	HostawayLiveMode  bool
	PlacesKey         string
	PlacesBase        string
	ProviderRPS       int

	// ImportWorkers bounds concurrent writes of the approvals importer.
	ImportWorkers int

	// APIBaseURL is where the dashboard reaches this API; only logged at startup.
	APIBaseURL string
}

// Load reads an optional .env file and then the process environment. Every option has a
// default that allows offline operation without provider credentials.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8000"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		HostawayAccountID: env("HOSTAWAY_ACCOUNT_ID", "61148"),
		HostawayKey:       env("HOSTAWAY_API_KEY", ""),
		HostawayBase:      env("HOSTAWAY_API_BASE", "https://api.hostaway.com/v1"),
		HostawayLiveMode:  truthy(env("HOSTAWAY_LIVE_MODE", "false")),
		PlacesKey:         env("GOOGLE_PLACES_API_KEY", ""),
		PlacesBase:        env("PLACES_API_BASE", "https://maps.googleapis.com/maps/api/place"),
		ProviderRPS:       atoi("PROVIDER_RPS", 5),

		ImportWorkers: atoi("IMPORT_WORKERS", 8),

		APIBaseURL: env("API_BASE_URL", "http://localhost:8000"),
	}
	if c.HostawayKey == "" {
		log.Warn().Msg("HOSTAWAY_API_KEY is empty; live fetches will return no data")
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty; places lookups will return no data")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
