package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the tracking service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - PollInterval: The duration between polls of the order store.
// - TickInterval: The duration of one simulation tick.
// - MaxActive: The maximum number of simulations running at once.
// - RouteProvider: The route provider to use (google, osrm, straight).
// - Geocoder: The geocoding provider used for destination addresses (google, nominatim).
// - Region: The country code used to bias routing and geocoding.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env           string
	Port          int
	PollInterval  time.Duration
	TickInterval  time.Duration
	MaxActive     int
	RouteProvider string
	RouteAPIKey   string // The API key for Google services, shared by routing and geocoding.
	OSRMURL       string
	Geocoder      string
	Region        string
	Database      PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads the dotenv file named by BEACON_DOTENV (if present) and builds
// a Config from the environment. It panics on values that cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load(setDefaultEnv("BEACON_DOTENV", ".env"))

	pollInterval, err := time.ParseDuration(setDefaultEnv("BEACON_INTERVAL", "30s"))
	if err != nil || pollInterval <= 0 {
		panic("failed to parse interval from configuration, must be a positive duration")
	}

	tickInterval, err := time.ParseDuration(setDefaultEnv("BEACON_TICK", "1s"))
	if err != nil || tickInterval <= 0 {
		panic("failed to parse tick from configuration, must be a positive duration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("BEACON_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	maxActive, err := strconv.Atoi(setDefaultEnv("BEACON_MAX_ACTIVE", "50"))
	if err != nil || maxActive < 1 {
		panic("failed to parse max active simulations from configuration, must be a positive integer")
	}

	return &Config{
		Env:           setDefaultEnv("BEACON_ENV", "production"),
		Port:          healthPort,
		PollInterval:  pollInterval,
		TickInterval:  tickInterval,
		MaxActive:     maxActive,
		RouteProvider: setDefaultEnv("BEACON_ROUTE_PROVIDER", "straight"),
		RouteAPIKey:   os.Getenv("BEACON_ROUTE_API_KEY"),
		OSRMURL:       os.Getenv("BEACON_OSRM_URL"),
		Geocoder:      setDefaultEnv("BEACON_GEOCODER", "nominatim"),
		Region:        setDefaultEnv("BEACON_REGION", "cr"),
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
