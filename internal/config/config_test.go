package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/beacon/internal/config"
	"github.com/stretchr/testify/assert"
)

func noDotenv(t *testing.T) {
	t.Helper()
	t.Setenv("BEACON_DOTENV", filepath.Join(t.TempDir(), "missing.env"))
}

// unsetForTest removes keys for the duration of the test and restores them afterwards.
func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func Test_MustLoadFromEnv(t *testing.T) {
	noDotenv(t)
	t.Setenv("BEACON_ENV", "local")
	t.Setenv("BEACON_INTERVAL", "10m")
	t.Setenv("BEACON_TICK", "500ms")
	t.Setenv("BEACON_ROUTE_PROVIDER", "google")
	t.Setenv("BEACON_ROUTE_API_KEY", "testAPIKey")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 10*time.Minute, cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "google", cfg.RouteProvider)
	assert.Equal(t, "testAPIKey", cfg.RouteAPIKey)
	assert.Equal(t, 50, cfg.MaxActive)
	assert.Equal(t, "nominatim", cfg.Geocoder)
	assert.Equal(t, "cr", cfg.Region)
}

func Test_MustLoadFromDotenv(t *testing.T) {
	defer filet.CleanUp(t)
	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "beacon.env")
	filet.File(t, path, "BEACON_ENV=development\nBEACON_MAX_ACTIVE=7\nBEACON_REGION=pa\nDB_NAME=orders\n")

	unsetForTest(t, "BEACON_ENV", "BEACON_MAX_ACTIVE", "DB_NAME", "BEACON_TICK", "DB_PORT")
	t.Setenv("BEACON_DOTENV", path)
	// godotenv does not override variables that are already set.
	t.Setenv("BEACON_REGION", "cr")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 7, cfg.MaxActive)
	assert.Equal(t, "cr", cfg.Region)
	assert.Equal(t, "orders", cfg.Database.Name)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_IntervalError(t *testing.T) {
	noDotenv(t)

	for _, value := range []string{"error_value", "0s", "-5s"} {
		t.Setenv("BEACON_INTERVAL", value)

		assert.PanicsWithValue(t, "failed to parse interval from configuration, must be a positive duration", func() {
			config.MustLoad()
		}, value)
	}
}

func TestMustLoad_TickError(t *testing.T) {
	noDotenv(t)

	for _, value := range []string{"error_value", "0s", "-1s"} {
		t.Setenv("BEACON_TICK", value)

		assert.PanicsWithValue(t, "failed to parse tick from configuration, must be a positive duration", func() {
			config.MustLoad()
		}, value)
	}
}

func TestMustLoad_PortError(t *testing.T) {
	noDotenv(t)
	t.Setenv("BEACON_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_MaxActiveError(t *testing.T) {
	noDotenv(t)

	for _, value := range []string{"error_value", "0"} {
		t.Setenv("BEACON_MAX_ACTIVE", value)

		assert.PanicsWithValue(t,
			"failed to parse max active simulations from configuration, must be a positive integer",
			func() { config.MustLoad() },
			value,
		)
	}
}
