package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MONGO_URI", "LACS_DB_NAME", "LACS_HTTP_ADDR", "LACS_LOG_LEVEL", "LACS_CORS_ORIGIN",
		"LACS_LOCATIONS_FILE", "LACS_LOCATIONS_PATHS", "LACS_LOCATIONS_BATCH_SIZE", "LACS_TOKEN_TTL",
		"LACS_S3_BUCKET", "LACS_S3_KEY", "LACS_S3_REGION", "LACS_S3_ENDPOINT",
		"LACS_S3_ACCESS_KEY", "LACS_S3_SECRET_KEY", "LACS_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "lacs", c.DatabaseName)
	assert.Equal(t, 480*time.Minute, c.TokenTTL)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 30, c.LoginRatePerMinute)
	assert.Equal(t, "CPdescarga.xml", c.LocationsFileName)
	assert.Equal(t, []string{".", "data", "..", "../data"}, c.LocationsSearchPaths)
	assert.Equal(t, 1000, c.LocationsBatchSize)
	assert.Empty(t, c.S3Bucket)
	assert.Equal(t, "CPdescarga.xml", c.S3Key)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}

func TestLoadFrom_UsesDefaultsWithoutOverrides(t *testing.T) {
	clearEnv(t)

	c := loadFrom([]string{})
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoadFrom_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, "", "", map[string]any{
		"mongo_uri":     "mongodb://from-json:27017",
		"database_name": "json_db",
		"log_level":     "debug",
	})
	t.Setenv("MONGO_URI", "mongodb://from-env:27017")

	c := loadFrom([]string{"-c", path, "-d", "flag_db"})

	assert.Equal(t, "mongodb://from-env:27017", c.MongoURI, "env beats json")
	assert.Equal(t, "flag_db", c.DatabaseName, "flags beat json")
	assert.Equal(t, "debug", c.LogLevel, "json beats defaults")
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LACS_TOKEN_TTL", "90s")
	t.Setenv("LACS_LOCATIONS_PATHS", "/srv/data, ./data ,")
	t.Setenv("LACS_LOCATIONS_BATCH_SIZE", "250")
	t.Setenv("LACS_S3_BUCKET", "sepomex")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, 90*time.Second, c.TokenTTL)
	assert.Equal(t, []string{"/srv/data", "./data"}, c.LocationsSearchPaths)
	assert.Equal(t, 250, c.LocationsBatchSize)
	assert.Equal(t, "sepomex", c.S3Bucket)
}

func TestParseEnv_InvalidPanics(t *testing.T) {
	clearEnv(t)
	t.Setenv("LACS_TOKEN_TTL", "forever")

	c := &Config{}
	require.Panics(t, func() { parseEnv(c) })
}
