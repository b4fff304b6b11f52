package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays values from the process environment. MONGO_URI is kept
// unprefixed for compatibility with existing deployments.
func parseEnv(config *Config) {
	setString(&config.MongoURI, os.Getenv("MONGO_URI"))
	setString(&config.DatabaseName, os.Getenv("LACS_DB_NAME"))
	setString(&config.EndpointAddrHTTP, os.Getenv("LACS_HTTP_ADDR"))
	setString(&config.LogLevel, os.Getenv("LACS_LOG_LEVEL"))
	setString(&config.CORSAllowedOrigin, os.Getenv("LACS_CORS_ORIGIN"))
	setString(&config.LocationsFileName, os.Getenv("LACS_LOCATIONS_FILE"))
	setString(&config.S3Bucket, os.Getenv("LACS_S3_BUCKET"))
	setString(&config.S3Key, os.Getenv("LACS_S3_KEY"))
	setString(&config.S3Region, os.Getenv("LACS_S3_REGION"))
	setString(&config.S3BaseEndpoint, os.Getenv("LACS_S3_ENDPOINT"))
	setString(&config.S3AccessKey, os.Getenv("LACS_S3_ACCESS_KEY"))
	setString(&config.S3SecretKey, os.Getenv("LACS_S3_SECRET_KEY"))

	if v := os.Getenv("LACS_LOCATIONS_PATHS"); v != "" {
		config.LocationsSearchPaths = splitList(v)
	}
	if v := os.Getenv("LACS_TOKEN_TTL"); v != "" {
		config.TokenTTL = mustDuration("LACS_TOKEN_TTL", v)
	}
	if v := os.Getenv("LACS_LOCATIONS_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("LACS_LOCATIONS_BATCH_SIZE: %w", err))
		}
		config.LocationsBatchSize = n
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
