package config

import (
	"encoding/json"
	"os"

	"github.com/lacs/lacsapi/internal/flagx"
	"github.com/lacs/lacsapi/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "480m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP     string         `json:"endpoint_addr_http"`
	MongoURI             string         `json:"mongo_uri"`
	DatabaseName         string         `json:"database_name"`
	TokenTTL             timex.Duration `json:"token_ttl"`
	LogLevel             string         `json:"log_level"`
	CORSAllowedOrigin    string         `json:"cors_allowed_origin"`
	LoginRatePerMinute   int            `json:"login_rate_per_minute"`
	LocationsFileName    string         `json:"locations_file_name"`
	LocationsSearchPaths []string       `json:"locations_search_paths"`
	LocationsBatchSize   int            `json:"locations_batch_size"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Key                string         `json:"s3_key"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	S3AccessKey          string         `json:"s3_access_key"`
	S3SecretKey          string         `json:"s3_secret_key"`
	ShutdownTimeout      timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config (or
// $LACS_CONFIG). Keys absent from the file keep their current value.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.DatabaseName, c.DatabaseName)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.CORSAllowedOrigin, c.CORSAllowedOrigin)
	setString(&config.LocationsFileName, c.LocationsFileName)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Key, c.S3Key)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)

	if c.TokenTTL.Duration > 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LoginRatePerMinute > 0 {
		config.LoginRatePerMinute = c.LoginRatePerMinute
	}
	if c.LocationsBatchSize > 0 {
		config.LocationsBatchSize = c.LocationsBatchSize
	}
	if len(c.LocationsSearchPaths) > 0 {
		config.LocationsSearchPaths = c.LocationsSearchPaths
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
