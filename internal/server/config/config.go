// Package config handles configuration for the server component and the
// admin CLI: defaults, JSON overlay, environment overlay and command-line
// flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the lacsapi server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - MongoURI / DatabaseName: document store connection.
//   - TokenTTL: lifetime of issued access tokens.
//   - LogLevel: debug, info, warn or error.
//   - CORSAllowedOrigin: value of Access-Control-Allow-Origin.
//   - LoginRatePerMinute: per-client budget on the login endpoints.
//   - LocationsFileName / LocationsSearchPaths: local postal-code dataset discovery.
//   - LocationsBatchSize: documents per insert during a location load.
//   - S3Bucket / S3Key / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     optional remote copy of the dataset; disabled while S3Bucket is empty.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
type Config struct {
	EndpointAddrHTTP     string
	MongoURI             string
	DatabaseName         string
	TokenTTL             time.Duration
	LogLevel             string
	CORSAllowedOrigin    string
	LoginRatePerMinute   int
	LocationsFileName    string
	LocationsSearchPaths []string
	LocationsBatchSize   int
	S3Bucket             string
	S3Key                string
	S3Region             string
	S3BaseEndpoint       string
	S3AccessKey          string
	S3SecretKey          string
	ShutdownTimeout      time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.MongoURI = "mongodb://localhost:27017"
	c.DatabaseName = "lacs"
	c.TokenTTL = 480 * time.Minute
	c.LogLevel = "info"
	c.CORSAllowedOrigin = "http://localhost:3000"
	c.LoginRatePerMinute = 30
	c.LocationsFileName = "CPdescarga.xml"
	c.LocationsSearchPaths = []string{".", "data", "..", "../data"}
	c.LocationsBatchSize = 1000
	c.S3Key = "CPdescarga.xml"
	c.S3Region = "us-east-1"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags. Invalid input panics; configuration is read once at startup.
func LoadConfig() *Config {
	return loadFrom(os.Args[1:])
}

func loadFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
