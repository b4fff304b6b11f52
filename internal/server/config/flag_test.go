package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:9090", "-m", "mongodb://db", "-d", "hr", "-t", "60", "-l", "warn",
			"-o", "https://app.example", "-r", "5", "-f", "cp.xml", "-p", "/a,/b", "-n", "200",
			"-b", "bucket", "-k", "key.xml", "-g", "us-west-1", "-e", "http://endpoint", "-u", "user", "-s", "pass",
		},
			expected: &Config{
				EndpointAddrHTTP:     "127.0.0.1:9090",
				MongoURI:             "mongodb://db",
				DatabaseName:         "hr",
				TokenTTL:             60 * time.Minute,
				LogLevel:             "warn",
				CORSAllowedOrigin:    "https://app.example",
				LoginRatePerMinute:   5,
				LocationsFileName:    "cp.xml",
				LocationsSearchPaths: []string{"/a", "/b"},
				LocationsBatchSize:   200,
				S3Bucket:             "bucket",
				S3Key:                "key.xml",
				S3Region:             "us-west-1",
				S3BaseEndpoint:       "http://endpoint",
				S3AccessKey:          "user",
				S3SecretKey:          "pass",
			}},
		{name: "unrelated CLI flags are ignored", args: []string{"load-locations", "-force", "-d", "x"},
			expected: &Config{DatabaseName: "x"}},
		{name: "bad int panics", args: []string{"-n", "lots"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config, tt.args) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config, tt.args) })
			}
		})
	}
}

func TestParseFlags_KeepsSubMinuteTTLWhenUnset(t *testing.T) {
	config := &Config{TokenTTL: 90 * time.Second, LocationsSearchPaths: []string{"."}}
	parseFlags(config, []string{"-a", ":1"})

	assert.Equal(t, 90*time.Second, config.TokenTTL)
	assert.Equal(t, []string{"."}, config.LocationsSearchPaths)
}
