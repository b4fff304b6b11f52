package config

import (
	"flag"
	"strings"
	"time"

	"github.com/lacs/lacsapi/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-m string   MongoDB URI
//	-d string   database name
//	-t int      access token validity, minutes
//	-l string   log level
//	-o string   CORS allowed origin
//	-r int      login requests per minute per client
//	-f string   locations file name
//	-p string   comma-separated locations search paths
//	-n int      locations insert batch size
//	-b string   S3 bucket holding the locations file
//	-k string   S3 object key
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-u string   S3 access key
//	-s string   S3 secret key
//
// args are first filtered with flagx.FilterArgs so subcommand flags of the
// admin CLI do not collide with these.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{
		"-a", "-m", "-d", "-t", "-l", "-o", "-r", "-f", "-p", "-n", "-b", "-k", "-g", "-e", "-u", "-s",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "mongodb uri")
	fs.StringVar(&config.DatabaseName, "d", config.DatabaseName, "database name")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.CORSAllowedOrigin, "o", config.CORSAllowedOrigin, "CORS allowed origin")
	fs.IntVar(&config.LoginRatePerMinute, "r", config.LoginRatePerMinute, "login requests per minute per client")
	fs.StringVar(&config.LocationsFileName, "f", config.LocationsFileName, "locations file name")
	paths := fs.String("p", strings.Join(config.LocationsSearchPaths, ","), "locations search paths")
	fs.IntVar(&config.LocationsBatchSize, "n", config.LocationsBatchSize, "locations insert batch size")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Key, "k", config.S3Key, "S3 object key")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "s", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		case "p":
			config.LocationsSearchPaths = splitList(*paths)
		}
	})
}
