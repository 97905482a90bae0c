package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/astrochat/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-db string  database driver: postgres or sqlite
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      session validity, minutes
//	-r int      reset token validity, minutes
//	-demo       return reset tokens in API responses
//	-l string   log backend: slog or logrus
//	-m string   gin mode
//
// Only these flags are parsed; os.Args is filtered with flagx.FilterArgs so
// the -c/-config flag and flags of other components do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db", "-d", "-s", "-t", "-r", "-demo", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "db", config.DatabaseDriver, "database driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	resetValidity := fs.Int("r", int(config.ResetTokenValidityDuration.Minutes()), "reset token validity (in minutes)")

	fs.BoolVar(&config.ResetTokenInResponse, "demo", config.ResetTokenInResponse, "return reset tokens in responses")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|logrus)")
	fs.StringVar(&config.GinMode, "m", config.GinMode, "gin mode (debug|release|test)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// minute flags only apply when given, so finer JSON or env values survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
		case "r":
			config.ResetTokenValidityDuration = time.Duration(*resetValidity) * time.Minute
		}
	})
}
