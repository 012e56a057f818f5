package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-p int      HTTP port
//	-g string   gRPC health bind address ("" disables)
//	-s string   JWT HMAC secret key
//	-k int      bcrypt cost
//	-m int      requests allowed per rate limit window
//	-w int      rate limit window, minutes
//	-b int      max request body, bytes
//	-l string   log level
//
// Unknown flags are filtered out first so the JSON loader's -c does not
// collide with these.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-p", "-g", "-s", "-k", "-m", "-w", "-b", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&config.Port, "p", config.Port, "HTTP port")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.HashCost, "k", config.HashCost, "bcrypt cost")
	fs.IntVar(&config.RateLimitMax, "m", config.RateLimitMax, "requests per rate limit window")
	window := fs.Int("w", int(config.RateLimitWindow.Minutes()), "rate limit window (in minutes)")
	fs.Int64Var(&config.MaxBodyBytes, "b", config.MaxBodyBytes, "max request body size (bytes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "w" {
			config.RateLimitWindow = time.Duration(*window) * time.Minute
		}
	})
	return nil
}
