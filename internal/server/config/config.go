// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrMissingSecret is returned by Validate when no signing secret was
// configured. Tokens signed with an empty key could be forged by anyone.
var ErrMissingSecret = errors.New("secret key is not configured")

// Config holds runtime settings for the userkeeper server.
//
// Fields:
//   - Port: TCP port of the HTTP API.
//   - GRPCHealthAddr: bind address of the gRPC health service; empty disables it.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - HashCost: bcrypt work factor.
//   - RateLimitMax / RateLimitWindow: per-IP request budget.
//   - MaxBodyBytes: upper bound for request bodies.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Port            int           `env:"PORT"`
	GRPCHealthAddr  string        `env:"GRPC_HEALTH_ADDR"`
	SecretKey       string        `env:"SECRET_KEY"`
	HashCost        int           `env:"HASH_COST"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES"`
	LogLevel        string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults. There is no
// default secret on purpose.
func (c *Config) LoadDefaults() {
	c.Port = 5000
	c.GRPCHealthAddr = ":50051"
	c.SecretKey = ""
	c.HashCost = 10
	c.RateLimitMax = 100
	c.RateLimitWindow = 15 * time.Minute
	c.MaxBodyBytes = 1 << 20
	c.LogLevel = "info"
}

// HTTPAddr is the listen address for the HTTP API.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate reports the first setting that would keep the server from
// running correctly.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecret
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.HashCost < 4 || c.HashCost > 31 {
		return fmt.Errorf("hash cost %d out of range [4, 31]", c.HashCost)
	}
	if c.RateLimitMax < 1 {
		return fmt.Errorf("rate limit max must be positive, got %d", c.RateLimitMax)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.RateLimitWindow)
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// LoadConfig builds a Config from os.Args and the process environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], nil)
}

// Load applies defaults, then the JSON file named by -c/-config in args,
// then environment variables, then flags from args. A nil environ means the
// process environment. The result is validated.
func Load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
