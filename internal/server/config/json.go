package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userkeeper/internal/flagx"
	"github.com/dmitrijs2005/userkeeper/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Pointer fields distinguish an
// absent key from a zero value so a partial file only overrides what it names.
type JsonConfig struct {
	Port            *int            `json:"port"`
	GRPCHealthAddr  *string         `json:"grpc_health_addr"`
	SecretKey       *string         `json:"secret_key"`
	HashCost        *int            `json:"hash_cost"`
	RateLimitMax    *int            `json:"rate_limit_max"`
	RateLimitWindow *timex.Duration `json:"rate_limit_window"`
	MaxBodyBytes    *int64          `json:"max_body_bytes"`
	LogLevel        *string         `json:"log_level"`
}

// parseJson loads the file named by -c / -config, if any, into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.Port != nil {
		config.Port = *c.Port
	}
	if c.GRPCHealthAddr != nil {
		config.GRPCHealthAddr = *c.GRPCHealthAddr
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.HashCost != nil {
		config.HashCost = *c.HashCost
	}
	if c.RateLimitMax != nil {
		config.RateLimitMax = *c.RateLimitMax
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.MaxBodyBytes != nil {
		config.MaxBodyBytes = *c.MaxBodyBytes
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	return nil
}
