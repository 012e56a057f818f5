package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, 5000, c.Port)
	assert.Equal(t, ":50051", c.GRPCHealthAddr)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 10, c.HashCost)
	assert.Equal(t, 100, c.RateLimitMax)
	assert.Equal(t, 15*time.Minute, c.RateLimitWindow)
	assert.Equal(t, int64(1<<20), c.MaxBodyBytes)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, ":5000", c.HTTPAddr())
}

func TestLoad_FailsFastWithoutSecret(t *testing.T) {
	_, err := Load(nil, map[string]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSecret))
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	c, err := Load(nil, map[string]string{
		"PORT":              "8081",
		"SECRET_KEY":        "from-env",
		"RATE_LIMIT_WINDOW": "1m",
		"LOG_LEVEL":         "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 8081, c.Port)
	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, time.Minute, c.RateLimitWindow)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 10, c.HashCost, "unset variables keep defaults")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	c, err := Load([]string{"-p", "9000", "-s", "from-flag"}, map[string]string{
		"PORT":       "8081",
		"SECRET_KEY": "from-env",
	})
	require.NoError(t, err)

	assert.Equal(t, 9000, c.Port)
	assert.Equal(t, "from-flag", c.SecretKey)
}

func TestLoad_BadEnvValue(t *testing.T) {
	_, err := Load(nil, map[string]string{"SECRET_KEY": "k", "PORT": "not-a-number"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LoadDefaults()
		c.SecretKey = "k"
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "no secret", mutate: func(c *Config) { c.SecretKey = "" }},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }},
		{name: "port too big", mutate: func(c *Config) { c.Port = 70000 }},
		{name: "cost too low", mutate: func(c *Config) { c.HashCost = 3 }},
		{name: "cost too high", mutate: func(c *Config) { c.HashCost = 32 }},
		{name: "no rate budget", mutate: func(c *Config) { c.RateLimitMax = 0 }},
		{name: "no window", mutate: func(c *Config) { c.RateLimitWindow = 0 }},
		{name: "no body", mutate: func(c *Config) { c.MaxBodyBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}
