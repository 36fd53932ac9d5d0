package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads defaults without config file", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.HTTPPort)
		assert.Equal(t, 9091, cfg.Server.MetricsPort)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)

		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, "paper_metadata", cfg.Metrics.Namespace)

		assert.Equal(t, "https://api.openalex.org", cfg.OpenAlex.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.OpenAlex.Timeout)
		assert.Equal(t, 10.0, cfg.OpenAlex.RateLimit)
		assert.Equal(t, 10, cfg.OpenAlex.BurstSize)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("PAPERMETA_SERVER_HTTP_PORT", "9999")
		t.Setenv("PAPERMETA_LOGGING_LEVEL", "debug")
		t.Setenv("PAPERMETA_OPENALEX_EMAIL", "ops@helixir.dev")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9999, cfg.Server.HTTPPort)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "ops@helixir.dev", cfg.OpenAlex.Email)
	})

	t.Run("invalid environment value fails validation", func(t *testing.T) {
		t.Setenv("PAPERMETA_SERVER_HTTP_PORT", "70000")

		cfg, err := Load()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "http_port")
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Host:        "0.0.0.0",
				HTTPPort:    8080,
				MetricsPort: 9091,
			},
			Metrics: MetricsConfig{
				Enabled:   true,
				Path:      "/metrics",
				Namespace: "paper_metadata",
			},
			OpenAlex: OpenAlexConfig{
				BaseURL:   "https://api.openalex.org",
				Timeout:   30 * time.Second,
				RateLimit: 10,
				BurstSize: 10,
			},
		}
	}

	t.Run("accepts a valid configuration", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "http port out of range",
			mutate:  func(c *Config) { c.Server.HTTPPort = 0 },
			wantMsg: "server.http_port",
		},
		{
			name:    "metrics port out of range",
			mutate:  func(c *Config) { c.Server.MetricsPort = -1 },
			wantMsg: "server.metrics_port",
		},
		{
			name:    "metrics port collides with http port",
			mutate:  func(c *Config) { c.Server.MetricsPort = 8080 },
			wantMsg: "must differ",
		},
		{
			name:    "metrics path without leading slash",
			mutate:  func(c *Config) { c.Metrics.Path = "metrics" },
			wantMsg: "metrics.path",
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.OpenAlex.BaseURL = "" },
			wantMsg: "base_url",
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(c *Config) { c.OpenAlex.RateLimit = 0 },
			wantMsg: "rate_limit",
		},
		{
			name:    "zero burst size",
			mutate:  func(c *Config) { c.OpenAlex.BurstSize = 0 },
			wantMsg: "burst_size",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.OpenAlex.Timeout = 0 },
			wantMsg: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("disabled metrics skip metrics validation", func(t *testing.T) {
		cfg := valid()
		cfg.Metrics.Enabled = false
		cfg.Metrics.Path = "no-slash"
		cfg.Server.MetricsPort = 0

		assert.NoError(t, cfg.Validate())
	})
}

func TestServerConfigAddresses(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", HTTPPort: 8080, MetricsPort: 9091}

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddress())
	assert.Equal(t, "127.0.0.1:9091", cfg.MetricsAddress())
}
