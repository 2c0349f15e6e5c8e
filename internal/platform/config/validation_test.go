package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := Load("")
	require.NoError(t, err)

	return cfg
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

// TestConfig_Validate_Fields verifies each rule reports the koanf key of the
// offending field.
func TestConfig_Validate_Fields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"bad timezone", func(c *Config) { c.App.Timezone = "Mars/Olympus" }, "app.timezone must be an IANA time zone"},
		{"bad environment", func(c *Config) { c.App.Environment = "staging" }, "app.environment must be one of"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port must be at most 65535"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port is required"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level must be one of"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format must be one of"},
		{
			"log file without path",
			func(c *Config) { c.Log.File.Enabled = true; c.Log.File.Path = "" },
			"log.file.path is required when enabled is set",
		},
		{
			"telemetry without endpoint",
			func(c *Config) { c.Telemetry.Enabled = true },
			"telemetry.endpoint is required",
		},
		{"sampling rate", func(c *Config) { c.Telemetry.SamplingRate = 2 }, "telemetry.sampling_rate must be at most 1"},
		{"retry attempts", func(c *Config) { c.Client.Retry.MaxAttempts = 11 }, "client.retry.max_attempts must be at most 10"},
		{"multiplier", func(c *Config) { c.Client.Retry.Multiplier = 1.0 }, "client.retry.multiplier must be at least 1.1"},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn is required"},
		{"redis addr", func(c *Config) { c.Redis.Addr = "localhost" }, "redis.addr must be host:port"},
		{"session ttl", func(c *Config) { c.Auth.SessionTTL = 0 }, "auth.session_ttl is required"},
		{
			"baserow url without token",
			func(c *Config) { c.Baserow.BaseURL = "https://api.baserow.io/api/" },
			"baserow.token is required",
		},
		{"baserow bad url", func(c *Config) { c.Baserow.BaseURL = "not a url"; c.Baserow.Token = "x" }, "baserow.base_url must be a valid URL"},
		{"quotes table id", func(c *Config) { c.Baserow.QuotesTableID = "abc" }, "baserow.quotes_table_id must be numeric"},
		{"allowed table", func(c *Config) { c.Baserow.AllowedTables = []string{"12", "x"} }, "baserow.allowed_tables[1] must be numeric"},
		{"draft ttl", func(c *Config) { c.Quote.DraftTTL = 0 }, "quote.draft_ttl is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.App.Name = ""
	cfg.Server.Port = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed:")
	assert.Contains(t, err.Error(), "app.name")
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "log.level")
}

func TestFormatFieldPath(t *testing.T) {
	assert.Equal(t, "server.port", formatFieldPath("Config.server.port"))
	assert.Equal(t, "client.retry.max_attempts", formatFieldPath("Config.client.retry.max_attempts"))
	assert.Equal(t, "name", formatFieldPath("name"))
}
