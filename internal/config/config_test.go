package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "attentiond", cfg.Server.Name)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, ProtocolGRPC, cfg.Telemetry.Protocol)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"http transport", func(c *Config) { c.Server.Transport = TransportHTTP }, ""},
		{"empty name", func(c *Config) { c.Server.Name = " " }, "server.name"},
		{"unknown transport", func(c *Config) { c.Server.Transport = "sse" }, "server.transport"},
		{"bad http addr", func(c *Config) {
			c.Server.Transport = TransportHTTP
			c.Server.HTTPAddr = "9595"
		}, "server.http_addr"},
		{"bad http addr ignored on stdio", func(c *Config) { c.Server.HTTPAddr = "9595" }, ""},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdown_timeout"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, "rate_limit"},
		{"rate limit without burst", func(c *Config) {
			c.Server.RateLimit = 5
			c.Server.RateBurst = 0
		}, "rate_burst"},
		{"bad log format", func(c *Config) { c.Logging.Format = "logfmt" }, "logging.format"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }, "logging.level"},
		{"trace level", func(c *Config) { c.Logging.Level = "trace" }, ""},
		{"level is case-insensitive", func(c *Config) { c.Logging.Level = " WARN " }, ""},
		{"otel logs without telemetry", func(c *Config) { c.Logging.OTEL = true }, "logging.otel"},
		{"otel logs with telemetry", func(c *Config) {
			c.Logging.OTEL = true
			c.Telemetry.Enabled = true
		}, ""},
		{"telemetry without endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, "telemetry.endpoint"},
		{"telemetry bad protocol", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Protocol = "http/json"
		}, "telemetry.protocol"},
		{"telemetry bad sample rate", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.SampleRate = 1.5
		}, "sample_rate"},
		{"disabled telemetry not validated", func(c *Config) { c.Telemetry.Protocol = "bogus" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.Name = ""
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.name")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	require.NoError(t, d.UnmarshalText([]byte(" 15 ")))
	assert.Equal(t, 15*time.Second, d.Duration())

	assert.ErrorContains(t, d.UnmarshalText([]byte("soon")), "number of seconds")
	assert.ErrorContains(t, d.UnmarshalText([]byte("-5s")), "negative")
	assert.ErrorContains(t, d.UnmarshalText([]byte("-5")), "negative")

	text, err := Duration(2 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2s", string(text))
}
