// Package config loads attentiond runtime configuration.
//
// Settings come from built-in defaults, an optional YAML file and
// ATTENTIOND_* environment variables, in increasing order of precedence.
// The tool surface itself (parameters, description) is configured on the
// command line and is not part of this package.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Transports accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Telemetry export protocols.
const (
	ProtocolGRPC         = "grpc"
	ProtocolHTTPProtobuf = "http/protobuf"
)

// Config holds the complete attentiond configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name            string   `koanf:"name"`
	Version         string   `koanf:"version"` // empty means the build version
	Instructions    string   `koanf:"instructions"`
	Transport       string   `koanf:"transport"`
	HTTPAddr        string   `koanf:"http_addr"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
	RateLimit       float64  `koanf:"rate_limit"` // requests per second per client, 0 = unlimited
	RateBurst       int      `koanf:"rate_burst"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	OTEL   bool   `koanf:"otel"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled        bool     `koanf:"enabled"`
	Endpoint       string   `koanf:"endpoint"`
	Protocol       string   `koanf:"protocol"`
	Insecure       bool     `koanf:"insecure"`
	TLSSkipVerify  bool     `koanf:"tls_skip_verify"`
	ServiceName    string   `koanf:"service_name"`
	SampleRate     float64  `koanf:"sample_rate"`
	ExportInterval Duration `koanf:"export_interval"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:            "attentiond",
			Transport:       TransportStdio,
			HTTPAddr:        "127.0.0.1:9595",
			ShutdownTimeout: Duration(10 * time.Second),
			RateBurst:       20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			Endpoint:       "localhost:4317",
			Protocol:       ProtocolGRPC,
			Insecure:       true,
			ServiceName:    "attentiond",
			SampleRate:     1.0,
			ExportInterval: Duration(15 * time.Second),
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Name) == "" {
		errs = append(errs, errors.New("server.name is required"))
	}
	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if _, _, err := net.SplitHostPort(c.Server.HTTPAddr); err != nil {
			errs = append(errs, fmt.Errorf("server.http_addr %q: %w", c.Server.HTTPAddr, err))
		}
	default:
		errs = append(errs, fmt.Errorf("server.transport must be %q or %q, got %q",
			TransportStdio, TransportHTTP, c.Server.Transport))
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must not be negative, got %g", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		errs = append(errs, errors.New("server.rate_burst must be positive when rate_limit is set"))
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format must be \"json\" or \"console\", got %q", c.Logging.Format))
	}
	if !validLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of %s, got %q",
			strings.Join(LogLevels, ", "), c.Logging.Level))
	}
	if c.Logging.OTEL && !c.Telemetry.Enabled {
		errs = append(errs, errors.New("logging.otel requires telemetry.enabled"))
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.Endpoint == "" {
			errs = append(errs, errors.New("telemetry.endpoint is required when telemetry is enabled"))
		}
		if c.Telemetry.Protocol != ProtocolGRPC && c.Telemetry.Protocol != ProtocolHTTPProtobuf {
			errs = append(errs, fmt.Errorf("telemetry.protocol must be %q or %q, got %q",
				ProtocolGRPC, ProtocolHTTPProtobuf, c.Telemetry.Protocol))
		}
		if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
			errs = append(errs, fmt.Errorf("telemetry.sample_rate must be between 0 and 1, got %g", c.Telemetry.SampleRate))
		}
		if c.Telemetry.ExportInterval.Duration() <= 0 {
			errs = append(errs, errors.New("telemetry.export_interval must be positive"))
		}
	}

	return errors.Join(errs...)
}

// LogLevels lists the names accepted by logging.level, most verbose first.
var LogLevels = []string{"trace", "debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

func validLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}
