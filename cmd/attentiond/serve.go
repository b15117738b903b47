package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/attentiond/internal/config"
	attendhttp "github.com/fyrsmithlabs/attentiond/internal/http"
	"github.com/fyrsmithlabs/attentiond/internal/logging"
	"github.com/fyrsmithlabs/attentiond/internal/mcp"
	"github.com/fyrsmithlabs/attentiond/internal/telemetry"
	"github.com/fyrsmithlabs/attentiond/internal/toolconfig"
)

// serve wires telemetry, logging and the MCP server, then blocks on the
// configured transport.
func serve(ctx context.Context, cfg *config.Config, tool *toolconfig.Tool, stderr io.Writer) (err error) {
	serverVersion := cfg.Server.Version
	if serverVersion == "" {
		serverVersion = version
	}

	tel, err := telemetry.New(ctx, telemetryConfig(cfg, serverVersion))
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := tel.Shutdown(context.Background()); shutdownErr != nil && err == nil {
			err = fmt.Errorf("telemetry shutdown: %w", shutdownErr)
		}
	}()

	logger, err := newLogger(cfg.Logging, tel, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if health := tel.Health(); health.Degraded {
		logger.Warn(ctx, "telemetry degraded", zap.Strings("reasons", health.Reasons))
	}

	srv, err := mcp.NewServer(&mcp.Config{
		Name:         cfg.Server.Name,
		Version:      serverVersion,
		Instructions: cfg.Server.Instructions,
	}, tool,
		mcp.WithLogger(logger),
		mcp.WithMeterProvider(tel.MeterProvider()),
		mcp.WithTracerProvider(tel.TracerProvider()),
	)
	if err != nil {
		return fmt.Errorf("creating mcp server: %w", err)
	}

	logger.Info(ctx, "attentiond starting",
		zap.String("version", serverVersion),
		zap.String("commit", gitCommit),
		zap.String("transport", cfg.Server.Transport),
		zap.Bool("telemetry", tel.IsEnabled()),
	)

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		hs, err := attendhttp.NewServer(srv.HTTPHandler(), tool.Name(), logger, &attendhttp.Config{
			Addr:            cfg.Server.HTTPAddr,
			ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration(),
			RateLimit:       cfg.Server.RateLimit,
			RateBurst:       cfg.Server.RateBurst,
			Service:         cfg.Server.Name,
			Version:         serverVersion,
		})
		if err != nil {
			return fmt.Errorf("creating http server: %w", err)
		}
		err = hs.Start(ctx)
		logger.Info(context.Background(), "attentiond stopped")
		return err
	default:
		err := srv.Run(ctx)
		logger.Info(context.Background(), "attentiond stopped")
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

// telemetryConfig maps the telemetry section; log export follows
// logging.otel.
func telemetryConfig(cfg *config.Config, version string) *telemetry.Config {
	telCfg := telemetry.FromConfig(cfg.Telemetry, version)
	telCfg.Logs.Enabled = cfg.Logging.OTEL
	return telCfg
}

// newLogger maps the logging section onto the logger configuration. Console
// output always goes to stderr; with logging.otel records are also sent to
// the telemetry logger provider.
func newLogger(cfg config.LoggingConfig, tel *telemetry.Telemetry, stderr io.Writer) (*logging.Logger, error) {
	level, err := logging.LevelFromString(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	logCfg := logging.NewDefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Format
	logCfg.Output.OTEL = cfg.OTEL
	logCfg.Fields["version"] = version

	var provider log.LoggerProvider
	if cfg.OTEL {
		provider = tel.LoggerProvider()
	}
	return logging.NewLogger(logCfg, provider, logging.WithWriter(stderr))
}
