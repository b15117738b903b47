package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/attentiond/internal/logging"
	"github.com/fyrsmithlabs/attentiond/internal/toolconfig"
)

const instrumentationName = "github.com/fyrsmithlabs/attentiond/internal/mcp"

// Server serves the attend tool.
type Server struct {
	mcp     *mcp.Server
	tool    *toolconfig.Tool
	schema  *jsonschema.Schema
	logger  *logging.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Config configures the MCP server.
type Config struct {
	// Name is the implementation name reported during initialization.
	Name string

	// Version is the implementation version.
	Version string

	// Instructions is optional guidance sent to clients on initialize.
	Instructions string
}

// DefaultConfig returns the server identity used when none is configured.
func DefaultConfig() *Config {
	return &Config{
		Name:    "attentiond",
		Version: "dev",
	}
}

// Option customizes NewServer.
type Option func(*serverOptions)

type serverOptions struct {
	logger         *logging.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// WithLogger sets the server logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(o *serverOptions) { o.logger = l }
}

// WithMeterProvider sets the provider for call metrics. The default is the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *serverOptions) { o.meterProvider = mp }
}

// WithTracerProvider sets the provider for call spans. The default is the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *serverOptions) { o.tracerProvider = tp }
}

// NewServer creates a server exposing tool.
func NewServer(cfg *Config, tool *toolconfig.Tool, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Name == "" {
		return nil, errors.New("server name is required")
	}
	if tool == nil {
		return nil, errors.New("tool is required")
	}

	o := serverOptions{
		logger:         logging.NewNop(),
		meterProvider:  otel.GetMeterProvider(),
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.Named("mcp")

	var serverOpts *mcp.ServerOptions
	if cfg.Instructions != "" {
		serverOpts = &mcp.ServerOptions{Instructions: cfg.Instructions}
	}

	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, serverOpts),
		tool:    tool,
		schema:  tool.Schema(),
		logger:  logger,
		metrics: NewMetrics(o.meterProvider.Meter(instrumentationName), logger),
		tracer:  o.tracerProvider.Tracer(instrumentationName),
	}

	s.registerTool()

	logger.Info(context.Background(), "tool registered",
		zap.String("tool", tool.Name()),
		zap.Strings("parameters", tool.ParameterNames()),
		zap.Strings("required", tool.RequiredNames()),
		zap.String("description_source", tool.DescriptionSource().String()),
	)

	return s, nil
}

// Tool returns the tool the server exposes.
func (s *Server) Tool() *toolconfig.Tool {
	return s.tool
}

// Schema returns the input schema advertised for the tool.
func (s *Server) Schema() *jsonschema.Schema {
	return s.schema
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves on stdin/stdout until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "starting MCP server on stdio transport")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// HTTPHandler returns a streamable HTTP handler serving every session with
// this server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}
