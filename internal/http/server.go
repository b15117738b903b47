// Package http serves the MCP streamable HTTP transport with health and
// Prometheus endpoints alongside it.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/attentiond/internal/logging"
)

// Route paths.
const (
	PathMCP     = "/mcp"
	PathHealth  = "/health"
	PathMetrics = "/metrics"
)

// Server hosts the MCP handler on echo.
type Server struct {
	echo     *echo.Echo
	logger   *logging.Logger
	config   *Config
	registry *prometheus.Registry
	metrics  *Metrics
	addr     net.Addr
}

// Config holds HTTP server configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// RateLimit is the per-client request rate on /mcp. Zero disables it.
	RateLimit float64

	// RateBurst is the per-client burst allowed above RateLimit.
	RateBurst int

	// Service and Version are reported by /health.
	Service string
	Version string
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
	Tool    string `json:"tool"`
}

// Option customizes NewServer.
type Option func(*Server)

// WithRegistry serves and registers metrics on reg instead of a private
// registry with Go and process collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// NewServer creates an HTTP server routing /mcp to mcpHandler. toolName is
// reported by /health.
func NewServer(mcpHandler http.Handler, toolName string, logger *logging.Logger, cfg *Config, opts ...Option) (*Server, error) {
	if mcpHandler == nil {
		return nil, fmt.Errorf("mcp handler is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Addr: "127.0.0.1:9595", ShutdownTimeout: 10 * time.Second}
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit must not be negative")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		logger: logger.Named("http"),
		config: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	metrics, err := NewMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("registering http metrics: %w", err)
	}
	s.metrics = metrics

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.metrics.Middleware())
	e.Use(s.requestLogger())

	s.registerRoutes(mcpHandler, toolName)
	return s, nil
}

func (s *Server) registerRoutes(mcpHandler http.Handler, toolName string) {
	s.echo.GET(PathHealth, func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: s.config.Service,
			Version: s.config.Version,
			Tool:    toolName,
		})
	})

	s.echo.GET(PathMetrics, echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	var mw []echo.MiddlewareFunc
	if s.config.RateLimit > 0 {
		mw = append(mw, s.rateLimiter())
	}
	s.echo.Match([]string{http.MethodGet, http.MethodPost, http.MethodDelete},
		PathMCP, echo.WrapHandler(mcpHandler), mw...)
}

// rateLimiter limits each client, keyed by real IP, to the configured rate.
func (s *Server) rateLimiter() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.config.RateLimit),
		Burst:     s.config.RateBurst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			s.logger.Warn(c.Request().Context(), "rate limit exceeded", zap.String("client", identifier))
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := logging.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			s.logger.Debug(ctx, "http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the bound address once the server is listening.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. It
// returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.addr = ln.Addr()
	s.echo.Listener = ln

	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server start: %w", err)
		}
	}()

	s.logger.Info(ctx, "http server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("mcp_endpoint", PathMCP),
		zap.String("health_endpoint", PathHealth),
		zap.String("metrics_endpoint", PathMetrics),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info(shutdownCtx, "shutting down http server")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
