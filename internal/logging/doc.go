// Package logging provides structured logging for attentiond.
//
// Logger wraps Zap with context-aware methods. Every entry picks up
// correlation fields from the context: the OpenTelemetry trace and span IDs,
// the request ID assigned to a tool call and the tool name.
//
// Output goes to stderr. On the stdio transport stdout carries the MCP
// protocol stream, so nothing else may write to it. An OpenTelemetry sink can
// be added through the otelzap bridge.
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, nil)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRequestID(ctx, id)
//	logger.Debug(ctx, "tool call", zap.String("tool", name))
//
// Below-error levels are sampled per level; errors are never sampled.
//
// Tests use NewTestLogger, which records entries in memory:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "started")
//	tl.AssertLogged(t, zapcore.InfoLevel, "started")
package logging
