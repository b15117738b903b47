package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/attentiond/internal/logging"
)

// ErrUnknownTool is returned for calls naming any tool but the attend tool.
var ErrUnknownTool = errors.New("unknown tool")

// registerTool uses the raw AddTool so the SDK leaves the arguments
// unvalidated.
func (s *Server) registerTool() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        s.tool.Name(),
		Description: s.tool.Description(),
		InputSchema: s.schema,
	}, s.handleCall)
}

// emptyResult is the answer to every successful call.
func emptyResult() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: ""}},
	}
}

func (s *Server) handleCall(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	var name string
	var argBytes int
	if req != nil && req.Params != nil {
		name = req.Params.Name
		argBytes = len(req.Params.Arguments)
	}

	ctx = logging.WithRequestID(ctx, uuid.NewString())
	ctx = logging.WithTool(ctx, name)

	ctx, span := s.tracer.Start(ctx, "tools/call",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("mcp.tool.name", name),
			attribute.Int("mcp.tool.arguments_bytes", argBytes),
		))
	defer span.End()

	start := time.Now()
	s.metrics.IncrementActive(ctx, name)
	defer func() {
		s.metrics.DecrementActive(ctx, name)
		s.metrics.RecordInvocation(ctx, name, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if name != s.tool.Name() {
		s.logger.Warn(ctx, "call for unknown tool", zap.String("want", s.tool.Name()))
		return nil, fmt.Errorf("%w %q", ErrUnknownTool, name)
	}

	s.logger.Debug(ctx, "tool called")
	s.logger.Trace(ctx, "tool arguments received", zap.Int("bytes", argBytes))
	return emptyResult(), nil
}
