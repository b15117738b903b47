package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func fieldMap(ctx context.Context) map[string]interface{} {
	m := make(map[string]interface{})
	for _, f := range ContextFields(ctx) {
		if f.String != "" {
			m[f.Key] = f.String
		} else {
			m[f.Key] = f.Integer
		}
	}
	return m
}

func TestContextFields_Empty(t *testing.T) {
	assert.Empty(t, ContextFields(context.Background()))
}

func TestContextFields_RequestAndTool(t *testing.T) {
	ctx := WithTool(WithRequestID(context.Background(), "abc"), "attend")

	fields := fieldMap(ctx)
	assert.Equal(t, "abc", fields["request.id"])
	assert.Equal(t, "attend", fields["tool"])
}

func TestContextFields_EmptyValuesIgnored(t *testing.T) {
	ctx := WithTool(WithRequestID(context.Background(), ""), "")
	assert.Empty(t, ContextFields(ctx))
	assert.Equal(t, "", RequestIDFromContext(ctx))
	assert.Equal(t, "", ToolFromContext(ctx))
}

func TestContextFields_Trace(t *testing.T) {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(tracetest.NewInMemoryExporter()),
	)
	ctx, span := provider.Tracer("test").Start(context.Background(), "call")
	defer span.End()

	fields := fieldMap(ctx)
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	assert.Contains(t, fields, "trace_sampled")
}

func TestLoggerContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	tl := NewTestLogger()
	ctx := WithLogger(context.Background(), tl.Logger)
	assert.Same(t, tl.Logger, FromContext(ctx))
}
