package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/fyrsmithlabs/attentiond/internal/logging"
	"github.com/fyrsmithlabs/attentiond/internal/telemetry"
	"github.com/fyrsmithlabs/attentiond/internal/toolconfig"
)

func TestMetrics_RecordInvocation(t *testing.T) {
	tt := telemetry.NewTestTelemetry()
	m := NewMetrics(tt.Meter(instrumentationName), logging.NewNop())
	ctx := context.Background()

	m.RecordInvocation(ctx, "attend", 100*time.Microsecond, nil)
	m.RecordInvocation(ctx, "other", 50*time.Microsecond, fmt.Errorf("%w %q", ErrUnknownTool, "other"))

	rm, err := tt.Collect(ctx)
	require.NoError(t, err)

	invocations, ok := telemetry.FindMetric(rm, MetricInvocations)
	require.True(t, ok)
	assert.Equal(t, int64(2), telemetry.SumValue(invocations))
	assert.Equal(t, int64(1), telemetry.SumValue(invocations, attribute.String("tool", "attend")))

	errs, ok := telemetry.FindMetric(rm, MetricErrors)
	require.True(t, ok)
	assert.Equal(t, int64(1), telemetry.SumValue(errs, attribute.String("reason", "unknown_tool")))

	duration, ok := telemetry.FindMetric(rm, MetricDuration)
	require.True(t, ok)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestMetrics_ActiveRequests(t *testing.T) {
	tt := telemetry.NewTestTelemetry()
	m := NewMetrics(tt.Meter(instrumentationName), logging.NewNop())
	ctx := context.Background()

	m.IncrementActive(ctx, "attend")
	m.IncrementActive(ctx, "attend")
	m.DecrementActive(ctx, "attend")

	rm, err := tt.Collect(ctx)
	require.NoError(t, err)

	active, ok := telemetry.FindMetric(rm, MetricActiveRequests)
	require.True(t, ok)
	assert.Equal(t, int64(1), telemetry.SumValue(active))
}

func TestMetrics_HandlerRecordsCalls(t *testing.T) {
	ts := newTestServer(t, toolconfig.Default())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ts.handleCall(ctx, callRequest("attend", `{"prompt":"p"}`))
		require.NoError(t, err)
	}
	_, err := ts.handleCall(ctx, callRequest("nope", ""))
	require.Error(t, err)

	rm, err := ts.tel.Collect(ctx)
	require.NoError(t, err)

	invocations, ok := telemetry.FindMetric(rm, MetricInvocations)
	require.True(t, ok)
	assert.Equal(t, int64(3), telemetry.SumValue(invocations, attribute.String("tool", "attend")))
	assert.Equal(t, int64(1), telemetry.SumValue(invocations, attribute.String("tool", "nope")))

	errs, ok := telemetry.FindMetric(rm, MetricErrors)
	require.True(t, ok)
	assert.Equal(t, int64(1), telemetry.SumValue(errs))

	active, ok := telemetry.FindMetric(rm, MetricActiveRequests)
	require.True(t, ok)
	assert.Equal(t, int64(0), telemetry.SumValue(active))
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w %q", ErrUnknownTool, "x"), "unknown_tool"},
		{fmt.Errorf("wrapped: %w", context.Canceled), "canceled"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeError(tt.err))
	}
}
