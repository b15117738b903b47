// Package telemetry owns the OpenTelemetry tracer and meter providers for
// attentiond.
//
// Telemetry is off unless telemetry.enabled is set. When on, spans and
// metrics are exported over OTLP, gRPC by default or HTTP/protobuf when
// telemetry.protocol says so:
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  protocol: grpc
//	  sample_rate: 1.0
//	  export_interval: 15s
//
// Exporter failures never stop the server. New returns a degraded instance
// whose Tracer and Meter fall back to the global no-op providers, and
// Health reports why.
//
// Tests use NewTestTelemetry, which records spans and metrics in memory:
//
//	tt := telemetry.NewTestTelemetry()
//	_, span := tt.Tracer("test").Start(ctx, "attend")
//	span.End()
//	tt.AssertSpanExists(t, "attend")
package telemetry
