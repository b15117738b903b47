package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/attentiond/internal/logging"
	"github.com/fyrsmithlabs/attentiond/internal/telemetry"
	"github.com/fyrsmithlabs/attentiond/internal/toolconfig"
)

type testServer struct {
	*Server
	logs *logging.TestLogger
	tel  *telemetry.TestTelemetry
}

func newTestServer(t *testing.T, tool *toolconfig.Tool) *testServer {
	t.Helper()
	logs := logging.NewTestLogger()
	tel := telemetry.NewTestTelemetry()

	s, err := NewServer(&Config{Name: "attentiond-test", Version: "v0.0.1", Instructions: "Call attend first."}, tool,
		WithLogger(logs.Logger),
		WithMeterProvider(tel.MeterProvider()),
		WithTracerProvider(tel.TracerProvider()),
	)
	require.NoError(t, err)
	return &testServer{Server: s, logs: logs, tel: tel}
}

// connect wires an SDK client to s over in-memory transports.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func toMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestNewServer_Validation(t *testing.T) {
	_, err := NewServer(&Config{}, toolconfig.Default())
	assert.Error(t, err)

	_, err = NewServer(nil, nil)
	assert.Error(t, err)

	s, err := NewServer(nil, toolconfig.Default())
	require.NoError(t, err)
	assert.Equal(t, toolconfig.DefaultToolName, s.Tool().Name())
}

func TestNewServer_LogsRegistration(t *testing.T) {
	ts := newTestServer(t, toolconfig.Default())

	ts.logs.AssertLogged(t, zapcore.InfoLevel, "tool registered")
	ts.logs.AssertField(t, "tool registered", "tool", "attend")
	ts.logs.AssertField(t, "tool registered", "description_source", "default")
}

func TestServer_InitializeReportsIdentity(t *testing.T) {
	ts := newTestServer(t, toolconfig.Default())
	session := connect(t, ts.Server)

	init := session.InitializeResult()
	require.NotNil(t, init)
	assert.Equal(t, "attentiond-test", init.ServerInfo.Name)
	assert.Equal(t, "v0.0.1", init.ServerInfo.Version)
	assert.Equal(t, "Call attend first.", init.Instructions)
}

func TestServer_ListTools(t *testing.T) {
	ts := newTestServer(t, toolconfig.Default())
	session := connect(t, ts.Server)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)

	tool := res.Tools[0]
	assert.Equal(t, "attend", tool.Name)
	assert.Equal(t, toolconfig.DefaultDescription, tool.Description)

	schema := toMap(t, tool.InputSchema)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"prompt"}, schema["required"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 9)
	metadata, ok := props["metadata"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, metadata, "type")
}

// wireLog collects the raw JSON-RPC messages a LoggingTransport writes.
type wireLog struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *wireLog) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// line returns the first logged line containing substr, or "".
func (w *wireLog) line(substr string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, l := range strings.Split(w.buf.String(), "\n") {
		if strings.Contains(l, substr) {
			return l
		}
	}
	return ""
}

func TestServer_ListToolsKeepsParameterOrder(t *testing.T) {
	tool, err := toolconfig.Parse([]string{"--add-param", "aardvark:string:Sorts first alphabetically"})
	require.NoError(t, err)
	ts := newTestServer(t, tool)

	ctx := context.Background()
	wire := &wireLog{}
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := ts.MCPServer().Connect(ctx, &mcp.LoggingTransport{Transport: serverTransport, Writer: wire}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	_, err = session.ListTools(ctx, nil)
	require.NoError(t, err)

	var listing string
	require.Eventually(t, func() bool {
		listing = wire.line(`"inputSchema"`)
		return listing != ""
	}, time.Second, 10*time.Millisecond)

	last := -1
	for _, name := range tool.ParameterNames() {
		idx := strings.Index(listing, `"`+name+`":{`)
		require.GreaterOrEqual(t, idx, 0, "property %q missing from listing", name)
		assert.Greater(t, idx, last, "property %q out of order", name)
		last = idx
	}
}

func TestServer_ListToolsReflectsDirectives(t *testing.T) {
	tool, err := toolconfig.Parse([]string{
		"--all-required",
		"--optional", "prompt",
		"--add-param", "url:string:Base URL: https://example.com:required",
		"--tool-description", "Focus.",
	})
	require.NoError(t, err)

	ts := newTestServer(t, tool)
	session := connect(t, ts.Server)

	// Repeated listings advertise the same schema.
	for i := 0; i < 2; i++ {
		res, err := session.ListTools(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, res.Tools, 1)
		assert.Equal(t, "Focus.", res.Tools[0].Description)

		schema := toMap(t, res.Tools[0].InputSchema)
		required, ok := schema["required"].([]any)
		require.True(t, ok)
		assert.NotContains(t, required, "prompt")
		assert.Contains(t, required, "url")
		assert.Len(t, required, 9)
	}
}

func TestServer_CallTool(t *testing.T) {
	ts := newTestServer(t, toolconfig.Default())
	session := connect(t, ts.Server)

	tests := []struct {
		name string
		args any
	}{
		{"no arguments", nil},
		{"valid arguments", map[string]any{"prompt": "hello", "priority": 3}},
		{"missing required", map[string]any{"focus": "x"}},
		{"out of range", map[string]any{"prompt": "p", "confidence": 7}},
		{"unknown keys", map[string]any{"bogus": []int{1, 2}}},
		{"not an object", []string{"a", "b"}},
		{"scalar", "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "attend",
				Arguments: tt.args,
			})
			require.NoError(t, err)
			assert.False(t, res.IsError)
			require.Len(t, res.Content, 1)

			text, ok := res.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Equal(t, "", text.Text)
		})
	}
}

func TestServer_CallUnknownTool(t *testing.T) {
	ts := newTestServer(t, toolconfig.Default())
	session := connect(t, ts.Server)

	for _, name := range []string{"attend2", "Attend", ""} {
		t.Run(name, func(t *testing.T) {
			res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name})
			if err == nil {
				require.NotNil(t, res)
				assert.True(t, res.IsError)
			}
		})
	}

	// The session keeps working.
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "attend"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
