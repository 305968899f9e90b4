package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTool implements tools.ITool with a canned response.
type stubTool struct {
	name string
	res  string
	err  error
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return "Stub tool: " + t.name }
func (t *stubTool) Parameters() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"issue_id": map[string]any{"type": "string"},
		},
	}
}
func (t *stubTool) Call(_ context.Context, input string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	if t.res != "" {
		return t.res, nil
	}
	return input, nil
}

// setupTestClient connects an SDK client via in-memory transports and
// returns the client session. The server runs in a background goroutine
// tied to t.Cleanup.
func setupTestClient(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func TestNew(t *testing.T) {
	s := New("youtrack-mcp", "1.0.0")
	assert.NotNil(t, s.server)
}

func TestListTools(t *testing.T) {
	s := New("youtrack-mcp", "1.0.0")
	s.RegisterTools(&stubTool{name: "youtrack_get_issue"}, &stubTool{name: "youtrack_search_issues"})
	session := setupTestClient(t, s)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 2)

	byName := make(map[string]*mcp.Tool, len(result.Tools))
	for _, tool := range result.Tools {
		byName[tool.Name] = tool
	}

	tool, ok := byName["youtrack_get_issue"]
	require.True(t, ok)
	assert.Equal(t, "Stub tool: youtrack_get_issue", tool.Description)
}

func TestToolCallSuccess(t *testing.T) {
	s := New("youtrack-mcp", "1.0.0")
	s.RegisterTools(&stubTool{name: "echo"})
	session := setupTestClient(t, s)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"issue_id": "DEMO-1"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"issue_id":"DEMO-1"}`, tc.Text)
}

func TestToolCallError(t *testing.T) {
	s := New("youtrack-mcp", "1.0.0")
	s.RegisterTools(&stubTool{name: "fail", err: errors.New("tool failed")})
	session := setupTestClient(t, s)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "fail",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "tool failed", tc.Text)
}

func Test_toSDKTool(t *testing.T) {
	tool := toSDKTool(&stubTool{name: "youtrack_get_issue"})
	assert.Equal(t, "youtrack_get_issue", tool.Name)

	js, err := json.Marshal(tool.InputSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{"issue_id":{"type":"string"}}}`, string(js))
}
