// Package mcpserver exposes the issue tools over the Model Context
// Protocol using the official MCP Go SDK.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"

	"github.com/effective-security/xlog"
	"github.com/effective-security/youtrack-mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/youtrack-mcp", "mcpserver")

// Server serves registered tools to an MCP host.
type Server struct {
	server *mcp.Server
}

// New creates a new Server with the given implementation name and version.
func New(name, version string) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	return &Server{server: server}
}

// RegisterTools adds tools to the server.
func (s *Server) RegisterTools(list ...tools.ITool) {
	for _, t := range list {
		s.server.AddTool(toSDKTool(t), toSDKHandler(t))
	}
}

// Serve starts serving MCP requests. It reads requests from in and writes
// responses to out. It blocks until ctx is cancelled or the transport
// closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// run starts the server with the given transport. Exported via Serve for
// production use; called directly by tests with InMemoryTransport.
func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// toSDKTool converts a tools.ITool to an SDK *mcp.Tool, reusing the tool's
// reflected parameter schema.
func toSDKTool(t tools.ITool) *mcp.Tool {
	var schemaJSON json.RawMessage
	if js, err := json.Marshal(t.Parameters()); err == nil {
		schemaJSON = js
	} else {
		schemaJSON = json.RawMessage(`{"type":"object"}`)
	}

	return &mcp.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: schemaJSON,
	}
}

// toSDKHandler wraps a tool's Call as an SDK ToolHandler. Call embeds its
// failures in the returned JSON, so IsError surfaces only input that could
// not even be parsed.
func toSDKHandler(t tools.ITool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = json.RawMessage("{}")
		}

		logger.ContextKV(ctx, xlog.DEBUG, "tool", t.Name())

		result, err := t.Call(ctx, string(args))
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result}},
		}, nil
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
