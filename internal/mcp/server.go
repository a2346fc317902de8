package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"spritepad/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for spritepad.
// It exposes the editing session as tools so AI agents can draw frames.
type Server struct {
	mcp    *server.MCPServer
	editor *service.EditorService
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Editor *service.EditorService
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	s := &Server{editor: deps.Editor}

	s.mcp = server.NewMCPServer(
		"spritepad-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerEditorTools()
	s.registerFrameTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// requireInt reads an integer argument that has no sensible default.
func requireInt(req mcp.CallToolRequest, key string) (int, error) {
	if _, ok := req.GetArguments()[key]; !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return req.GetInt(key, 0), nil
}

