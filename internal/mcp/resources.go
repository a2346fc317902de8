package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	editorURI      = "spritepad://editor"
	framePrefixURI = "spritepad://frames/"
)

func (s *Server) registerResources() {
	// ── spritepad://editor ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		editorURI,
		"Editor State",
		mcp.WithMIMEType("application/json"),
	), s.handleEditorResource)

	// ── spritepad://frames/{index} ─────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			framePrefixURI+"{index}",
			"Stored Frame Colors",
		),
		s.handleFrameResource,
	)
}

func (s *Server) handleEditorResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, _ := json.MarshalIndent(s.editor.View(), "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      editorURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// handleFrameResource returns the stored colors of one frame as [r,g,b]
// triples. Unsaved edits on the canvas are not included.
func (s *Server) handleFrameResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	index, err := strconv.Atoi(strings.TrimPrefix(uri, framePrefixURI))
	if err != nil {
		return nil, fmt.Errorf("invalid frame URI: %s", uri)
	}
	frames := s.editor.Frames()
	if index < 0 || index >= len(frames) {
		return nil, fmt.Errorf("frame %d does not exist (%d frames)", index, len(frames))
	}
	data, err := json.Marshal(frames[index])
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
