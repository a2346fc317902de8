package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"spritepad/internal/editor"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerFrameTools() {
	// ── create_frame ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_frame",
		mcp.WithDescription("Save the current frame and add a new black frame after it"),
	), s.handleCreateFrame)

	// ── duplicate_frame ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_frame",
		mcp.WithDescription("Save the current frame and append a copy of it as the new active frame"),
	), s.handleDuplicateFrame)

	// ── switch_frame ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("switch_frame",
		mcp.WithDescription("Save the current frame and open another one"),
		mcp.WithNumber("index",
			mcp.Description("Zero-based frame index"),
			mcp.Required(),
		),
	), s.handleSwitchFrame)

	// ── export_frames ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_frames",
		mcp.WithDescription("Save the current frame and send every frame to the export endpoint"),
	), s.handleExportFrames)
}

func (s *Server) handleCreateFrame(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := s.editor.CreateFrame(ctx)
	return textResult(fmt.Sprintf("Created %s (%d frames)", view.Frames[view.Active].Label, len(view.Frames))), nil
}

func (s *Server) handleDuplicateFrame(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := s.editor.DuplicateFrame(ctx)
	if view.Active < 0 {
		return nil, fmt.Errorf("no active frame to duplicate (use create_frame first)")
	}
	return textResult(fmt.Sprintf("Duplicated into %s (%d frames)", view.Frames[view.Active].Label, len(view.Frames))), nil
}

func (s *Server) handleSwitchFrame(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := requireInt(req, "index")
	if err != nil {
		return nil, err
	}
	view, err := s.editor.SwitchFrame(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("switch frame: %w", err)
	}
	return textResult(fmt.Sprintf("Switched to %s", view.Frames[view.Active].Label)), nil
}

func (s *Server) handleExportFrames(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.editor.Export(ctx)
	if errors.Is(err, editor.ErrNoActiveFrame) {
		return textResult("Nothing exported: no active frame"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("export frames: %w", err)
	}
	return textResult(fmt.Sprintf("Export endpoint answered %d: %s", res.StatusCode, res.Message)), nil
}
