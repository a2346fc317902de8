package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerEditorTools() {
	// ── get_editor_state ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_editor_state",
		mcp.WithDescription("Get the grid size, cell colors (#rrggbb, row-major), highlighted cells, frames and paint color"),
	), s.handleGetEditorState)

	// ── set_dimensions ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_dimensions",
		mcp.WithDescription("Resize the grid. This discards every frame and leaves no active frame; call create_frame afterwards."),
		mcp.WithNumber("width",
			mcp.Description("Columns, 1 to the maximum dimension"),
			mcp.Required(),
		),
		mcp.WithNumber("height",
			mcp.Description("Rows, 1 to the maximum dimension"),
			mcp.Required(),
		),
	), s.handleSetDimensions)

	// ── set_paint_color ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_paint_color",
		mcp.WithDescription("Set the color used by paint_cell and drag_select"),
		mcp.WithString("color",
			mcp.Description("Hex (#ff0000) or rgb(255, 0, 0)"),
			mcp.Required(),
		),
	), s.handleSetPaintColor)

	// ── paint_cell ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("paint_cell",
		mcp.WithDescription("Paint one cell with the paint color. Cells are numbered row-major from 0."),
		mcp.WithNumber("index",
			mcp.Description("Cell index, row*width + column"),
			mcp.Required(),
		),
	), s.handlePaintCell)

	// ── drag_select ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("drag_select",
		mcp.WithDescription("Drag a selection rectangle between two cells and paint every cell it touches"),
		mcp.WithNumber("fromIndex",
			mcp.Description("Cell where the drag starts"),
			mcp.Required(),
		),
		mcp.WithNumber("toIndex",
			mcp.Description("Cell where the drag ends"),
			mcp.Required(),
		),
		mcp.WithBoolean("additive",
			mcp.Description("Keep the current highlight, as when Shift is held"),
		),
	), s.handleDragSelect)
}

func (s *Server) handleGetEditorState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.editor.View())
}

func (s *Server) handleSetDimensions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	width, err := requireInt(req, "width")
	if err != nil {
		return nil, err
	}
	height, err := requireInt(req, "height")
	if err != nil {
		return nil, err
	}
	view, err := s.editor.SetDimensions(ctx, fmt.Sprint(width), fmt.Sprint(height))
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Grid set to %dx%d; no frame is active", view.Width, view.Height)), nil
}

func (s *Server) handleSetPaintColor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	color := req.GetString("color", "")
	if color == "" {
		return nil, fmt.Errorf("color is required")
	}
	view, err := s.editor.SetPaintColor(ctx, color)
	if err != nil {
		return nil, fmt.Errorf("set paint color: %w", err)
	}
	return textResult(fmt.Sprintf("Paint color set to %s", view.PaintColor)), nil
}

func (s *Server) handlePaintCell(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := requireInt(req, "index")
	if err != nil {
		return nil, err
	}
	view, err := s.editor.PaintCell(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("paint cell: %w", err)
	}
	return textResult(fmt.Sprintf("Cell %d painted %s", index, view.Cells[index])), nil
}

func (s *Server) handleDragSelect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := requireInt(req, "fromIndex")
	if err != nil {
		return nil, err
	}
	to, err := requireInt(req, "toIndex")
	if err != nil {
		return nil, err
	}
	view := s.editor.View()
	cells := view.Width * view.Height
	if from < 0 || from >= cells || to < 0 || to >= cells {
		return nil, fmt.Errorf("cell indices must be in [0, %d)", cells)
	}

	// drag between cell centers
	center := func(i int) (int, int) {
		return (i%view.Width)*view.CellSize + view.CellSize/2, (i/view.Width)*view.CellSize + view.CellSize/2
	}
	x0, y0 := center(from)
	x1, y1 := center(to)
	if from == to {
		// a release at the anchor would be a click, which toggles in additive mode
		x1++
	}
	view = s.editor.DragSelect(ctx, x0, y0, x1, y1, req.GetBool("additive", false))
	return jsonResult(map[string]any{"painted": view.Highlighted})
}
