package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("draw_animation",
		mcp.WithPromptDescription("Guide through drawing a short frame-by-frame animation"),
		mcp.WithArgument("subject",
			mcp.ArgumentDescription("What the animation shows"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("frames",
			mcp.ArgumentDescription("How many frames to draw"),
		),
	), s.handleDrawAnimationPrompt)
}

func (s *Server) handleDrawAnimationPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	subject := req.Params.Arguments["subject"]
	frames := req.Params.Arguments["frames"]
	if frames == "" {
		frames = "4"
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Draw a %s-frame animation of %s", frames, subject),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Draw a %s-frame pixel animation of "%s". Follow these steps:

1. Call get_editor_state to learn the grid size. Resize with set_dimensions only if needed, then create_frame.
2. Pick colors with set_paint_color and paint the first frame using paint_cell and drag_select.
3. For each following frame, call duplicate_frame and change only the cells that move.
4. Use switch_frame to review earlier frames.
5. Finish with export_frames.`, frames, subject),
				},
			},
		},
	}, nil
}
