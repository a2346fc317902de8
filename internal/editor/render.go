package editor

import (
	"fmt"
	"image"

	"spritepad/internal/domain"
)

// Render rebuilds the canvas at width x height. With nil data every cell
// takes the background color; otherwise data must hold exactly one color
// per cell. Rendering discards unsaved canvas edits and the highlight.
func (e *Editor) Render(width, height int, data domain.Frame) error {
	d := domain.Dimensions{Width: width, Height: height}
	if err := d.Validate(e.opts.MaxDimension); err != nil {
		return err
	}
	if data != nil && len(data) != d.Cells() {
		return fmt.Errorf("render %dx%d with %d colors: %w", width, height, len(data), ErrFrameSize)
	}
	e.dims = d
	if data == nil {
		e.canvas = domain.NewFrame(d, e.opts.Background)
	} else {
		e.canvas = data.Clone()
	}
	e.sel.reset()
	return nil
}

// Paint sets one cell to the paint color, as a direct click does.
func (e *Editor) Paint(index int) error {
	if !e.dims.Contains(index) {
		return fmt.Errorf("paint cell %d: %w", index, ErrCellOutOfRange)
	}
	e.canvas[index] = e.paint
	return nil
}

// Layout describes where each cell sits on screen.
type Layout struct {
	Dims     domain.Dimensions
	CellSize int
	Origin   image.Point
}

// Layout returns the geometry of the current grid.
func (e *Editor) Layout() Layout {
	return Layout{Dims: e.dims, CellSize: e.opts.CellSize, Origin: e.opts.Origin}
}

// CellBounds returns the pixel box covered by cell i. Both corners are
// inclusive: a 50px cell at column 0 spans pixels 0 through 49.
func (l Layout) CellBounds(i int) Rect {
	row, col := l.Dims.Position(i)
	x0 := l.Origin.X + col*l.CellSize
	y0 := l.Origin.Y + row*l.CellSize
	return Rect{Min: image.Pt(x0, y0), Max: image.Pt(x0+l.CellSize-1, y0+l.CellSize-1)}
}

// CellAt returns the index of the cell containing p, or -1.
func (l Layout) CellAt(p image.Point) int {
	if l.CellSize <= 0 {
		return -1
	}
	dx, dy := p.X-l.Origin.X, p.Y-l.Origin.Y
	if dx < 0 || dy < 0 {
		return -1
	}
	col, row := dx/l.CellSize, dy/l.CellSize
	if col >= l.Dims.Width || row >= l.Dims.Height {
		return -1
	}
	return l.Dims.Index(row, col)
}

// View is the render-ready projection of the editor state.
type View struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	MaxDim      int        `json:"maxDimension"`
	CellSize    int        `json:"cellSize"`
	Cells       []string   `json:"cells"`
	Highlighted []int      `json:"highlighted"`
	Frames      []FrameTab `json:"frames"`
	Active      int        `json:"active"`
	PaintColor  string     `json:"paintColor"`
}

// FrameTab is one entry of the frame button row.
type FrameTab struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// View renders the current state for display.
func (e *Editor) View() View {
	cells := make([]string, len(e.canvas))
	for i, c := range e.canvas {
		cells[i] = c.Hex()
	}
	tabs := make([]FrameTab, len(e.frames))
	for i := range e.frames {
		tabs[i] = FrameTab{Index: i, Label: e.labels[i], Active: i == e.active}
	}
	return View{
		Width:       e.dims.Width,
		Height:      e.dims.Height,
		MaxDim:      e.opts.MaxDimension,
		CellSize:    e.opts.CellSize,
		Cells:       cells,
		Highlighted: e.Highlighted(),
		Frames:      tabs,
		Active:      e.active,
		PaintColor:  e.paint.Hex(),
	}
}
