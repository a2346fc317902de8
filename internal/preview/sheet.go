// Package preview draws exported frame sequences as PNG sprite sheets.
package preview

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"spritepad/internal/domain"
)

const (
	DefaultCellSize = 8
	MaxCellSize     = 64
	framePadding    = 1 // px between frames

	// MaxPixels caps the sheet area, about 64 MiB of RGBA.
	MaxPixels = 1 << 24
)

var (
	ErrEmpty    = errors.New("nothing to render")
	ErrTooLarge = errors.New("sprite sheet too large")
)

// Options controls the sheet layout.
type Options struct {
	// Width is the grid width in cells. Zero means the square root of the
	// first frame's cell count, rounded up.
	Width    int
	CellSize int
}

// Layout is the pixel geometry of a sheet.
type Layout struct {
	GridWidth  int
	GridHeight int
	CellSize   int
	Frames     int
}

// SheetSize returns the image size in pixels.
func (l Layout) SheetSize() (int, int) {
	frameW := l.GridWidth * l.CellSize
	w := l.Frames*frameW + (l.Frames-1)*framePadding
	return w, l.GridHeight * l.CellSize
}

// Plan works out the sheet geometry for frames.
func Plan(frames []domain.Frame, opts Options) (Layout, error) {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return Layout{}, ErrEmpty
	}
	cell := opts.CellSize
	if cell <= 0 {
		cell = DefaultCellSize
	}
	if cell > MaxCellSize {
		cell = MaxCellSize
	}
	cells := len(frames[0])
	w := opts.Width
	if w <= 0 {
		w = int(math.Ceil(math.Sqrt(float64(cells))))
	}
	if w > cells {
		return Layout{}, fmt.Errorf("width %d exceeds %d cells: %w", w, cells, ErrTooLarge)
	}
	h := (cells + w - 1) / w
	l := Layout{GridWidth: w, GridHeight: h, CellSize: cell, Frames: len(frames)}

	frameW := int64(w) * int64(cell)
	sheetW := int64(l.Frames)*frameW + int64(l.Frames-1)*framePadding
	if sheetW*int64(h)*int64(cell) > MaxPixels {
		return Layout{}, fmt.Errorf("%d frames of %dx%d cells at %dpx: %w", l.Frames, w, h, cell, ErrTooLarge)
	}
	return l, nil
}

// Render writes frames left to right as a PNG. Frames shorter than the
// first one leave their missing cells transparent; extra cells are ignored.
func Render(w io.Writer, frames []domain.Frame, opts Options) error {
	l, err := Plan(frames, opts)
	if err != nil {
		return err
	}
	width, height := l.SheetSize()

	dc := gg.NewContext(width, height)
	defer dc.Close()

	frameW := l.GridWidth*l.CellSize + framePadding
	limit := l.GridWidth * l.GridHeight
	for fi, f := range frames {
		x0 := float64(fi * frameW)
		for i, c := range f {
			if i >= limit {
				break
			}
			row, col := i/l.GridWidth, i%l.GridWidth
			dc.SetRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
			dc.DrawRectangle(
				x0+float64(col*l.CellSize),
				float64(row*l.CellSize),
				float64(l.CellSize),
				float64(l.CellSize),
			)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("fill frame %d cell %d: %w", fi, i, err)
			}
		}
	}
	return dc.EncodePNG(w)
}
