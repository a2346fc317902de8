// Package editor holds the state of one pixel-art editing session: the grid
// canvas, the frame sequence, the active frame pointer and the drag
// selection. It has no rendering dependencies; a UI draws View() and feeds
// pointer and key events back in.
package editor

import (
	"errors"
	"fmt"
	"image"

	"spritepad/internal/domain"
)

var (
	ErrFrameSize       = errors.New("frame data does not match grid size")
	ErrFrameOutOfRange = errors.New("frame index out of range")
	ErrCellOutOfRange  = errors.New("cell index out of range")
	ErrNoActiveFrame   = errors.New("no active frame")
)

const noFrame = -1

// Options configures a new Editor. Zero fields take the defaults below.
type Options struct {
	Width        int
	Height       int
	MaxDimension int
	CellSize     int          // rendered cell edge, in pixels
	Origin       image.Point  // screen position of the grid's top-left pixel
	Background   domain.Color // color of new cells
	PaintColor   domain.Color
}

const (
	DefaultWidth        = 9
	DefaultHeight       = 9
	DefaultMaxDimension = 20
	DefaultCellSize     = 50
)

// withDefaults fills zero fields and clamps the starting size into
// [1, MaxDimension], so the first Reset always succeeds.
func (o Options) withDefaults() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	o.Width = min(o.Width, o.MaxDimension)
	o.Height = min(o.Height, o.MaxDimension)
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	return o
}

// Editor is a single owned editing session. It is not safe for concurrent
// use; callers that share one across goroutines must serialize access.
type Editor struct {
	opts Options

	dims   domain.Dimensions
	canvas domain.Frame // authoritative colors of the rendered grid

	frames       []domain.Frame
	labels       []string
	active       int
	frameCounter int

	paint domain.Color
	sel   selection
}

// New returns an editor showing one default frame at the configured size.
// A starting size above MaxDimension is clamped to it.
func New(opts Options) *Editor {
	opts = opts.withDefaults()
	e := &Editor{
		opts:   opts,
		active: noFrame,
		paint:  opts.PaintColor,
		sel:    newSelection(),
	}
	if err := e.Reset(opts.Width, opts.Height); err != nil {
		panic(fmt.Sprintf("editor: reset to clamped size %dx%d: %v", opts.Width, opts.Height, err))
	}
	e.CreateFrame()
	return e
}

// Dimensions returns the current grid size.
func (e *Editor) Dimensions() domain.Dimensions { return e.dims }

// ActiveIndex returns the active frame index, or -1 before any frame exists.
func (e *Editor) ActiveIndex() int { return e.active }

// HasActiveFrame reports whether the active pointer is valid.
func (e *Editor) HasActiveFrame() bool {
	return e.active >= 0 && e.active < len(e.frames)
}

// FrameCount returns the number of frames in the sequence.
func (e *Editor) FrameCount() int { return len(e.frames) }

// Frames returns a deep copy of the stored frame sequence.
func (e *Editor) Frames() []domain.Frame { return domain.CloneFrames(e.frames) }

// Frame returns a copy of one stored frame.
func (e *Editor) Frame(i int) (domain.Frame, error) {
	if i < 0 || i >= len(e.frames) {
		return nil, ErrFrameOutOfRange
	}
	return e.frames[i].Clone(), nil
}

// Canvas returns a copy of the live (possibly unsaved) grid colors.
func (e *Editor) Canvas() domain.Frame { return e.canvas.Clone() }

// PaintColor returns the color applied by clicks and selection fills.
func (e *Editor) PaintColor() domain.Color { return e.paint }

// SetPaintColor changes the color applied by clicks and selection fills.
func (e *Editor) SetPaintColor(c domain.Color) { e.paint = c }
