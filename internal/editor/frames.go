package editor

import (
	"fmt"

	"spritepad/internal/domain"
)

// SaveCurrentFrame copies the canvas over the active frame. It does nothing
// before the first frame exists.
func (e *Editor) SaveCurrentFrame() {
	if !e.HasActiveFrame() {
		return
	}
	e.frames[e.active] = e.canvas.Clone()
}

// CreateFrame saves the current frame, appends a background-filled frame
// at the current size and makes it active.
func (e *Editor) CreateFrame() {
	e.SaveCurrentFrame()
	e.appendFrame(domain.NewFrame(e.dims, e.opts.Background))
	_ = e.LoadFrame(len(e.frames) - 1)
}

// DuplicateFrame saves the current frame and appends a copy of it as the
// new active frame. It does nothing when no frame is active.
func (e *Editor) DuplicateFrame() {
	if !e.HasActiveFrame() {
		return
	}
	e.SaveCurrentFrame()
	e.appendFrame(e.frames[e.active].Clone())
	_ = e.LoadFrame(len(e.frames) - 1)
}

func (e *Editor) appendFrame(f domain.Frame) {
	e.frameCounter++
	e.frames = append(e.frames, f)
	e.labels = append(e.labels, fmt.Sprintf("Frame %d", e.frameCounter))
}

// LoadFrame makes frame i active and renders its stored colors. The caller
// saves the previously active frame first; SwitchFrame does both.
func (e *Editor) LoadFrame(i int) error {
	if i < 0 || i >= len(e.frames) {
		return fmt.Errorf("load frame %d of %d: %w", i, len(e.frames), ErrFrameOutOfRange)
	}
	if err := e.Render(e.dims.Width, e.dims.Height, e.frames[i]); err != nil {
		return fmt.Errorf("load frame %d: %w", i, err)
	}
	e.active = i
	return nil
}

// SwitchFrame saves the active frame and loads frame i.
func (e *Editor) SwitchFrame(i int) error {
	if i < 0 || i >= len(e.frames) {
		return fmt.Errorf("switch to frame %d of %d: %w", i, len(e.frames), ErrFrameOutOfRange)
	}
	e.SaveCurrentFrame()
	return e.LoadFrame(i)
}

// Reset discards every frame and the active pointer and renders a
// background canvas at the new size. No frame is active afterwards.
func (e *Editor) Reset(width, height int) error {
	d := domain.Dimensions{Width: width, Height: height}
	if err := d.Validate(e.opts.MaxDimension); err != nil {
		return err
	}
	e.frames = nil
	e.labels = nil
	e.frameCounter = 0
	e.active = noFrame
	return e.Render(width, height, nil)
}

// SetDimensions validates and applies a new grid size. Rejected input
// leaves every frame and the active pointer untouched.
func (e *Editor) SetDimensions(width, height int) error {
	if err := (domain.Dimensions{Width: width, Height: height}).Validate(e.opts.MaxDimension); err != nil {
		return err
	}
	return e.Reset(width, height)
}

// SetDimensionsText is SetDimensions for raw form input.
func (e *Editor) SetDimensionsText(width, height string) error {
	d, err := domain.ParseDimensions(width, height, e.opts.MaxDimension)
	if err != nil {
		return err
	}
	return e.Reset(d.Width, d.Height)
}

// Snapshot saves the active frame and returns a copy of the whole sequence
// for export.
func (e *Editor) Snapshot() ([]domain.Frame, error) {
	if !e.HasActiveFrame() {
		return nil, ErrNoActiveFrame
	}
	e.SaveCurrentFrame()
	return e.Frames(), nil
}
