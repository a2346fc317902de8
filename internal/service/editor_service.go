package service

import (
	"context"
	"fmt"
	"image"
	"sync"

	"spritepad/internal/domain"
	"spritepad/internal/editor"
	"spritepad/internal/export"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: one shared editing session
// ─────────────────────────────────────────────────────────────

// Exporter sends a frame sequence to the export endpoint.
type Exporter interface {
	Send(ctx context.Context, frames []domain.Frame) (*export.Result, error)
}

// EditorService serializes access to a single editor.Editor so the Wails
// bindings and the MCP tools can share it. Every mutating call returns the
// new view and emits EventEditorChanged.
type EditorService struct {
	mu       sync.Mutex
	ed       *editor.Editor
	exporter Exporter
	emitter  EventEmitter
}

// NewEditorService creates an EditorService around a fresh editor.
func NewEditorService(opts editor.Options, exporter Exporter, emitter EventEmitter) *EditorService {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	return &EditorService{
		ed:       editor.New(opts),
		exporter: exporter,
		emitter:  emitter,
	}
}

// View returns the current render-ready state.
func (s *EditorService) View() editor.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ed.View()
}

// Frames returns a copy of the stored frames.
func (s *EditorService) Frames() []domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ed.Frames()
}

// update runs fn under the lock and publishes the resulting view.
func (s *EditorService) update(ctx context.Context, fn func(e *editor.Editor) error) (editor.View, error) {
	s.mu.Lock()
	err := fn(s.ed)
	view := s.ed.View()
	s.mu.Unlock()

	if err != nil {
		return view, err
	}
	s.emitter.Emit(ctx, EventEditorChanged, view)
	return view, nil
}

// SetDimensions applies raw width/height form input.
func (s *EditorService) SetDimensions(ctx context.Context, width, height string) (editor.View, error) {
	return s.update(ctx, func(e *editor.Editor) error {
		return e.SetDimensionsText(width, height)
	})
}

// SetPaintColor parses a UI color string and makes it the paint color.
func (s *EditorService) SetPaintColor(ctx context.Context, color string) (editor.View, error) {
	c, err := domain.ParseColor(color)
	if err != nil {
		return s.View(), err
	}
	return s.update(ctx, func(e *editor.Editor) error {
		e.SetPaintColor(c)
		return nil
	})
}

// PaintCell paints one cell directly.
func (s *EditorService) PaintCell(ctx context.Context, index int) (editor.View, error) {
	return s.update(ctx, func(e *editor.Editor) error {
		return e.Paint(index)
	})
}

// SetModifier records the additive-select key state. No event is emitted.
func (s *EditorService) SetModifier(held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ed.SetModifier(held)
}

func (s *EditorService) PointerDown(ctx context.Context, x, y int) editor.View {
	v, _ := s.update(ctx, func(e *editor.Editor) error {
		e.PointerDown(image.Pt(x, y))
		return nil
	})
	return v
}

func (s *EditorService) PointerMove(ctx context.Context, x, y int) editor.View {
	v, _ := s.update(ctx, func(e *editor.Editor) error {
		e.PointerMove(image.Pt(x, y))
		return nil
	})
	return v
}

func (s *EditorService) PointerUp(ctx context.Context, x, y int) editor.View {
	v, _ := s.update(ctx, func(e *editor.Editor) error {
		e.PointerUp(image.Pt(x, y))
		return nil
	})
	return v
}

// ClearSelection drops the highlight without touching cell colors.
func (s *EditorService) ClearSelection(ctx context.Context) editor.View {
	v, _ := s.update(ctx, func(e *editor.Editor) error {
		e.ClearHighlight()
		return nil
	})
	return v
}

// DragSelect runs a whole drag between two points with the given modifier
// state, restoring the previous modifier afterwards.
func (s *EditorService) DragSelect(ctx context.Context, x0, y0, x1, y1 int, additive bool) editor.View {
	v, _ := s.update(ctx, func(e *editor.Editor) error {
		prev := e.Modifier()
		e.SetModifier(additive)
		e.SelectRect(image.Pt(x0, y0), image.Pt(x1, y1))
		e.SetModifier(prev)
		return nil
	})
	return v
}

func (s *EditorService) CreateFrame(ctx context.Context) editor.View {
	v, _ := s.update(ctx, func(e *editor.Editor) error {
		e.CreateFrame()
		return nil
	})
	return v
}

func (s *EditorService) DuplicateFrame(ctx context.Context) editor.View {
	v, _ := s.update(ctx, func(e *editor.Editor) error {
		e.DuplicateFrame()
		return nil
	})
	return v
}

// SwitchFrame saves the active frame and loads frame i.
func (s *EditorService) SwitchFrame(ctx context.Context, i int) (editor.View, error) {
	return s.update(ctx, func(e *editor.Editor) error {
		return e.SwitchFrame(i)
	})
}

// Export saves the active frame and sends the whole sequence. It returns
// editor.ErrNoActiveFrame without contacting the endpoint when there is
// nothing to export.
func (s *EditorService) Export(ctx context.Context) (*export.Result, error) {
	s.mu.Lock()
	frames, err := s.ed.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if s.exporter == nil {
		return nil, fmt.Errorf("export: no endpoint configured")
	}
	return s.exporter.Send(ctx, frames)
}
