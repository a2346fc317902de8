package editor

import (
	"image"
	"sort"
)

// SelectionState is the pointer state machine's current state.
type SelectionState int

const (
	StateIdle SelectionState = iota
	StateDragging
	StateHighlighted
)

func (s SelectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateHighlighted:
		return "highlighted"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned box in screen pixels with inclusive corners.
type Rect struct {
	Min, Max image.Point
}

// RectBetween returns the box spanned by two corner points in any order.
func RectBetween(a, b image.Point) Rect {
	return Rect{
		Min: image.Pt(min(a.X, b.X), min(a.Y, b.Y)),
		Max: image.Pt(max(a.X, b.X), max(a.Y, b.Y)),
	}
}

// Intersects is a closed-interval overlap test on both axes, so boxes that
// only share an edge pixel still intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

type selection struct {
	state       SelectionState
	modifier    bool
	anchor      image.Point
	base        map[int]struct{} // highlight held when an additive drag began
	highlighted map[int]struct{}
}

func newSelection() selection {
	return selection{
		base:        map[int]struct{}{},
		highlighted: map[int]struct{}{},
	}
}

func (s *selection) reset() {
	s.state = StateIdle
	clear(s.base)
	clear(s.highlighted)
}

// SetModifier records whether the additive-select key (Shift) is held.
func (e *Editor) SetModifier(held bool) { e.sel.modifier = held }

// Modifier reports whether the additive-select key is held.
func (e *Editor) Modifier() bool { return e.sel.modifier }

// SelectionState returns the pointer state machine's state.
func (e *Editor) SelectionState() SelectionState { return e.sel.state }

// Highlighted returns the highlighted cell indices in ascending order.
func (e *Editor) Highlighted() []int {
	out := make([]int, 0, len(e.sel.highlighted))
	for i := range e.sel.highlighted {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// ClearHighlight empties the highlighted set and returns to idle.
func (e *Editor) ClearHighlight() {
	e.sel.reset()
}

// PointerDown starts a drag at p. Without the modifier the previous
// highlight is dropped; with it, the drag adds to what is highlighted.
func (e *Editor) PointerDown(p image.Point) {
	if !e.sel.modifier {
		clear(e.sel.highlighted)
	}
	clear(e.sel.base)
	for i := range e.sel.highlighted {
		e.sel.base[i] = struct{}{}
	}
	e.sel.anchor = p
	e.sel.state = StateDragging
}

// PointerMove recomputes the highlight against the rectangle from the drag
// anchor to p. Calling it twice with the same point changes nothing.
func (e *Editor) PointerMove(p image.Point) {
	if e.sel.state != StateDragging {
		return
	}
	e.highlightRect(RectBetween(e.sel.anchor, p))
}

// PointerUp ends the drag at p. A release at the anchor is a click on the
// cell under p; any other release paints every highlighted cell.
func (e *Editor) PointerUp(p image.Point) {
	if e.sel.state != StateDragging {
		return
	}
	if p == e.sel.anchor {
		e.click(p)
		return
	}
	e.highlightRect(RectBetween(e.sel.anchor, p))
	for i := range e.sel.highlighted {
		e.canvas[i] = e.paint
	}
	e.sel.state = StateIdle
}

// SelectRect runs a full drag from a to b.
func (e *Editor) SelectRect(a, b image.Point) {
	e.PointerDown(a)
	e.PointerMove(b)
	e.PointerUp(b)
}

func (e *Editor) click(p image.Point) {
	idx := e.Layout().CellAt(p)
	if idx < 0 {
		if !e.sel.modifier {
			clear(e.sel.highlighted)
		}
		e.sel.state = StateIdle
		return
	}
	if e.sel.modifier {
		if _, ok := e.sel.highlighted[idx]; ok {
			delete(e.sel.highlighted, idx)
		} else {
			e.sel.highlighted[idx] = struct{}{}
		}
	} else {
		clear(e.sel.highlighted)
		e.sel.highlighted[idx] = struct{}{}
	}
	e.canvas[idx] = e.paint
	e.sel.state = StateHighlighted
}

func (e *Editor) highlightRect(r Rect) {
	layout := e.Layout()
	clear(e.sel.highlighted)
	for i := range e.sel.base {
		e.sel.highlighted[i] = struct{}{}
	}
	for i := 0; i < e.dims.Cells(); i++ {
		if layout.CellBounds(i).Intersects(r) {
			e.sel.highlighted[i] = struct{}{}
		}
	}
}
