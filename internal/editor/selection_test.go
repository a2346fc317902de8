package editor_test

import (
	"image"
	"reflect"
	"testing"

	"spritepad/internal/domain"
	"spritepad/internal/editor"
)

func newPainter(t *testing.T) *editor.Editor {
	t.Helper()
	e := editor.New(editor.Options{CellSize: 50})
	e.SetPaintColor(red)
	return e
}

func assertHighlighted(t *testing.T, e *editor.Editor, want []int) {
	t.Helper()
	got := e.Highlighted()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("highlighted = %v, want %v", got, want)
	}
}

func TestDrag_CoversExactlyTwoCells(t *testing.T) {
	e := newPainter(t)

	// Pixels 0-99 by 0-49 are exactly the boxes of cells 0 and 1.
	e.PointerDown(image.Pt(0, 0))
	e.PointerMove(image.Pt(99, 49))
	assertHighlighted(t, e, []int{0, 1})
	e.PointerUp(image.Pt(99, 49))

	if e.SelectionState() != editor.StateIdle {
		t.Errorf("expected idle after drag, got %s", e.SelectionState())
	}
	canvas := e.Canvas()
	for i, c := range canvas {
		want := domain.DefaultBackground
		if i == 0 || i == 1 {
			want = red
		}
		if c != want {
			t.Errorf("cell %d = %v, want %v", i, c, want)
		}
	}
}

func TestDrag_EdgeTouchCounts(t *testing.T) {
	e := newPainter(t)
	e.PointerDown(image.Pt(0, 0))
	e.PointerMove(image.Pt(100, 49))
	assertHighlighted(t, e, []int{0, 1, 2})
}

func TestDrag_ReversedCorners(t *testing.T) {
	e := newPainter(t)
	e.PointerDown(image.Pt(120, 70))
	e.PointerMove(image.Pt(60, 10))
	// columns 1-2, rows 0-1 on a 9-wide grid
	assertHighlighted(t, e, []int{1, 2, 10, 11})
}

func TestDrag_TracksCurrentRectangleOnly(t *testing.T) {
	e := newPainter(t)
	e.PointerDown(image.Pt(10, 10))
	e.PointerMove(image.Pt(140, 140))
	if len(e.Highlighted()) != 9 {
		t.Fatalf("expected 3x3 block, got %v", e.Highlighted())
	}
	e.PointerMove(image.Pt(20, 20))
	assertHighlighted(t, e, []int{0})
	e.PointerMove(image.Pt(20, 20))
	assertHighlighted(t, e, []int{0})
}

func TestDrag_NewDragClearsPreviousHighlight(t *testing.T) {
	e := newPainter(t)
	e.SelectRect(image.Pt(0, 0), image.Pt(60, 10))
	assertHighlighted(t, e, []int{0, 1})

	e.PointerDown(image.Pt(400, 400))
	assertHighlighted(t, e, nil)
}

func TestDrag_AdditiveUnionsWithPriorHighlight(t *testing.T) {
	e := newPainter(t)
	e.SelectRect(image.Pt(0, 0), image.Pt(60, 10))

	e.SetModifier(true)
	e.PointerDown(image.Pt(400, 0))
	e.PointerMove(image.Pt(410, 10))
	assertHighlighted(t, e, []int{0, 1, 8})

	// shrinking the additive rectangle never drops the earlier cells
	e.PointerMove(image.Pt(400, 0))
	assertHighlighted(t, e, []int{0, 1, 8})
	e.PointerUp(image.Pt(410, 10))

	if e.Canvas()[8] != red {
		t.Error("additive drag did not paint its cells")
	}
}

func TestClick_PlainSelectsSingleCell(t *testing.T) {
	e := newPainter(t)
	e.SelectRect(image.Pt(0, 0), image.Pt(60, 10))

	e.PointerDown(image.Pt(225, 225))
	e.PointerUp(image.Pt(225, 225))

	assertHighlighted(t, e, []int{40})
	if e.SelectionState() != editor.StateHighlighted {
		t.Errorf("expected highlighted state, got %s", e.SelectionState())
	}
	if e.Canvas()[40] != red {
		t.Error("click did not paint the cell")
	}
}

func TestClick_ModifierToggles(t *testing.T) {
	e := newPainter(t)
	e.SetModifier(true)

	e.PointerDown(image.Pt(5, 5))
	e.PointerUp(image.Pt(5, 5))
	e.PointerDown(image.Pt(55, 5))
	e.PointerUp(image.Pt(55, 5))
	assertHighlighted(t, e, []int{0, 1})

	e.PointerDown(image.Pt(5, 5))
	e.PointerUp(image.Pt(5, 5))
	assertHighlighted(t, e, []int{1})
	if e.Canvas()[0] != red {
		t.Error("toggling a cell still paints it")
	}
}

func TestClick_OutsideGrid(t *testing.T) {
	e := newPainter(t)
	e.PointerDown(image.Pt(-5, 3))
	e.PointerUp(image.Pt(-5, 3))
	assertHighlighted(t, e, nil)
	if e.SelectionState() != editor.StateIdle {
		t.Errorf("expected idle, got %s", e.SelectionState())
	}
}

func TestPointerMove_IgnoredWhenIdle(t *testing.T) {
	e := newPainter(t)
	e.PointerMove(image.Pt(100, 100))
	e.PointerUp(image.Pt(100, 100))
	assertHighlighted(t, e, nil)
	if !e.Canvas().Equal(domain.NewFrame(e.Dimensions(), domain.DefaultBackground)) {
		t.Error("stray pointer events painted cells")
	}
}

func TestLayout_Origin(t *testing.T) {
	e := editor.New(editor.Options{CellSize: 10, Origin: image.Pt(100, 200)})
	l := e.Layout()
	if got := l.CellAt(image.Pt(105, 205)); got != 0 {
		t.Errorf("CellAt = %d, want 0", got)
	}
	if got := l.CellAt(image.Pt(99, 205)); got != -1 {
		t.Errorf("CellAt left of grid = %d, want -1", got)
	}
	b := l.CellBounds(10)
	if b.Min != image.Pt(110, 210) || b.Max != image.Pt(119, 219) {
		t.Errorf("CellBounds(10) = %+v", b)
	}
}

func TestClearHighlight(t *testing.T) {
	e := newPainter(t)
	e.SelectRect(image.Pt(0, 0), image.Pt(60, 10))
	assertHighlighted(t, e, []int{0, 1})

	e.ClearHighlight()
	assertHighlighted(t, e, nil)
	if e.Canvas()[0] != red {
		t.Error("clearing the highlight must not repaint cells")
	}
}
