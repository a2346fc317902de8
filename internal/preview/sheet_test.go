package preview_test

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"spritepad/internal/domain"
	"spritepad/internal/preview"
)

func TestPlan(t *testing.T) {
	frames := []domain.Frame{make(domain.Frame, 81), make(domain.Frame, 81)}
	l, err := preview.Plan(frames, preview.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if l.GridWidth != 9 || l.GridHeight != 9 || l.CellSize != preview.DefaultCellSize {
		t.Errorf("unexpected layout %+v", l)
	}
	w, h := l.SheetSize()
	if w != 2*9*8+1 || h != 72 {
		t.Errorf("unexpected sheet size %dx%d", w, h)
	}

	l, _ = preview.Plan(frames[:1], preview.Options{Width: 27, CellSize: 500})
	if l.GridHeight != 3 || l.CellSize != preview.MaxCellSize {
		t.Errorf("unexpected explicit layout %+v", l)
	}

	if _, err := preview.Plan(nil, preview.Options{}); !errors.Is(err, preview.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestPlan_RejectsOversizedSheets(t *testing.T) {
	small := []domain.Frame{make(domain.Frame, 4)}
	if _, err := preview.Plan(small, preview.Options{Width: 2000000, CellSize: 64}); !errors.Is(err, preview.ErrTooLarge) {
		t.Errorf("width beyond the cell count: expected ErrTooLarge, got %v", err)
	}

	many := make([]domain.Frame, 20)
	for i := range many {
		many[i] = make(domain.Frame, 400)
	}
	if _, err := preview.Plan(many, preview.Options{CellSize: preview.MaxCellSize}); !errors.Is(err, preview.ErrTooLarge) {
		t.Errorf("sheet over MaxPixels: expected ErrTooLarge, got %v", err)
	}
	if _, err := preview.Plan(many, preview.Options{CellSize: 4}); err != nil {
		t.Errorf("small cells should fit: %v", err)
	}
}

func TestRender_PaintsCells(t *testing.T) {
	red := domain.Color{R: 255}
	frames := []domain.Frame{
		{red, domain.DefaultBackground, domain.DefaultBackground, domain.DefaultBackground},
	}

	var buf bytes.Buffer
	if err := preview.Render(&buf, frames, preview.Options{Width: 2, CellSize: 10}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("unexpected bounds %v", b)
	}
	r, g, b, a := img.At(5, 5).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
		t.Errorf("cell 0 center = (%d,%d,%d,%d), want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
	r, _, _, a = img.At(15, 15).RGBA()
	if r != 0 || a>>8 != 255 {
		t.Errorf("cell 3 center should be opaque black")
	}
}
