package service_test

import (
	"context"
	"errors"
	"testing"

	"spritepad/internal/domain"
	"spritepad/internal/editor"
	"spritepad/internal/export"
	"spritepad/internal/service"
)

type fakeExporter struct {
	calls  int
	frames []domain.Frame
	result *export.Result
	err    error
}

func (f *fakeExporter) Send(_ context.Context, frames []domain.Frame) (*export.Result, error) {
	f.calls++
	f.frames = frames
	return f.result, f.err
}

func TestEditorService_PaintAndExport(t *testing.T) {
	ctx := context.Background()
	exp := &fakeExporter{result: &export.Result{StatusCode: 200, Message: "File saved successfully"}}
	emitter := &service.MockEmitter{}
	svc := service.NewEditorService(editor.Options{}, exp, emitter)

	if _, err := svc.SetPaintColor(ctx, "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PaintCell(ctx, 40); err != nil {
		t.Fatal(err)
	}
	view := svc.View()
	if view.Cells[40] != "#ff0000" {
		t.Errorf("view not updated: %s", view.Cells[40])
	}

	res, err := svc.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() {
		t.Errorf("unexpected result %+v", res)
	}
	if exp.calls != 1 || exp.frames[0][40] != (domain.Color{R: 255}) {
		t.Errorf("exporter got wrong frames: %+v", exp.frames)
	}
	if emitter.Count(service.EventEditorChanged) != 2 {
		t.Errorf("expected 2 change events, got %d", emitter.Count(service.EventEditorChanged))
	}
}

func TestEditorService_ExportWithoutFrameSkipsEndpoint(t *testing.T) {
	ctx := context.Background()
	exp := &fakeExporter{}
	svc := service.NewEditorService(editor.Options{}, exp, nil)

	if _, err := svc.SetDimensions(ctx, "4", "4"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Export(ctx); !errors.Is(err, editor.ErrNoActiveFrame) {
		t.Errorf("expected ErrNoActiveFrame, got %v", err)
	}
	if exp.calls != 0 {
		t.Error("exporter should not be called")
	}
}

func TestEditorService_InvalidInputEmitsNothing(t *testing.T) {
	ctx := context.Background()
	emitter := &service.MockEmitter{}
	svc := service.NewEditorService(editor.Options{}, nil, emitter)

	if _, err := svc.SetDimensions(ctx, "0", "4"); !errors.Is(err, domain.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := svc.SetPaintColor(ctx, "#nothex"); err == nil {
		t.Error("expected color parse error")
	}
	if _, err := svc.SwitchFrame(ctx, 3); !errors.Is(err, editor.ErrFrameOutOfRange) {
		t.Errorf("expected ErrFrameOutOfRange, got %v", err)
	}
	if len(emitter.Events) != 0 {
		t.Errorf("rejected input emitted %d events", len(emitter.Events))
	}
}

func TestEditorService_DragSelectRestoresModifier(t *testing.T) {
	ctx := context.Background()
	svc := service.NewEditorService(editor.Options{CellSize: 50}, nil, nil)
	_, _ = svc.SetPaintColor(ctx, "#00ff00")

	view := svc.DragSelect(ctx, 0, 0, 99, 49, true)
	if len(view.Highlighted) != 2 || view.Cells[0] != "#00ff00" || view.Cells[1] != "#00ff00" {
		t.Errorf("unexpected drag result: %v %v", view.Highlighted, view.Cells[:2])
	}

	// modifier was restored to released, so a plain drag replaces the highlight
	view = svc.DragSelect(ctx, 400, 0, 410, 10, false)
	if len(view.Highlighted) != 1 || view.Highlighted[0] != 8 {
		t.Errorf("expected only cell 8, got %v", view.Highlighted)
	}
}

func TestEditorService_FrameButtons(t *testing.T) {
	ctx := context.Background()
	svc := service.NewEditorService(editor.Options{}, nil, nil)

	svc.CreateFrame(ctx)
	view := svc.DuplicateFrame(ctx)
	if len(view.Frames) != 3 || view.Active != 2 {
		t.Fatalf("unexpected frames %+v active=%d", view.Frames, view.Active)
	}
	view, err := svc.SwitchFrame(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.Active != 0 || !view.Frames[0].Active {
		t.Errorf("expected frame 0 active, got %+v", view.Frames)
	}
}

func TestEditorService_ClearSelection(t *testing.T) {
	ctx := context.Background()
	svc := service.NewEditorService(editor.Options{CellSize: 50}, nil, nil)

	svc.DragSelect(ctx, 0, 0, 99, 49, false)
	view := svc.ClearSelection(ctx)
	if len(view.Highlighted) != 0 {
		t.Errorf("expected empty highlight, got %v", view.Highlighted)
	}
}
