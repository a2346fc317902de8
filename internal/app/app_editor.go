package app

import (
	"errors"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"spritepad/internal/domain"
	"spritepad/internal/editor"
	"spritepad/internal/export"
)

// ============================================================
// Grid
// ============================================================

func (a *App) GetView() editor.View {
	return a.editor.View()
}

// SetDimensions applies the width/height inputs. Invalid input shows a
// blocking message and leaves the grid and frames as they were.
func (a *App) SetDimensions(width, height string) (editor.View, error) {
	view, err := a.editor.SetDimensions(a.ctx, width, height)
	var dimErr *domain.DimensionError
	if errors.As(err, &dimErr) {
		a.alert(wailsRuntime.WarningDialog, "Invalid grid size", dimErr.Error())
		return view, nil
	}
	return view, err
}

func (a *App) SetPaintColor(color string) (editor.View, error) {
	return a.editor.SetPaintColor(a.ctx, color)
}

func (a *App) PaintCell(index int) (editor.View, error) {
	return a.editor.PaintCell(a.ctx, index)
}

// ============================================================
// Selection
// ============================================================

func (a *App) SetModifier(held bool) {
	a.editor.SetModifier(held)
}

func (a *App) PointerDown(x, y int) editor.View {
	return a.editor.PointerDown(a.ctx, x, y)
}

func (a *App) PointerMove(x, y int) editor.View {
	return a.editor.PointerMove(a.ctx, x, y)
}

func (a *App) PointerUp(x, y int) editor.View {
	return a.editor.PointerUp(a.ctx, x, y)
}

func (a *App) ClearSelection() editor.View {
	return a.editor.ClearSelection(a.ctx)
}

// ============================================================
// Frames
// ============================================================

func (a *App) CreateFrame() editor.View {
	return a.editor.CreateFrame(a.ctx)
}

func (a *App) DuplicateFrame() editor.View {
	return a.editor.DuplicateFrame(a.ctx)
}

func (a *App) SwitchFrame(index int) (editor.View, error) {
	return a.editor.SwitchFrame(a.ctx, index)
}

// ============================================================
// Export
// ============================================================

// ExportFrames sends every frame to the export endpoint in the background.
// The endpoint's answer is shown in a message box.
func (a *App) ExportFrames() {
	go func() {
		res, err := a.editor.Export(a.ctx)
		msg, show := exportOutcome(res, err)
		if err != nil && !errors.Is(err, editor.ErrNoActiveFrame) {
			wailsRuntime.LogErrorf(a.ctx, "export frames: %v", err)
		}
		if show {
			a.alert(wailsRuntime.InfoDialog, "Export", msg)
		}
	}()
}

// exportOutcome decides what the user sees after an export attempt. Only
// an HTTP response is shown, whatever its status; missing frames and
// network failures are silent.
func exportOutcome(res *export.Result, err error) (string, bool) {
	if err != nil || res == nil {
		return "", false
	}
	return res.Message, true
}

func (a *App) alert(kind wailsRuntime.DialogType, title, message string) {
	if a.ctx == nil {
		return
	}
	_, err := wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		wailsRuntime.LogErrorf(a.ctx, "message dialog: %v", err)
	}
}
