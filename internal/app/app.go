package app

import (
	"context"
	"log"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"spritepad/internal/config"
	"spritepad/internal/domain"
	"spritepad/internal/editor"
	"spritepad/internal/export"
	"spritepad/internal/service"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	editor *service.EditorService
}

// New creates a new App with its editing session. The config is read here
// so the session exists before the frontend first asks for a view.
func New() *App {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("app: config: %v, using defaults", err)
		cfg = config.DefaultConfig(&config.Paths{})
	}
	a := &App{cfg: cfg}
	a.editor = newEditorService(cfg, &wailsEmitter{app: a})
	return a
}

// newEditorService builds the session shared by the window and MCP mode.
func newEditorService(cfg *config.Config, emitter service.EventEmitter) *service.EditorService {
	shape, err := export.ParseShape(cfg.Export.Shape)
	if err != nil {
		log.Printf("app: %v, using nested export shape", err)
		shape = export.ShapeNested
	}
	paint, err := domain.ParseColor(cfg.Grid.PaintColor)
	if err != nil {
		log.Printf("app: paint color: %v, using white", err)
		paint = domain.Color{R: 255, G: 255, B: 255}
	}
	opts := editor.Options{
		Width:        cfg.Grid.DefaultWidth,
		Height:       cfg.Grid.DefaultHeight,
		MaxDimension: cfg.Grid.MaxDimension,
		CellSize:     cfg.Grid.CellSize,
		PaintColor:   paint,
	}
	return service.NewEditorService(opts, export.NewClient(cfg.Export.URL, shape), emitter)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	wailsRuntime.LogInfof(ctx, "spritepad: exporting to %s", a.cfg.Export.URL)
}

// Shutdown is called when the app is closing. Editor state is not kept
// between runs.
func (a *App) Shutdown(ctx context.Context) {}

// wailsEmitter forwards service events to the frontend once the window
// exists.
type wailsEmitter struct {
	app *App
}

func (e *wailsEmitter) Emit(_ context.Context, event string, data any) {
	if e.app.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(e.app.ctx, event, data)
}
