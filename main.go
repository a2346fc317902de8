package main

import (
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	"spritepad/frontend"
	spriteApp "spritepad/internal/app"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		spriteApp.ServeMCP()
		return
	}

	assets, err := frontend.Dist()
	if err != nil {
		println("Error:", err.Error())
		return
	}
	app := spriteApp.New()

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err = wails.Run(&options.App{
		Title:     "spritepad",
		Width:     1024,
		Height:    768,
		MinWidth:  480,
		MinHeight: 480,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 15, G: 15, B: 20, A: 1},
		Menu:             appMenu,
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: mac.TitleBarHiddenInset(),
			About: &mac.AboutInfo{
				Title:   "spritepad",
				Message: "Frame-by-frame pixel art editor",
			},
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
