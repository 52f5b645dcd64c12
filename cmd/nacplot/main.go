package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/zap"

	"github.com/user/nacplot/internal/session"
)

//go:embed all:frontend/public
var assets embed.FS

func main() {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	logger, err := config.Build()
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer func() { _ = logger.Sync() }()

	app := NewApp(session.New(session.WithLogger(logger)), logger) // Defined in app.go

	err = wails.Run(&options.App{
		Title:  "nacplot",
		Width:  900,
		Height: 720,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 255},
		OnStartup:        app.Startup,
		OnDomReady:       app.DomReady,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Fatal("Error running Wails app", zap.Error(err))
	}
	if err := app.Err(); err != nil {
		logger.Fatal("Run aborted", zap.Error(err))
	}
}
