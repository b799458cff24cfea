// Package main is the entry point for cubeview.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/engine/window/sdlplatform"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/viewer"
	"github.com/Faultbox/cubeview/internal/viewer/ui"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	if config.ShowVersion() {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	cfg, savePath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== cubeview ===", zap.String("version", config.Version))
	logger.Sugar.Debugf("Config: %+v", cfg)

	var startDir string
	if cfg.App.LastFile != "" {
		startDir = filepath.Dir(cfg.App.LastFile)
	}

	app, err := viewer.New(cfg, sdlplatform.New(), ui.NewDialogPicker(startDir))
	if err != nil {
		logger.Fatal("failed to create viewer", zap.Error(err))
	}
	app.PersistTo(savePath)

	if err := app.Run(); err != nil {
		app.Close()
		logger.Fatal("viewer error", zap.Error(err))
	}
	app.Close()

	logger.Info("viewer closed normally")
}
