package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/vk/tunegridgo/internal/config"
	"github.com/vk/tunegridgo/internal/ctxlog"
	"github.com/vk/tunegridgo/internal/launch"
	"github.com/vk/tunegridgo/internal/model"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	manifest *model.Manifest
	launcher *launch.Launcher
	dryRun   bool
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded,
// validated manifest. A failure to load the manifest is a fatal startup
// error and panics; the entrypoint recovers it.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Tracking credentials may live in a .env file. An explicitly named file
	// must exist; the implicit default is best-effort.
	if appConfig.EnvFile != "" {
		if err := godotenv.Load(appConfig.EnvFile); err != nil {
			panic(fmt.Errorf("failed to load env file: %w", err))
		}
		logger.Debug("Env file loaded.", "path", appConfig.EnvFile)
	} else if err := godotenv.Load(); err == nil {
		logger.Debug("Default .env file loaded.")
	}

	manifest, err := loader.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load manifest: %w", err))
	}
	logger.Debug("Manifest loaded and translated into unified model.", "runs", len(manifest.Runs))

	if appConfig.RunName != "" {
		manifest, err = manifest.Select(appConfig.RunName)
		if err != nil {
			panic(err)
		}
		logger.Debug("Manifest narrowed to selected run.", "run", appConfig.RunName, "runs", len(manifest.Runs))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		manifest: manifest,
		launcher: launch.New(appConfig.DryRun),
		dryRun:   appConfig.DryRun,
	}
}

// Manifest returns the application's loaded manifest. This is primarily for testing.
func (a *App) Manifest() *model.Manifest {
	return a.manifest
}
