package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/actorlib"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *actor.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and actor-class
// registry. Extra modules supplement the built-in actor library.
func NewApp(outW io.Writer, cfg *Config, modules ...actor.Module) *App {
	// Logs go to stderr so the rendered netlist on stdout stays clean.
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	logger.Debug("Logger configured successfully.")

	reg := actor.NewRegistry(append([]actor.Module{actorlib.Module{}}, modules...)...)
	logger.Debug("Actor classes registered.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *actor.Registry {
	return a.registry
}
