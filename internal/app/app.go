package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/verton/internal/config"
	"github.com/specialistvlad/verton/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	settings   config.Settings
	httpServer *http.Server
}

// NewApp resolves the effective settings (defaults, then the settings file,
// then command line overrides) and builds the app's own logger from them.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	ctx := context.Background()

	settings := config.Default()
	if cfg.SettingsPath != "" {
		loaded, err := loader.Load(ctx, cfg.SettingsPath, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = loaded
	}
	settings = cfg.Overrides.Apply(settings)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger := newLogger(settings.Log, outW)
	logger.Debug("Logger configured successfully.", "settings_path", cfg.SettingsPath)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		settings: settings,
	}, nil
}

// Settings returns the effective settings.
func (a *App) Settings() config.Settings {
	return a.settings
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
