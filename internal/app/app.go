package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/irlink/internal/catalog"
	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/linker"
	"github.com/specialistvlad/irlink/internal/symdef"
)

// App holds a configured registry and linker.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	linker *linker.Linker
}

// NewApp builds the registry from the built-in catalog plus every extension
// catalog on the configured path, then freezes it. Reports go to outW and
// logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.Options, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := symdef.New()
	exts, err := catalog.Load(ctx, cfg.Options.CatalogPaths()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}
	if err := catalog.Register(ctx, reg, exts...); err != nil {
		return nil, fmt.Errorf("failed to register catalogs: %w", err)
	}
	logger.Debug("Registry ready.", "definitions", len(reg.Definitions()), "extensions", len(reg.Extensions()))

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		linker: linker.New(reg, linker.Options{Workers: int(cfg.Options.Workers.Int64)}),
	}, nil
}

// Registry returns the frozen registry. This is primarily for testing.
func (a *App) Registry() *symdef.Registry {
	return a.linker.Registry()
}
