package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/preconfig/internal/ctxlog"
	"github.com/vk/preconfig/internal/format"
	"github.com/vk/preconfig/internal/template"
)

// App encapsulates one transpiler invocation's dependencies and lifecycle.
type App struct {
	inR    io.Reader
	outW   io.Writer
	logger *slog.Logger
}

// New constructs an App with an isolated logger writing to logW.
func New(inR io.Reader, outW, logW io.Writer, cfg *Config) *App {
	return &App{
		inR:    inR,
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, logW),
	}
}

// Run transpiles one template according to cfg: load, resolve, format,
// write.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, a.logger)

	tpl, err := a.load(ctx, cfg)
	if err != nil {
		return err
	}

	resolved, err := tpl.Resolve(ctx, cfg.Parameters)
	if err != nil {
		return err
	}
	a.logger.Debug("Template resolved.", "bytes", len(resolved))

	out, err := format.Format(resolved, cfg.Format)
	if err != nil {
		return err
	}

	return a.write(cfg, out)
}

func (a *App) load(ctx context.Context, cfg *Config) (*template.Template, error) {
	if cfg.InputPath != "" {
		a.logger.Debug("Loading template file.", "path", cfg.InputPath)
		return template.NewFromFile(ctx, cfg.InputPath)
	}

	a.logger.Debug("Reading template from stdin.")
	text, err := io.ReadAll(a.inR)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return template.New(string(text))
}

func (a *App) write(cfg *Config, out string) error {
	if cfg.OutputPath != "" {
		a.logger.Debug("Writing output file.", "path", cfg.OutputPath)
		return os.WriteFile(cfg.OutputPath, []byte(out), 0o644)
	}
	_, err := io.WriteString(a.outW, out)
	return err
}
