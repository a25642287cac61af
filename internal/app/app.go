package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
	"github.com/randalmurphal/varsubst/pkg/varsubst/observability"
	"github.com/randalmurphal/varsubst/pkg/varsubst/store"
)

// App is one configured varsubst invocation.
type App struct {
	cfg      *Config
	settings Settings

	in   io.Reader
	outW io.Writer
	errW io.Writer

	logger  *slog.Logger
	engine  *varsubst.Engine
	store   store.Store
	set     string
	env     varsubst.Resolver
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	warnColor *color.Color
	errColor  *color.Color
}

// New loads the settings file, if any, and merges it with cfg.
func New(in io.Reader, outW, errW io.Writer, cfg *Config) (*App, error) {
	settings := DefaultSettings()
	if cfg.SettingsPath != "" {
		s, err := LoadSettings(cfg.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		settings = s
	}

	level := firstNonEmpty(cfg.LogLevel, settings.LogLevel)
	format := firstNonEmpty(cfg.LogFormat, settings.LogFormat)

	a := &App{
		cfg:       cfg,
		settings:  settings,
		in:        in,
		outW:      outW,
		errW:      errW,
		logger:    newLogger(level, format, errW),
		set:       firstNonEmpty(cfg.StoreSet, settings.Set, store.DefaultSet),
		metrics:   observability.NewMetricsRecorder(),
		spans:     observability.NewSpanManager(),
		warnColor: color.New(color.FgYellow),
		errColor:  color.New(color.FgRed, color.Bold),
	}
	if !cfg.NoEnv && !settings.NoEnv {
		a.env = varsubst.Env()
	}

	opts, err := a.engineOptions()
	if err != nil {
		return nil, err
	}
	a.engine = varsubst.NewEngine(opts...)
	a.logger.Debug("app configured",
		slog.String("missing", a.engine.Options().MissingAction.String()),
		slog.Bool("short_syntax", a.engine.Options().ShortSyntax),
		slog.Bool("escapes", a.engine.Options().Escapes),
		slog.Bool("env", a.env != nil),
	)
	return a, nil
}

// engineOptions applies flags over settings.
func (a *App) engineOptions() ([]varsubst.Option, error) {
	missing, err := varsubst.ParseMissingAction(a.settings.Missing)
	if err != nil {
		return nil, err
	}
	switch {
	case a.cfg.FailOnUndefined:
		missing = varsubst.MissingError
	case a.cfg.BlankUndefined:
		missing = varsubst.MissingEmpty
	}
	return []varsubst.Option{
		varsubst.WithMissingAction(missing),
		varsubst.WithShortSyntax(a.settings.ShortSyntax || a.cfg.ShortSyntax),
		varsubst.WithEscapes(a.settings.Escapes && !a.cfg.NoEscapes),
	}, nil
}

// Run executes the configured mode until done or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.PrintSchema {
		return a.printSchema()
	}

	if path := firstNonEmpty(a.cfg.StorePath, a.settings.Store); path != "" {
		s, err := store.NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer s.Close()
		a.store = s
	}

	switch {
	case a.cfg.Store != nil:
		return a.runStore(*a.cfg.Store)
	case a.cfg.ListNames:
		return a.listNames()
	case a.cfg.Watch:
		return a.watch(ctx)
	default:
		return a.render(ctx)
	}
}

func (a *App) printSchema() error {
	schema, err := SettingsSchema()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	_, err = fmt.Fprintf(a.outW, "%s\n", schema)
	return err
}

func (a *App) warnf(format string, args ...any) {
	a.warnColor.Fprintf(a.errW, "warning: "+format+"\n", args...)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
