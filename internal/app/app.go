package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/facetdev/facet/internal/api"
	"github.com/facetdev/facet/internal/config"
	"github.com/facetdev/facet/internal/controller"
	"github.com/facetdev/facet/internal/prefs"
	"github.com/facetdev/facet/internal/ui"
)

// Options configure the Facet application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/facet/prefs.toml
	UserID     string // profile to bind on startup; falls back to config/prefs
	PollEvery  int    // seconds; zero uses the config value
	DebugLog   string // path of a debug log file; empty disables logging
}

// Run boots the Facet TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logger, closeLog, err := newLogger(opts.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := api.NewClient(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("init profile client: %w", err)
	}

	ctrl := controller.New(client)

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	StartPoller(ctx, ctrl, interval, logger)

	userID := firstNonEmpty(opts.UserID, cfg.DefaultUser, userPrefs.LastUser)
	if userID != "" {
		ctrl.Bind(ctx, userID)
	}

	ctrl.OnSaved(func(p api.Profile) {
		logger.Info("profile saved", "id", p.ID, "updatedAt", p.UpdatedAt)
	})

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: ctrl,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger,
	}
	return ui.Run(uiOpts)
}

// newLogger builds a tinted slog logger writing to the given file. The TUI
// owns the terminal, so logs cannot go to stderr; with no path configured
// everything is discarded.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(tint.NewHandler(file, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}))
	return logger, func() { _ = file.Close() }, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
