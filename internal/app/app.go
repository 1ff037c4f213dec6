package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pullrefresh/internal/clock"
	"github.com/five82/pullrefresh/internal/config"
	"github.com/five82/pullrefresh/internal/feed"
	"github.com/five82/pullrefresh/internal/refreshdate"
	"github.com/five82/pullrefresh/internal/ui"
)

const (
	generatedPages = 5
	generatedWidth = 120
)

// Options configure the application. Zero values keep the configured
// settings.
type Options struct {
	ConfigPath string
	FeedPath   string
	FeedURL    string
	PageSize   int
	Latency    time.Duration // negative keeps the configured latency
	Debug      bool
}

// Run boots the demo TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger, closeLog, err := newLogger(cfg.LogPath, level)
	if err != nil {
		return err
	}
	defer closeLog()

	clk := clock.Real()
	dates, err := refreshdate.Load(clk, cfg.StatePath)
	if err != nil {
		// An unreadable state file only costs the last-refresh dates.
		logger.Warn("refresh state unreadable, starting empty", "path", cfg.StatePath, "error", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	saved := StartAutosave(runCtx, dates, defaultSaveInterval, logger)
	defer func() {
		cancel()
		<-saved
	}()

	src, err := newSource(cfg, clk)
	if err != nil {
		return fmt.Errorf("init feed: %w", err)
	}

	logger.Info("starting", "feed", describeSource(cfg), "page_size", cfg.PageSize, "identifier", cfg.RefreshIdentifier)
	err = ui.Run(ui.Options{
		Context: runCtx,
		Config:  cfg,
		Source:  src,
		Dates:   dates,
		Clock:   clk,
		Logger:  logger,
		OnTheme: func(name string) { logger.Info("theme changed", "theme", name) },
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func applyOverrides(cfg *config.Config, opts Options) {
	if p := strings.TrimSpace(opts.FeedPath); p != "" {
		cfg.FeedPath = p
	}
	if u := strings.TrimSpace(opts.FeedURL); u != "" {
		cfg.FeedURL = u
	}
	if opts.PageSize > 0 {
		cfg.PageSize = opts.PageSize
	}
	if opts.Latency >= 0 {
		cfg.Latency = opts.Latency
	}
}

// newSource picks the feed: a remote URL first, then a local file, then
// generated lines.
func newSource(cfg config.Config, clk clock.Clock) (feed.Source, error) {
	switch {
	case cfg.FeedURL != "":
		return feed.NewHTTP(cfg.FeedURL)
	case cfg.FeedPath != "":
		return feed.File{Path: cfg.FeedPath}, nil
	}
	return feed.Generated{
		Total: generatedPages * cfg.PageSize,
		Width: generatedWidth,
		Clock: clk,
	}, nil
}

func describeSource(cfg config.Config) string {
	if cfg.FeedURL != "" {
		return cfg.FeedURL
	}
	if cfg.FeedPath != "" {
		return cfg.FeedPath
	}
	return "generated"
}

// newLogger writes structured logs to path. The terminal belongs to the TUI,
// so without a path logs are discarded.
func newLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := tea.LogToFile(path, "pullrefresh")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = file.Close() }, nil
}
