package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Edge holds the distances, in terminal cells, for one refresh component.
type Edge struct {
	Trigger float64 `toml:"trigger"`
	Extent  float64 `toml:"extent"`
}

// Config captures everything the demo needs at startup.
type Config struct {
	StatePath         string
	LogPath           string
	FeedPath          string
	FeedURL           string
	PageSize          int
	Latency           time.Duration
	ExpiredInterval   time.Duration
	RefreshIdentifier string
	Theme             string

	Header Edge
	Footer Edge
	Left   Edge
	Right  Edge
}

const (
	defaultConfigPath  = "~/.config/pullrefresh/config.toml"
	defaultStatePath   = "~/.local/state/pullrefresh/refresh.toml"
	defaultPageSize    = 30
	defaultLatency     = 600 * time.Millisecond
	defaultExpired     = 5 * time.Minute
	defaultIdentifier  = "pullrefresh.feed"
	defaultTheme       = "Dracula"
	maxPageSize        = 10000
	defaultHeaderRows  = 2
	defaultFooterRows  = 1
	defaultSideColumns = 3
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		StatePath:         mustExpand(defaultStatePath),
		PageSize:          defaultPageSize,
		Latency:           defaultLatency,
		ExpiredInterval:   defaultExpired,
		RefreshIdentifier: defaultIdentifier,
		Theme:             defaultTheme,
		Header:            Edge{Trigger: 3, Extent: defaultHeaderRows},
		Footer:            Edge{Trigger: 2, Extent: defaultFooterRows},
		Left:              Edge{Trigger: 6, Extent: defaultSideColumns},
		Right:             Edge{Trigger: 6, Extent: defaultSideColumns},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		StatePath         string `toml:"state_path"`
		LogPath           string `toml:"log_path"`
		FeedPath          string `toml:"feed_path"`
		FeedURL           string `toml:"feed_url"`
		PageSize          int    `toml:"page_size"`
		LatencyMS         *int   `toml:"latency_ms"`
		ExpiredSeconds    *int   `toml:"expired_seconds"`
		RefreshIdentifier string `toml:"refresh_identifier"`
		Theme             string `toml:"theme"`
		Header            *Edge  `toml:"header"`
		Footer            *Edge  `toml:"footer"`
		Left              *Edge  `toml:"left"`
		Right             *Edge  `toml:"right"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if p := strings.TrimSpace(raw.StatePath); p != "" {
		cfg.StatePath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		cfg.LogPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.FeedPath); p != "" {
		cfg.FeedPath = mustExpand(p)
	}
	if u := strings.TrimSpace(raw.FeedURL); u != "" {
		cfg.FeedURL = u
	}
	if raw.PageSize > 0 {
		cfg.PageSize = min(raw.PageSize, maxPageSize)
	}
	if raw.LatencyMS != nil && *raw.LatencyMS >= 0 {
		cfg.Latency = time.Duration(*raw.LatencyMS) * time.Millisecond
	}
	if raw.ExpiredSeconds != nil && *raw.ExpiredSeconds >= 0 {
		cfg.ExpiredInterval = time.Duration(*raw.ExpiredSeconds) * time.Second
	}
	if id := strings.TrimSpace(raw.RefreshIdentifier); id != "" {
		cfg.RefreshIdentifier = id
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	cfg.Header = mergeEdge(cfg.Header, raw.Header)
	cfg.Footer = mergeEdge(cfg.Footer, raw.Footer)
	cfg.Left = mergeEdge(cfg.Left, raw.Left)
	cfg.Right = mergeEdge(cfg.Right, raw.Right)

	return cfg, nil
}

// mergeEdge takes positive values from override and keeps the defaults for
// the rest.
func mergeEdge(base Edge, override *Edge) Edge {
	if override == nil {
		return base
	}
	if override.Trigger > 0 {
		base.Trigger = override.Trigger
	}
	if override.Extent > 0 {
		base.Extent = override.Extent
	}
	return base
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
