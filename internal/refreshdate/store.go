// Package refreshdate keeps last-refresh dates and expiry intervals keyed by
// refresh identifier. Entries are persisted as TOML.
package refreshdate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pullrefresh/internal/clock"
)

const defaultStatePath = "~/.local/state/pullrefresh/refresh.toml"

// Entry is what is known about one identifier.
type Entry struct {
	LastRefresh     time.Time
	HasLastRefresh  bool
	ExpiredInterval time.Duration
	HasInterval     bool
}

// Store coordinates concurrent access to the entries. Reads from the UI and
// the autosave goroutine can overlap.
type Store struct {
	mu      sync.RWMutex
	clock   clock.Clock
	path    string
	entries map[string]Entry
	dirty   bool
}

// New returns an empty store that saves to path. An empty path uses the
// default location.
func New(clk clock.Clock, path string) *Store {
	if clk == nil {
		clk = clock.Real()
	}
	return &Store{clock: clk, path: path, entries: make(map[string]Entry)}
}

type fileEntry struct {
	LastRefresh    *time.Time `toml:"last_refresh,omitempty"`
	ExpiredSeconds *float64   `toml:"expired_seconds,omitempty"`
}

type fileFormat struct {
	Identifiers map[string]fileEntry `toml:"identifiers"`
}

// Load reads the store at path. A missing file is an empty store. A file that
// cannot be read or parsed also yields an empty store, together with the
// error so the caller can log it.
func Load(clk clock.Clock, path string) (*Store, error) {
	s := New(clk, path)

	resolved, err := resolvePath(path)
	if err != nil {
		return s, err
	}
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("open refresh state: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return s, fmt.Errorf("read refresh state: %w", err)
	}
	var raw fileFormat
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return s, fmt.Errorf("parse refresh state: %w", err)
	}

	for key, fe := range raw.Identifiers {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		var e Entry
		if fe.LastRefresh != nil {
			e.LastRefresh = *fe.LastRefresh
			e.HasLastRefresh = true
		}
		if fe.ExpiredSeconds != nil && *fe.ExpiredSeconds >= 0 {
			e.ExpiredInterval = time.Duration(*fe.ExpiredSeconds * float64(time.Second))
			e.HasInterval = true
		}
		s.entries[key] = e
	}
	return s, nil
}

// Save writes the store to its path, creating directories as needed.
func (s *Store) Save() error {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw := fileFormat{Identifiers: make(map[string]fileEntry, len(s.entries))}
	for key, e := range s.entries {
		var fe fileEntry
		if e.HasLastRefresh {
			t := e.LastRefresh
			fe.LastRefresh = &t
		}
		if e.HasInterval {
			secs := e.ExpiredInterval.Seconds()
			fe.ExpiredSeconds = &secs
		}
		raw.Identifiers[key] = fe
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	bytes, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal refresh state: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write refresh state: %w", err)
	}
	s.dirty = false
	return nil
}

// Dirty reports whether there are changes that have not been saved.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// LastRefresh returns the last refresh date recorded for key.
func (s *Store) LastRefresh(key string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.entries[key]
	return e.LastRefresh, e.HasLastRefresh
}

// SetLastRefresh records t as the last refresh date for key.
func (s *Store) SetLastRefresh(key string, t time.Time) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	e.LastRefresh = t
	e.HasLastRefresh = true
	s.entries[key] = e
	s.dirty = true
}

// ExpiredInterval returns the expiry interval recorded for key.
func (s *Store) ExpiredInterval(key string) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.entries[key]
	return e.ExpiredInterval, e.HasInterval
}

// SetExpiredInterval records the expiry interval for key. Negative values
// clear it.
func (s *Store) SetExpiredInterval(key string, d time.Duration) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	e.ExpiredInterval = d
	e.HasInterval = d >= 0
	if !e.HasInterval {
		e.ExpiredInterval = 0
	}
	s.entries[key] = e
	s.dirty = true
}

// Expired reports whether key needs refreshing: never refreshed, or
// refreshed longer ago than its interval. A key with a date but no interval
// never expires.
func (s *Store) Expired(key string) bool {
	s.mu.RLock()
	e := s.entries[key]
	s.mu.RUnlock()

	if !e.HasLastRefresh {
		return true
	}
	if !e.HasInterval {
		return false
	}
	return s.clock.Now().Sub(e.LastRefresh) > e.ExpiredInterval
}

// Clear forgets everything recorded for key.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		s.dirty = true
	}
}

// Snapshot returns a copy of all entries.
func (s *Store) Snapshot() map[string]Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dup := make(map[string]Entry, len(s.entries))
	for k, v := range s.entries {
		dup[k] = v
	}
	return dup
}

// Keys returns the known identifiers in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultStatePath)
	}
	return expandPath(path)
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
