package app

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultSaveInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// saver is the part of refreshdate.Store the autosaver needs.
type saver interface {
	Dirty() bool
	Save() error
}

// StartAutosave launches a background goroutine that writes s whenever it
// has unsaved changes. Failed writes back off exponentially. When ctx is
// cancelled it makes a final save and closes the returned channel.
func StartAutosave(ctx context.Context, s saver, interval time.Duration, logger *slog.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultSaveInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				if s.Dirty() {
					if err := s.Save(); err != nil {
						logger.Error("final refresh state save failed", "error", err)
					}
				}
				return
			case <-timer.C:
			}
			if s.Dirty() {
				if err := s.Save(); err != nil {
					failures++
					logger.Warn("refresh state save failed", "error", err, "failures", failures)
				} else {
					failures = 0
				}
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
	return done
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
