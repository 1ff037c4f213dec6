// Package app is the composition root of the pullrefresh demo.
//
// # Overview
//
// Run loads the TOML configuration, applies command-line overrides, opens
// the structured log, loads the last-refresh dates and starts the Bubble Tea
// UI. It blocks until the user quits or the context is cancelled.
//
// # Components
//
//   - app.go: Run, option overrides, feed source selection and logger setup
//   - autosave.go: background goroutine that persists refresh dates
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> newLogger()          slog text handler on the log file
//	       ├─────> refreshdate.Load()   Last-refresh dates per identifier
//	       ├─────> StartAutosave()      Persist dates while running
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Autosave Loop:
//	┌─────────────────────────────────────────┐
//	│ StartAutosave() goroutine               │
//	│                                         │
//	│  every interval:                        │
//	│    if store.Dirty() → store.Save()      │
//	│    on failure back off (max 30s)        │
//	│                                         │
//	│  on cancel: final save, close done      │
//	└─────────────────────────────────────────┘
//
// # Logging
//
// The terminal belongs to the TUI, so logs go to the configured log_path
// through tea.LogToFile and a slog.TextHandler. Without a log path they are
// discarded. The --debug flag lowers the level to debug, which traces every
// refresh start, deferred transition and applied page.
package app
