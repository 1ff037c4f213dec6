// Package ui provides the terminal front end for pullrefresh.
//
// # Overview
//
// The UI is a bubbletea program that hosts one scrollable feed pane with a
// refresh component on each edge. Dragging past the top or left edge starts a
// pull-to-refresh, scrolling to the bottom or right edge loads more. The
// refresh state machines live in the refresh package; this package supplies
// the Container they attach to and renders what they report.
//
// # Package Structure
//
//   - pane.go: Pane, an in-memory scroll container implementing refresh.Container
//   - animator.go: TextAnimator, a label/glyph animator per edge
//   - session.go: feed loading, edge handlers and content sizing
//   - app.go: the bubbletea Model, message routing and Run
//   - view.go: status bar, body and edge rendering
//   - help.go: the key binding overlay
//   - keys.go: key bindings built on bubbles/key
//   - theme.go: color themes and lipgloss styles
//
// # Scheduling
//
// Refresh components never start goroutines. Every Pane.Schedule call is
// queued with a due time from the injected clock, and Pane.Commands turns the
// queue into tea.Tick commands that deliver a dueMsg. Update answers a dueMsg
// with Pane.RunDue, which runs due continuations in (due time, sequence)
// order. Fetches run as ordinary tea commands and come back as pageMsg.
//
// # Key Bindings
//
//   - k/j, up/down: drag the content down or up one row
//   - h/l, left/right: drag the content right or left one column
//   - space: release the drag
//   - g/G, home/end: jump to the top or bottom
//   - r/R: refresh the top or left edge programmatically
//   - n: toggle no-more-data on the trailing edges
//   - f: hide or show the footer
//   - T: cycle theme
//   - ?: help
//   - q or Ctrl+C: quit
//
// Mouse drags and the wheel drive the same pane.
package ui
