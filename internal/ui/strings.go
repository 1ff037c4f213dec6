package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// statusError flattens err onto a single line and cuts it to width cells so
// it fits beside the edge states in the status bar.
func statusError(err error, width int) string {
	if err == nil {
		return ""
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if width <= 0 {
		return msg
	}
	return ansi.Truncate(msg, width, "…")
}
