package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pullrefresh/internal/refresh"
)

// maxErrorWidth keeps a fetch error from pushing the edge states off the
// status bar.
const maxErrorWidth = 48

// renderMain renders the status bar, the pane and the help bar.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderStatus renders the top bar: name, edge states and freshness.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	a := m.s.attachment

	parts := []string{styles.Logo.Render("pullrefresh")}
	if m.s.lastErr != nil {
		parts = append(parts, styles.DangerText.Render(statusError(m.s.lastErr, maxErrorWidth)))
	}
	parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d lines", len(m.s.lines))))
	for _, comp := range []*refresh.Component{a.Header(), a.Footer(), a.Left(), a.Right()} {
		if comp == nil {
			continue
		}
		label := fmt.Sprintf("%s:%s", comp.Edge(), comp.State())
		parts = append(parts, styles.StateStyle(comp.State()).Render(label))
	}
	if last, ok := a.LastRefreshDate(); ok {
		parts = append(parts, styles.MutedText.Render("updated "+last.Format("15:04:05")))
	}
	if a.Expired() {
		parts = append(parts, styles.AccentText.Render("stale"))
	}
	return styles.Header.Width(m.width).MaxHeight(1).Render(strings.Join(parts, "  "))
}

// renderBody draws the visible window of the pane. Rows above the content
// belong to the header, rows below to the footer; columns left and right of
// the content belong to the side components.
func (m Model) renderBody() string {
	bounds := m.s.pane.Bounds()
	w, h := int(bounds.Width), int(bounds.Height)
	if w <= 0 || h <= 0 {
		return ""
	}
	styles := m.theme.Styles()
	off := m.s.pane.ContentOffset()
	ox, oy := int(math.Round(off.X)), int(math.Round(off.Y))

	rows := make([]string, 0, h)
	for r := 0; r < h; r++ {
		y := oy + r
		switch {
		case y < 0:
			rows = append(rows, m.renderLeadingRow(styles, y, w))
		case y >= len(m.s.lines):
			rows = append(rows, m.renderTrailingRow(styles, y, w, h))
		default:
			rows = append(rows, m.renderContentRow(styles, y, ox, w))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderLeadingRow(styles Styles, y, w int) string {
	blank := styles.Region.Width(w).Render("")
	header := m.s.attachment.Header()
	if header == nil {
		return blank
	}
	anim := m.s.animators[refresh.EdgeTop]
	switch y {
	case -1:
		return styles.StateStyle(anim.State()).
			Width(w).MaxWidth(w).
			Align(lipgloss.Center).
			Render(anim.Label())
	case -2:
		last, ok := m.s.attachment.LastRefreshDate()
		if !ok {
			return blank
		}
		return styles.Region.Width(w).MaxWidth(w).
			Align(lipgloss.Center).
			Render("Last updated " + last.Format("15:04:05"))
	}
	return blank
}

func (m Model) renderTrailingRow(styles Styles, y, w, h int) string {
	blank := styles.Region.Width(w).Render("")
	if !m.s.loaded {
		if y == h/2 {
			return styles.Region.Width(w).Align(lipgloss.Center).Render("Waiting for feed...")
		}
		return blank
	}
	footer := m.s.attachment.Footer()
	if footer == nil || footer.Hidden() || y != int(footer.Frame().Origin.Y) {
		return blank
	}
	state := footer.State()
	if footer.Alpha() == 0 && state != refresh.StateRefreshing && state != refresh.StateNoMoreData {
		return blank
	}
	return styles.StateStyle(state).
		Width(w).MaxWidth(w).
		Align(lipgloss.Center).
		Render(m.s.animators[refresh.EdgeBottom].Label())
}

func (m Model) renderContentRow(styles Styles, y, ox, w int) string {
	line := m.s.row(y)
	contentW := int(m.s.pane.ContentSize().Width)

	leftCols := min(max(-ox, 0), w)
	start := max(ox, 0)
	end := min(ox+w, contentW, len(line))
	visible := max(end-start, 0)
	rightCols := max(w-leftCols-visible, 0)

	var b strings.Builder
	if leftCols > 0 {
		b.WriteString(m.renderSide(styles, refresh.EdgeLeft, leftCols))
	}
	if visible > 0 {
		b.WriteString(styles.Surface.Render(string(line[start:end])))
	}
	if rightCols > 0 {
		b.WriteString(m.renderSide(styles, refresh.EdgeRight, rightCols))
	}
	return b.String()
}

// renderSide draws an exposed side strip with the component's glyph in the
// cell next to the content.
func (m Model) renderSide(styles Styles, edge refresh.Edge, cols int) string {
	var comp *refresh.Component
	if edge == refresh.EdgeLeft {
		comp = m.s.attachment.Left()
	} else {
		comp = m.s.attachment.Right()
	}
	if comp == nil {
		return styles.Region.Render(strings.Repeat(" ", cols))
	}
	glyph := styles.StateStyle(comp.State()).Render(m.s.animators[edge].Glyph())
	pad := styles.Region.Render(strings.Repeat(" ", cols-1))
	if edge == refresh.EdgeLeft {
		return pad + glyph
	}
	return glyph + pad
}
