package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/five82/pullrefresh/internal/refresh"
)

// TextAnimator renders one edge's refresh component as a line of text (top
// and bottom) or a single glyph column (left and right). Distances are in
// terminal cells.
type TextAnimator struct {
	edge      refresh.Edge
	trigger   float64
	extent    float64
	state     refresh.State
	progress  float64
	animating bool
	spin      *spinner.Model
}

// NewTextAnimator returns an animator for edge that shares spin with the
// other edges.
func NewTextAnimator(edge refresh.Edge, trigger, extent float64, spin *spinner.Model) *TextAnimator {
	return &TextAnimator{edge: edge, trigger: trigger, extent: extent, spin: spin}
}

func (a *TextAnimator) Trigger() float64 { return a.trigger }
func (a *TextAnimator) Extent() float64 { return a.extent }

func (a *TextAnimator) AnimationBegin(*refresh.Component) { a.animating = true }
func (a *TextAnimator) AnimationEnd(*refresh.Component) { a.animating = false }

func (a *TextAnimator) StateChanged(_ *refresh.Component, s refresh.State) {
	a.state = s
	if s != refresh.StatePulling && s != refresh.StateArmed {
		a.progress = 0
	}
}

func (a *TextAnimator) ProgressChanged(_ *refresh.Component, p float64) { a.progress = p }

// State is the last state the component reported.
func (a *TextAnimator) State() refresh.State { return a.state }

// Progress is the last pull progress reported, 1 at the trigger distance.
func (a *TextAnimator) Progress() float64 { return a.progress }

// Animating reports whether a refresh cycle is between begin and end.
func (a *TextAnimator) Animating() bool { return a.animating }

func (a *TextAnimator) spinnerFrame() string {
	if a.spin == nil {
		return "*"
	}
	return a.spin.View()
}

// Label is the text shown in the header or footer row.
func (a *TextAnimator) Label() string {
	switch a.edge {
	case refresh.EdgeTop, refresh.EdgeLeft:
		switch a.state {
		case refresh.StateArmed:
			return "Release to refresh"
		case refresh.StateRefreshing:
			return a.spinnerFrame() + " Loading..."
		case refresh.StatePulling:
			return fmt.Sprintf("Pull to refresh %3.0f%%", min(a.progress, 1)*100)
		default:
			return "Pull to refresh"
		}
	default:
		switch a.state {
		case refresh.StateRefreshing:
			return a.spinnerFrame() + " Loading more"
		case refresh.StateNoMoreData:
			return "No more data"
		case refresh.StateArmed:
			return "Release to load more"
		case refresh.StatePulling:
			return fmt.Sprintf("Keep going for more %3.0f%%", min(a.progress, 1)*100)
		default:
			return "Scroll for more"
		}
	}
}

// Glyph is the single cell drawn in a side column.
func (a *TextAnimator) Glyph() string {
	switch a.state {
	case refresh.StateRefreshing:
		return a.spinnerFrame()
	case refresh.StateArmed:
		return "»"
	case refresh.StateNoMoreData:
		return "│"
	}
	if a.edge == refresh.EdgeRight {
		return "‹"
	}
	return "›"
}
