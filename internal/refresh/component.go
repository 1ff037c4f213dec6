package refresh

import (
	"log/slog"
	"time"
)

// Handler runs when a refresh or load-more is actually triggered. The caller
// ends the cycle with StopRefreshing (or the Attachment helpers) once its
// work is done.
type Handler func()

type phase int

const (
	phaseIdle phase = iota
	phaseStarting
	phaseStopping
)

type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingStart
	pendingStop
)

// pendingTransition holds a start or stop requested while the opposite
// animation was still running.
type pendingTransition struct {
	kind pendingKind
	auto bool
}

// Component is the refresh state machine for one edge of a container. The
// same type serves all four edges; the edge decides whether it behaves as a
// pull-to-refresh (top, left) or a load-more (bottom, right) component.
//
// A Component is not safe for concurrent use. Every call, including the
// container's observer callbacks and scheduled continuations, must happen on
// the container's UI goroutine.
type Component struct {
	spec      edgeSpec
	container Container
	animator  Animator
	handler   Handler
	logger    *slog.Logger

	frame       Rect
	customFrame bool

	cancelObserve func()
	settled       bool
	detached      bool

	refreshing     bool
	autoRefreshing bool
	ignoring       bool
	phase          phase
	pending        pendingTransition

	previousOffset float64
	baseline       Insets
	bounces        bool

	state      State
	noMoreData bool
	hidden     bool
	alpha      float64
	identifier string
}

func newComponent(edge Edge, c Container, animator Animator, handler Handler, frame *Rect, logger *slog.Logger) *Component {
	if animator == nil {
		animator = DefaultAnimator(edge)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	comp := &Component{
		spec:      specFor(edge),
		container: c,
		animator:  animator,
		handler:   handler,
		logger:    logger.With("edge", edge.String()),
		alpha:     1,
	}
	if frame != nil {
		comp.frame = *frame
		comp.customFrame = true
	}
	comp.attach()
	return comp
}

// attach subscribes to the container and defers the baseline capture by one
// tick so the host has finished its own layout.
func (c *Component) attach() {
	if c.container == nil {
		return
	}
	c.cancelObserve = c.container.Observe(c.observe)
	c.container.Schedule(0, c.settle)
}

func (c *Component) settle() {
	if c.settled || c.detached || c.container == nil {
		return
	}
	c.baseline = c.container.ContentInset()
	c.bounces = c.container.Bounces()
	c.previousOffset = c.spec.offset(c.container.ContentOffset())
	c.settled = true
	if !c.spec.leading {
		c.reserveTrailing()
	}
	c.layout()
	c.logger.Debug("baseline captured",
		"inset", c.spec.inset(c.baseline),
		"offset", c.previousOffset)
}

// Detach stops any refresh, releases the inset the component reserved and
// stops observing the container. A start or stop animation still in flight
// is abandoned: its continuation neither calls the handler nor touches the
// container.
func (c *Component) Detach() {
	if c.detached {
		return
	}
	c.detached = true
	c.pending = pendingTransition{}
	if c.cancelObserve != nil {
		c.cancelObserve()
		c.cancelObserve = nil
	}
	if c.container != nil && c.settled {
		if c.refreshing || c.autoRefreshing || c.phase != phaseIdle {
			c.release()
		}
		if !c.spec.leading {
			insets := c.container.ContentInset()
			c.container.SetContentInset(c.spec.withInset(insets, c.spec.trailingInset(c.baseline)))
		}
	}
	c.logger.Debug("detached")
}

// release ends a refresh cycle without animation, putting the container
// back on the baseline.
func (c *Component) release() {
	cont := c.container
	if c.spec.leading {
		base := c.spec.inset(c.baseline)
		cont.SetContentInset(c.spec.withInset(cont.ContentInset(), base))
		if c.spec.offset(cont.ContentOffset()) < -base {
			cont.SetContentOffset(c.spec.withOffset(cont.ContentOffset(), -base))
		}
		cont.SetBounces(c.bounces)
	}
	if c.phase != phaseStopping {
		c.animator.AnimationEnd(c)
	}
	c.refreshing = false
	c.autoRefreshing = false
	c.phase = phaseIdle
	c.ignoring = false
	if !c.noMoreData {
		c.setState(StateIdle)
	}
}

func (c *Component) observe(change Change) {
	if c.ignoring || c.detached || !c.settled || c.container == nil {
		return
	}
	switch change {
	case ChangeContentSize:
		c.contentSizeChanged()
	case ChangeOffset, ChangeDragState:
		c.offsetChanged()
	}
}

func (c *Component) offsetChanged() {
	offset := c.spec.offset(c.container.ContentOffset())
	c.previousOffset = offset
	if c.spec.leading {
		c.pullOffsetChanged(offset)
		return
	}
	c.loadMoreOffsetChanged(offset)
}

func (c *Component) contentSizeChanged() {
	if c.spec.leading {
		return
	}
	c.layout()
}

func (c *Component) layout() {
	if c.container == nil {
		return
	}
	extent := c.animator.Extent()
	if c.customFrame {
		extent = c.spec.length(c.frame.Size)
	}
	r := c.spec.frame(extent, c.container.ContentSize(), c.container.Bounds(), c.baseline)
	if c.customFrame {
		r.Size = c.frame.Size
		if c.spec.axis == axisX {
			r.Origin.Y = c.frame.Origin.Y
		} else {
			r.Origin.X = c.frame.Origin.X
		}
	}
	c.frame = r
}

// StartRefreshing begins a refresh cycle. It is a no-op while a cycle is
// already running; a call made during the stop animation is deferred until
// that animation completes.
func (c *Component) StartRefreshing(auto bool) {
	if c.container == nil || c.detached {
		return
	}
	if c.phase == phaseStopping {
		c.pending = pendingTransition{kind: pendingStart, auto: auto}
		c.logger.Debug("start deferred until stop completes")
		return
	}
	if c.refreshing || c.autoRefreshing {
		return
	}
	if !c.settled {
		c.settle()
	}
	c.refreshing = !auto
	c.autoRefreshing = auto
	c.logger.Debug("start refreshing", "auto", auto)
	if c.spec.leading {
		c.startPull()
	} else {
		c.startLoadMore()
	}
}

// StopRefreshing ends the current refresh cycle. A call made during the start
// animation is deferred until the handler has run.
func (c *Component) StopRefreshing() {
	if c.container == nil {
		return
	}
	switch c.phase {
	case phaseStarting:
		c.pending = pendingTransition{kind: pendingStop}
		c.logger.Debug("stop deferred until start completes")
		return
	case phaseStopping:
		c.pending = pendingTransition{}
		return
	}
	if !c.refreshing && !c.autoRefreshing {
		return
	}
	c.logger.Debug("stop refreshing")
	if c.spec.leading {
		c.stopPull()
	} else {
		c.stopLoadMore()
	}
}

// finishTransition runs at the end of every start/stop continuation and
// replays the request that arrived while the animation was in flight.
func (c *Component) finishTransition() {
	c.phase = phaseIdle
	next := c.pending
	c.pending = pendingTransition{}
	switch next.kind {
	case pendingStart:
		c.StartRefreshing(next.auto)
	case pendingStop:
		c.StopRefreshing()
	}
}

// animate applies changes immediately and runs completion after d. Any
// observer callbacks fired by changes are suppressed by the caller's
// IgnoreObserver.
func (c *Component) animate(d time.Duration, changes func(), completion func()) {
	if changes != nil {
		changes()
	}
	c.container.Schedule(d, completion)
}

// IgnoreObserver toggles the guard that makes the component ignore container
// changes it causes itself.
func (c *Component) IgnoreObserver(ignore bool) {
	c.ignoring = ignore
}

// IsIgnoringObserver reports whether the re-entrancy guard is set.
func (c *Component) IsIgnoringObserver() bool { return c.ignoring }

func (c *Component) setState(s State) {
	if c.state == s {
		return
	}
	c.logger.Debug("state changed", "from", c.state.String(), "to", s.String())
	c.state = s
	c.animator.StateChanged(c, s)
}

func (c *Component) setProgress(percent float64) {
	if percent < 0 {
		percent = 0
	}
	c.animator.ProgressChanged(c, percent)
}

// progressFor converts a pulled distance into a fraction of the trigger
// distance. A non-positive trigger counts as fully pulled.
func (c *Component) progressFor(distance float64) float64 {
	trigger := c.animator.Trigger()
	if trigger <= 0 {
		return 1
	}
	return distance / trigger
}

// Edge reports which side of the container the component is attached to.
func (c *Component) Edge() Edge { return c.spec.edge }

// State reports the last state sent to the animator.
func (c *Component) State() State { return c.state }

// IsRefreshing reports a manually or observation-triggered refresh.
func (c *Component) IsRefreshing() bool { return c.refreshing }

// IsAutoRefreshing reports a refresh started with StartRefreshing(true).
func (c *Component) IsAutoRefreshing() bool { return c.autoRefreshing }

// Animator returns the component's animator.
func (c *Component) Animator() Animator { return c.animator }

// Frame is where the host should draw the component, in content coordinates.
func (c *Component) Frame() Rect { return c.frame }

// Alpha is 0 when a load-more component should not be drawn.
func (c *Component) Alpha() float64 { return c.alpha }

// BaselineInset is the container inset captured before any refresh-driven change.
func (c *Component) BaselineInset() Insets { return c.baseline }

// PreviousOffset is the last observed offset along the component's axis.
func (c *Component) PreviousOffset() float64 { return c.previousOffset }

// RefreshIdentifier keys the component's persisted last-refresh date.
func (c *Component) RefreshIdentifier() string { return c.identifier }

// SetRefreshIdentifier sets the key used for last-refresh bookkeeping.
func (c *Component) SetRefreshIdentifier(id string) { c.identifier = id }
