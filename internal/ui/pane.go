package ui

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pullrefresh/internal/clock"
	"github.com/five82/pullrefresh/internal/refresh"
)

// settleDelay is how long an overscrolled pane waits after release before
// springing back into range.
const settleDelay = 120 * time.Millisecond

// Pane is a scrollable region of terminal cells. It implements
// refresh.Container for the Bubble Tea event loop: observers run inline with
// Update, and scheduled continuations are turned into tea commands that come
// back as dueMsg.
type Pane struct {
	offset       refresh.Point
	content      refresh.Size
	inset        refresh.Insets
	bounds       refresh.Size
	dragging     bool
	decelerating bool
	bounces      bool

	observers    map[int]func(refresh.Change)
	nextObserver int

	clock  clock.Clock
	queue  []continuation
	seq    int
	outbox []time.Duration
}

type continuation struct {
	at  time.Time
	seq int
	fn  func()
}

// dueMsg asks the model to run continuations whose deadline has passed.
type dueMsg struct{}

// NewPane returns an empty pane that bounces.
func NewPane(clk clock.Clock) *Pane {
	if clk == nil {
		clk = clock.Real()
	}
	return &Pane{
		bounces:   true,
		observers: make(map[int]func(refresh.Change)),
		clock:     clk,
	}
}

func (p *Pane) ContentOffset() refresh.Point { return p.offset }

func (p *Pane) SetContentOffset(pt refresh.Point) {
	p.offset = pt
	p.notify(refresh.ChangeOffset)
}

func (p *Pane) ContentSize() refresh.Size { return p.content }

// SetContentSize replaces the content size and notifies observers.
func (p *Pane) SetContentSize(s refresh.Size) {
	if s == p.content {
		return
	}
	p.content = s
	p.notify(refresh.ChangeContentSize)
}

func (p *Pane) ContentInset() refresh.Insets { return p.inset }

func (p *Pane) SetContentInset(in refresh.Insets) { p.inset = in }

func (p *Pane) Bounds() refresh.Size { return p.bounds }

// SetBounds resizes the viewport.
func (p *Pane) SetBounds(s refresh.Size) { p.bounds = s }

func (p *Pane) IsDragging() bool { return p.dragging }

func (p *Pane) IsDecelerating() bool { return p.decelerating }

func (p *Pane) Bounces() bool { return p.bounces }

func (p *Pane) SetBounces(b bool) { p.bounces = b }

func (p *Pane) Observe(fn func(refresh.Change)) func() {
	id := p.nextObserver
	p.nextObserver++
	p.observers[id] = fn
	return func() { delete(p.observers, id) }
}

// Schedule queues fn to run once d has elapsed on the pane's clock.
func (p *Pane) Schedule(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	p.seq++
	p.queue = append(p.queue, continuation{at: p.clock.Now().Add(d), seq: p.seq, fn: fn})
	p.outbox = append(p.outbox, d)
}

func (p *Pane) notify(c refresh.Change) {
	ids := make([]int, 0, len(p.observers))
	for id := range p.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := p.observers[id]; ok {
			fn(c)
		}
	}
}

// Commands drains the continuations scheduled since the last call into
// commands that wake the model when they are due.
func (p *Pane) Commands() tea.Cmd {
	if len(p.outbox) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(p.outbox))
	for _, d := range p.outbox {
		cmds = append(cmds, dueCmd(d))
	}
	p.outbox = p.outbox[:0]
	return tea.Batch(cmds...)
}

func dueCmd(d time.Duration) tea.Cmd {
	if d == 0 {
		return func() tea.Msg { return dueMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return dueMsg{} })
}

// RunDue runs every continuation whose deadline has passed, earliest first
// and in scheduling order for equal deadlines. Continuations scheduled while
// running that are already due run in the same pass. It returns the number
// run.
func (p *Pane) RunDue() int {
	ran := 0
	for {
		now := p.clock.Now()
		idx := -1
		for i, c := range p.queue {
			if c.at.After(now) {
				continue
			}
			if idx < 0 || c.at.Before(p.queue[idx].at) || (c.at.Equal(p.queue[idx].at) && c.seq < p.queue[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			return ran
		}
		next := p.queue[idx]
		p.queue = append(p.queue[:idx], p.queue[idx+1:]...)
		next.fn()
		ran++
	}
}

// Pending reports how many continuations are waiting.
func (p *Pane) Pending() int { return len(p.queue) }

// bounds of the resting offset on each axis, honouring the insets.
func (p *Pane) limits() (minX, maxX, minY, maxY float64) {
	minX = -p.inset.Left
	minY = -p.inset.Top
	maxX = max(p.content.Width+p.inset.Right-p.bounds.Width, minX)
	maxY = max(p.content.Height+p.inset.Bottom-p.bounds.Height, minY)
	return minX, maxX, minY, maxY
}

func (p *Pane) clamped(pt refresh.Point) refresh.Point {
	minX, maxX, minY, maxY := p.limits()
	pt.X = min(max(pt.X, minX), maxX)
	pt.Y = min(max(pt.Y, minY), maxY)
	return pt
}

// Drag moves the content under a held pointer. Past the edges it
// overscrolls while the pane bounces and stops at the limit otherwise.
func (p *Pane) Drag(dx, dy float64) {
	if !p.dragging {
		p.dragging = true
		p.decelerating = false
		p.notify(refresh.ChangeDragState)
	}
	next := refresh.Point{X: p.offset.X + dx, Y: p.offset.Y + dy}
	if !p.bounces {
		next = p.clamped(next)
	}
	if next != p.offset {
		p.SetContentOffset(next)
	}
}

// Release lifts the pointer. An overscrolled pane springs back after
// settleDelay; it counts as decelerating until then.
func (p *Pane) Release() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.notify(refresh.ChangeDragState)
	if p.clamped(p.offset) == p.offset {
		return
	}
	p.decelerating = true
	p.Schedule(settleDelay, func() {
		p.decelerating = false
		if p.dragging {
			return
		}
		if target := p.clamped(p.offset); target != p.offset {
			p.SetContentOffset(target)
		}
	})
}

// Scroll moves the content without a held pointer, the way a wheel does. It
// never overscrolls.
func (p *Pane) Scroll(dx, dy float64) {
	target := p.clamped(refresh.Point{X: p.offset.X + dx, Y: p.offset.Y + dy})
	if target != p.offset {
		p.SetContentOffset(target)
	}
}

// ScrollTo jumps to an absolute offset, clamped to the resting range.
func (p *Pane) ScrollTo(pt refresh.Point) {
	target := p.clamped(pt)
	if target != p.offset {
		p.SetContentOffset(target)
	}
}
