package refresh

import "time"

// Change identifies which observed property of a Container changed.
type Change int

const (
	// ChangeOffset is reported on every scroll tick.
	ChangeOffset Change = iota
	// ChangeContentSize is reported when the content grows or shrinks.
	ChangeContentSize
	// ChangeDragState is reported when the user starts or stops dragging.
	ChangeDragState
)

// Container is the scrollable host a component attaches to.
//
// Observers registered with Observe must be called synchronously whenever the
// offset, content size or drag state changes, including changes made through
// SetContentOffset. Schedule is the only asynchronous primitive the package
// uses: fn must run later on the same goroutine that drives every other
// Container call, after d has elapsed (d == 0 means the next UI tick).
// Continuations must run in the order they were scheduled when their
// deadlines are equal.
type Container interface {
	ContentOffset() Point
	SetContentOffset(Point)
	ContentSize() Size
	ContentInset() Insets
	SetContentInset(Insets)
	// Bounds is the size of the visible viewport.
	Bounds() Size
	IsDragging() bool
	IsDecelerating() bool
	Bounces() bool
	SetBounces(bool)
	Observe(func(Change)) (cancel func())
	Schedule(d time.Duration, fn func())
}
