package refresh

import (
	"sort"
	"time"
)

// fakeContainer is an in-memory Container. Scheduled continuations queue up
// until the test calls flush or step.
type fakeContainer struct {
	offset       Point
	size         Size
	inset        Insets
	bounds       Size
	dragging     bool
	decelerating bool
	bounces      bool

	observers map[int]func(Change)
	nextID    int

	now     time.Duration
	seq     int
	pending []scheduledFn

	offsetSets int
}

type scheduledFn struct {
	at  time.Duration
	seq int
	fn  func()
}

func newFakeContainer(size, bounds Size) *fakeContainer {
	return &fakeContainer{
		size:      size,
		bounds:    bounds,
		bounces:   true,
		observers: make(map[int]func(Change)),
	}
}

func (f *fakeContainer) ContentOffset() Point { return f.offset }

func (f *fakeContainer) SetContentOffset(p Point) {
	f.offsetSets++
	f.offset = p
	f.notify(ChangeOffset)
}

func (f *fakeContainer) ContentSize() Size { return f.size }

func (f *fakeContainer) ContentInset() Insets { return f.inset }

func (f *fakeContainer) SetContentInset(in Insets) { f.inset = in }

func (f *fakeContainer) Bounds() Size { return f.bounds }

func (f *fakeContainer) IsDragging() bool { return f.dragging }

func (f *fakeContainer) IsDecelerating() bool { return f.decelerating }

func (f *fakeContainer) Bounces() bool { return f.bounces }

func (f *fakeContainer) SetBounces(b bool) { f.bounces = b }

func (f *fakeContainer) Observe(fn func(Change)) func() {
	id := f.nextID
	f.nextID++
	f.observers[id] = fn
	return func() { delete(f.observers, id) }
}

func (f *fakeContainer) Schedule(d time.Duration, fn func()) {
	f.seq++
	f.pending = append(f.pending, scheduledFn{at: f.now + d, seq: f.seq, fn: fn})
}

func (f *fakeContainer) notify(c Change) {
	ids := make([]int, 0, len(f.observers))
	for id := range f.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := f.observers[id]; ok {
			fn(c)
		}
	}
}

// step runs the earliest pending continuation. It reports false when none
// are queued.
func (f *fakeContainer) step() bool {
	if len(f.pending) == 0 {
		return false
	}
	sort.SliceStable(f.pending, func(i, j int) bool {
		if f.pending[i].at != f.pending[j].at {
			return f.pending[i].at < f.pending[j].at
		}
		return f.pending[i].seq < f.pending[j].seq
	})
	next := f.pending[0]
	f.pending = f.pending[1:]
	if next.at > f.now {
		f.now = next.at
	}
	next.fn()
	return true
}

// flush runs continuations until none remain.
func (f *fakeContainer) flush() {
	for i := 0; i < 1000 && f.step(); i++ {
	}
}

// drag moves the offset while the user's finger is down.
func (f *fakeContainer) drag(p Point) {
	if !f.dragging {
		f.dragging = true
		f.notify(ChangeDragState)
	}
	f.SetContentOffset(p)
}

// release lifts the finger.
func (f *fakeContainer) release() {
	f.dragging = false
	f.notify(ChangeDragState)
}

// scroll moves the offset without a drag, like a fling or a wheel.
func (f *fakeContainer) scroll(p Point) {
	f.SetContentOffset(p)
}

func (f *fakeContainer) resize(s Size) {
	f.size = s
	f.notify(ChangeContentSize)
}

// event is one animator notification.
type event struct {
	Kind     string
	State    State
	Progress float64
}

// recordingAnimator records every notification it receives.
type recordingAnimator struct {
	trigger float64
	extent  float64
	events  []event
}

func (r *recordingAnimator) Trigger() float64 { return r.trigger }
func (r *recordingAnimator) Extent() float64 { return r.extent }

func (r *recordingAnimator) AnimationBegin(*Component) {
	r.events = append(r.events, event{Kind: "begin"})
}

func (r *recordingAnimator) AnimationEnd(*Component) {
	r.events = append(r.events, event{Kind: "end"})
}

func (r *recordingAnimator) StateChanged(_ *Component, s State) {
	r.events = append(r.events, event{Kind: "state", State: s})
}

func (r *recordingAnimator) ProgressChanged(_ *Component, p float64) {
	r.events = append(r.events, event{Kind: "progress", Progress: p})
}

func (r *recordingAnimator) states() []State {
	var out []State
	for _, e := range r.events {
		if e.Kind == "state" {
			out = append(out, e.State)
		}
	}
	return out
}

type counter struct{ n int }

func (c *counter) handler() Handler { return func() { c.n++ } }
