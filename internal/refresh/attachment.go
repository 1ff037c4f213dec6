package refresh

import (
	"log/slog"
	"time"

	"github.com/five82/pullrefresh/internal/clock"
)

// DateStore keeps last-refresh dates and expiry intervals keyed by refresh
// identifier.
type DateStore interface {
	LastRefresh(key string) (time.Time, bool)
	SetLastRefresh(key string, t time.Time)
	ExpiredInterval(key string) (time.Duration, bool)
	SetExpiredInterval(key string, d time.Duration)
	Expired(key string) bool
}

// AttachOptions configure an Attachment.
type AttachOptions struct {
	Dates  DateStore
	Clock  clock.Clock
	Logger *slog.Logger
	// Animators supplies the animator for AddTop/AddBottom calls that do
	// not pass one. Nil falls back to DefaultAnimator.
	Animators func(Edge) Animator
}

// Attachment holds at most one component per edge of a container and offers
// the convenience calls hosts use to drive them.
type Attachment struct {
	container Container
	dates     DateStore
	clock     clock.Clock
	logger    *slog.Logger
	animators func(Edge) Animator

	header *Component
	footer *Component
	left   *Component
	right  *Component
}

// Attach prepares c to receive refresh components.
func Attach(c Container, opts AttachOptions) *Attachment {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Attachment{
		container: c,
		dates:     opts.Dates,
		clock:     clk,
		logger:    logger,
		animators: opts.Animators,
	}
}

func (a *Attachment) defaultAnimator(e Edge) Animator {
	if a.animators != nil {
		if anim := a.animators(e); anim != nil {
			return anim
		}
	}
	return DefaultAnimator(e)
}

func (a *Attachment) slot(e Edge) **Component {
	switch e {
	case EdgeBottom:
		return &a.footer
	case EdgeLeft:
		return &a.left
	case EdgeRight:
		return &a.right
	default:
		return &a.header
	}
}

func (a *Attachment) add(e Edge, frame *Rect, animator Animator, handler Handler) *Component {
	a.remove(e)
	if animator == nil {
		animator = a.defaultAnimator(e)
	}
	comp := newComponent(e, a.container, animator, handler, frame, a.logger)
	*a.slot(e) = comp
	a.logger.Debug("component added", "edge", e.String())
	return comp
}

func (a *Attachment) remove(e Edge) {
	slot := a.slot(e)
	if *slot == nil {
		return
	}
	(*slot).Detach()
	*slot = nil
}

// AddTop attaches a pull-to-refresh header, replacing any existing one.
func (a *Attachment) AddTop(handler Handler) *Component {
	return a.add(EdgeTop, nil, nil, handler)
}

// AddTopWith attaches a header driven by animator.
func (a *Attachment) AddTopWith(animator Animator, handler Handler) *Component {
	return a.add(EdgeTop, nil, animator, handler)
}

// AddBottom attaches a load-more footer, replacing any existing one.
func (a *Attachment) AddBottom(handler Handler) *Component {
	return a.add(EdgeBottom, nil, nil, handler)
}

// AddBottomWith attaches a footer driven by animator.
func (a *Attachment) AddBottomWith(animator Animator, handler Handler) *Component {
	return a.add(EdgeBottom, nil, animator, handler)
}

// AddLeft attaches a horizontal pull-to-refresh component. A nil frame is
// laid out from the animator's extent.
func (a *Attachment) AddLeft(frame *Rect, animator Animator, handler Handler) *Component {
	return a.add(EdgeLeft, frame, animator, handler)
}

// AddRight attaches a horizontal load-more component.
func (a *Attachment) AddRight(frame *Rect, animator Animator, handler Handler) *Component {
	return a.add(EdgeRight, frame, animator, handler)
}

func (a *Attachment) RemoveTop() { a.remove(EdgeTop) }
func (a *Attachment) RemoveBottom() { a.remove(EdgeBottom) }
func (a *Attachment) RemoveLeft() { a.remove(EdgeLeft) }
func (a *Attachment) RemoveRight() { a.remove(EdgeRight) }

func (a *Attachment) Header() *Component { return a.header }
func (a *Attachment) Footer() *Component { return a.footer }
func (a *Attachment) Left() *Component { return a.left }
func (a *Attachment) Right() *Component { return a.right }

// StartPullToRefresh starts the header and left components on the next UI
// tick.
func (a *Attachment) StartPullToRefresh() {
	a.dispatch(false, EdgeTop, EdgeLeft)
}

// StartRightPullToRefresh starts the right component on the next UI tick.
func (a *Attachment) StartRightPullToRefresh() {
	a.dispatch(false, EdgeRight)
}

// dispatch starts the components on the given edges on the next UI tick.
// Components are looked up when the tick runs, so a component replaced in
// between is the one started.
func (a *Attachment) dispatch(auto bool, edges ...Edge) {
	if a.container == nil {
		return
	}
	a.container.Schedule(0, func() {
		for _, e := range edges {
			if comp := *a.slot(e); comp != nil {
				comp.StartRefreshing(auto)
			}
		}
	})
}

// AutoPullToRefreshIfExpired schedules an automatic refresh of the header
// and left components when the identifier's last refresh is older than its
// expiry interval. It reports whether one was scheduled.
func (a *Attachment) AutoPullToRefreshIfExpired() bool {
	if a.container == nil || !a.Expired() {
		return false
	}
	if a.header == nil && a.left == nil {
		return false
	}
	a.dispatch(true, EdgeTop, EdgeLeft)
	return true
}

// StopPullToRefresh ends the header, left and right refreshes. Unless
// ignoreDate is set it records now as the last refresh date and clears the
// footer's no-more-data flag. The footer is hidden when ignoreFooter is set
// and shown otherwise.
func (a *Attachment) StopPullToRefresh(ignoreDate, ignoreFooter bool) {
	for _, comp := range []*Component{a.header, a.left, a.right} {
		if comp != nil {
			comp.StopRefreshing()
		}
	}
	if !ignoreDate {
		if key := a.RefreshIdentifier(); key != "" && a.dates != nil {
			a.dates.SetLastRefresh(key, a.clock.Now())
		}
		if a.footer != nil {
			a.footer.ResetNoMoreData()
		}
	}
	if a.footer != nil {
		a.footer.SetHidden(ignoreFooter)
	}
}

// NoticeNoMoreData stops any load-more in flight and freezes the footer and
// right components.
func (a *Attachment) NoticeNoMoreData() {
	for _, comp := range a.loadMore() {
		comp.StopRefreshing()
		comp.SetNoMoreData(true)
	}
}

// ResetNoMoreData re-enables load-more triggering.
func (a *Attachment) ResetNoMoreData() {
	for _, comp := range a.loadMore() {
		comp.ResetNoMoreData()
	}
}

// StopLoadingMore ends the footer and right load-more cycles.
func (a *Attachment) StopLoadingMore() {
	for _, comp := range a.loadMore() {
		comp.StopRefreshing()
	}
}

func (a *Attachment) loadMore() []*Component {
	var out []*Component
	if a.footer != nil {
		out = append(out, a.footer)
	}
	if a.right != nil {
		out = append(out, a.right)
	}
	return out
}

// RefreshIdentifier returns the first identifier set on the header, left or
// right component.
func (a *Attachment) RefreshIdentifier() string {
	for _, comp := range []*Component{a.header, a.left, a.right} {
		if comp != nil && comp.RefreshIdentifier() != "" {
			return comp.RefreshIdentifier()
		}
	}
	return ""
}

// SetRefreshIdentifier sets the identifier on the header, left and right
// components.
func (a *Attachment) SetRefreshIdentifier(id string) {
	for _, comp := range []*Component{a.header, a.left, a.right} {
		if comp != nil {
			comp.SetRefreshIdentifier(id)
		}
	}
}

// ExpiredInterval returns the expiry interval stored for the identifier.
func (a *Attachment) ExpiredInterval() (time.Duration, bool) {
	key := a.RefreshIdentifier()
	if key == "" || a.dates == nil {
		return 0, false
	}
	return a.dates.ExpiredInterval(key)
}

// SetExpiredInterval stores the expiry interval for the identifier.
func (a *Attachment) SetExpiredInterval(d time.Duration) {
	key := a.RefreshIdentifier()
	if key == "" || a.dates == nil {
		return
	}
	a.dates.SetExpiredInterval(key, d)
}

// Expired reports whether the identifier's last refresh has expired. Without
// an identifier it is always false.
func (a *Attachment) Expired() bool {
	key := a.RefreshIdentifier()
	if key == "" || a.dates == nil {
		return false
	}
	return a.dates.Expired(key)
}

// LastRefreshDate returns the recorded last refresh date, if any.
func (a *Attachment) LastRefreshDate() (time.Time, bool) {
	key := a.RefreshIdentifier()
	if key == "" || a.dates == nil {
		return time.Time{}, false
	}
	return a.dates.LastRefresh(key)
}
