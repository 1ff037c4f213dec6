package refresh

// Animator is the presentation side of a component. Trigger is the distance
// the user must pull to start a refresh; Extent is how much inset the
// component reserves while it is visible or refreshing.
type Animator interface {
	Trigger() float64
	Extent() float64
	AnimationBegin(c *Component)
	AnimationEnd(c *Component)
	StateChanged(c *Component, s State)
	ProgressChanged(c *Component, percent float64)
}

const (
	defaultPullTrigger     = 60
	defaultPullExtent      = 60
	defaultLoadMoreTrigger = 42
	defaultLoadMoreExtent  = 42
)

// StaticAnimator reports fixed distances and ignores notifications.
type StaticAnimator struct {
	TriggerDistance float64
	ReservedExtent  float64
}

// DefaultAnimator returns the StaticAnimator used when none is supplied.
func DefaultAnimator(e Edge) StaticAnimator {
	if specFor(e).leading {
		return StaticAnimator{TriggerDistance: defaultPullTrigger, ReservedExtent: defaultPullExtent}
	}
	return StaticAnimator{TriggerDistance: defaultLoadMoreTrigger, ReservedExtent: defaultLoadMoreExtent}
}

func (a StaticAnimator) Trigger() float64 { return a.TriggerDistance }
func (a StaticAnimator) Extent() float64 { return a.ReservedExtent }
func (StaticAnimator) AnimationBegin(*Component) {}
func (StaticAnimator) AnimationEnd(*Component) {}
func (StaticAnimator) StateChanged(*Component, State) {}
func (StaticAnimator) ProgressChanged(*Component, float64) {}
