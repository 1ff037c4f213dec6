package refresh

// State is what a component reports to its animator.
type State int

const (
	// StateIdle is the resting state. Pull components report it when their
	// stop animation ends, so animators show their pull prompt for it.
	StateIdle State = iota
	// StatePulling means the user is dragging but has not reached the trigger distance.
	StatePulling
	// StateArmed means the user is dragging past the trigger distance; releasing starts a refresh.
	StateArmed
	// StateRefreshing means the handler has been (or is about to be) invoked.
	StateRefreshing
	// StateNoMoreData suppresses load-more triggering until reset.
	StateNoMoreData
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePulling:
		return "pulling"
	case StateArmed:
		return "release-to-refresh"
	case StateRefreshing:
		return "refreshing"
	case StateNoMoreData:
		return "no-more-data"
	default:
		return "unknown"
	}
}
