package refresh

// Load-more behaviour for the bottom and right edges. Offsets along the axis
// grow positive as the user scrolls towards the trailing edge.

func (c *Component) loadMoreOffsetChanged(offset float64) {
	if c.refreshing || c.autoRefreshing || c.noMoreData {
		return
	}
	if c.hidden {
		c.alpha = 0
		return
	}

	cont := c.container
	content := c.spec.length(cont.ContentSize())
	leading := c.spec.leadingInset(cont.ContentInset())
	if content <= 0 || offset+leading <= 0 {
		c.alpha = 0
		return
	}
	c.alpha = 1

	viewport := c.spec.length(cont.Bounds())
	if content+leading > viewport {
		// Content overflows the viewport: fire once the resting trailing
		// edge is in view, i.e. within the component's extent of the true end.
		past := offset - (content - viewport + c.spec.trailingInset(c.baseline))
		if c.spec.armFactor > 0 && cont.IsDragging() {
			c.dragFeedback(past)
			return
		}
		if past >= 0 {
			c.StartRefreshing(false)
			return
		}
		if c.state == StatePulling || c.state == StateArmed {
			c.setState(StateIdle)
		}
		return
	}
	if offset+leading >= c.animator.Trigger()*c.spec.shortContentFactor {
		c.StartRefreshing(false)
	}
}

// dragFeedback reports how far a drag has carried the content past the
// trailing edge. past is negative while the edge is not yet in view.
func (c *Component) dragFeedback(past float64) {
	arm := c.animator.Trigger() * c.spec.armFactor
	switch {
	case past > arm:
		c.setState(StateArmed)
		c.setProgress(c.progressFor(past / c.spec.armFactor))
	case past > 0:
		c.setState(StatePulling)
		c.setProgress(c.progressFor(past / c.spec.armFactor))
	case c.state == StatePulling || c.state == StateArmed:
		c.setState(StateIdle)
	}
}

func (c *Component) startLoadMore() {
	cont := c.container
	c.phase = phaseStarting
	c.IgnoreObserver(true)
	c.animator.AnimationBegin(c)
	c.setState(StateRefreshing)

	content := c.spec.length(cont.ContentSize())
	viewport := c.spec.length(cont.Bounds())
	target := content - viewport + c.spec.trailingInset(cont.ContentInset())
	if target < 0 {
		target = 0
	}
	c.animate(c.spec.startDuration, func() {
		cont.SetContentOffset(c.spec.withOffset(cont.ContentOffset(), target))
	}, func() {
		if c.detached {
			return
		}
		c.previousOffset = c.spec.offset(cont.ContentOffset())
		if c.handler != nil {
			c.handler()
		}
		c.IgnoreObserver(false)
		c.finishTransition()
	})
}

func (c *Component) stopLoadMore() {
	cont := c.container
	c.phase = phaseStopping
	c.animator.AnimationEnd(c)

	// A fling that is still running would carry the offset past content
	// that may just have shrunk; pin it instead.
	if cont.IsDecelerating() {
		p := cont.ContentOffset()
		limit := c.spec.length(cont.ContentSize()) - c.spec.length(cont.Bounds())
		v := c.spec.offset(p)
		if v > limit {
			v = limit
		}
		if v < 0 {
			v = 0
		}
		c.IgnoreObserver(true)
		cont.SetContentOffset(c.spec.withOffset(p, v))
		c.IgnoreObserver(false)
	}

	c.animate(c.spec.stopDuration, nil, func() {
		if c.detached {
			return
		}
		if !c.noMoreData {
			c.setState(StateIdle)
		}
		c.refreshing = false
		c.autoRefreshing = false
		c.previousOffset = c.spec.offset(cont.ContentOffset())
		c.finishTransition()
	})
}

// NoMoreData reports whether observation-driven loading is suppressed.
func (c *Component) NoMoreData() bool { return c.noMoreData }

// SetNoMoreData freezes (or releases) load-more triggering. It has no effect
// on pull-to-refresh components.
func (c *Component) SetNoMoreData(v bool) {
	if c.spec.leading || c.noMoreData == v {
		return
	}
	c.noMoreData = v
	switch {
	case v:
		c.setState(StateNoMoreData)
	case c.refreshing || c.autoRefreshing:
		c.setState(StateRefreshing)
	default:
		c.setState(StateIdle)
	}
}

// ResetNoMoreData is SetNoMoreData(false).
func (c *Component) ResetNoMoreData() { c.SetNoMoreData(false) }

// Hidden reports whether a load-more component is hidden.
func (c *Component) Hidden() bool { return c.hidden }

// SetHidden hides a load-more component, releasing its reserved inset, or
// shows it again.
func (c *Component) SetHidden(hidden bool) {
	if c.spec.leading {
		return
	}
	c.hidden = hidden
	if hidden {
		c.alpha = 0
	}
	if !c.settled || c.detached || c.container == nil {
		return
	}
	c.reserveTrailing()
	c.layout()
}

func (c *Component) reserveTrailing() {
	reserved := c.spec.trailingInset(c.baseline)
	if !c.hidden {
		reserved += c.extent()
	}
	insets := c.container.ContentInset()
	c.container.SetContentInset(c.spec.withInset(insets, reserved))
}
