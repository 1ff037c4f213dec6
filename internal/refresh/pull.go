package refresh

// Pull-to-refresh behaviour for the top and left edges. Offsets along the
// axis grow negative as the user pulls content away from the edge.

func (c *Component) pullOffsetChanged(offset float64) {
	base := c.spec.inset(c.baseline)

	if c.refreshing || c.autoRefreshing {
		// Let the reserved inset follow the user's overscroll so the
		// component rubber-bands instead of re-triggering.
		inset := clamp(-offset, base, base+c.extent())
		c.container.SetContentInset(c.spec.withInset(c.container.ContentInset(), inset))
		return
	}

	offsets := offset + base
	switch {
	case offsets < -c.animator.Trigger():
		if c.container.IsDragging() {
			c.setState(StateArmed)
			c.setProgress(c.progressFor(-offsets))
			return
		}
		c.StartRefreshing(false)
	case offsets < 0:
		c.setState(StatePulling)
		c.setProgress(c.progressFor(-offsets))
	}
}

func (c *Component) startPull() {
	cont := c.container
	c.phase = phaseStarting
	c.IgnoreObserver(true)
	cont.SetBounces(false)
	c.animator.AnimationBegin(c)
	c.setState(StateRefreshing)

	insets := cont.ContentInset()
	current := c.spec.inset(insets)
	c.baseline = c.spec.withInset(c.baseline, current)
	target := current + c.animator.Extent()
	insets = c.spec.withInset(insets, target)

	c.animate(c.spec.startDuration, func() {
		cont.SetContentInset(insets)
		cont.SetContentOffset(c.spec.withOffset(cont.ContentOffset(), -target))
	}, func() {
		if c.detached {
			return
		}
		c.previousOffset = c.spec.offset(cont.ContentOffset())
		if c.handler != nil {
			c.handler()
		}
		c.IgnoreObserver(false)
		cont.SetBounces(c.bounces)
		c.finishTransition()
	})
}

func (c *Component) stopPull() {
	cont := c.container
	c.phase = phaseStopping
	c.IgnoreObserver(true)
	c.animator.AnimationEnd(c)

	base := c.spec.inset(c.baseline)
	c.animate(c.spec.stopDuration, func() {
		cont.SetContentInset(c.spec.withInset(cont.ContentInset(), base))
		if c.spec.offset(cont.ContentOffset()) < -base {
			cont.SetContentOffset(c.spec.withOffset(cont.ContentOffset(), -base))
		}
	}, func() {
		if c.detached {
			return
		}
		c.refreshing = false
		c.autoRefreshing = false
		c.setState(StateIdle)
		cont.SetContentInset(c.spec.withInset(cont.ContentInset(), base))
		c.previousOffset = c.spec.offset(cont.ContentOffset())
		c.IgnoreObserver(false)
		c.finishTransition()
	})
}

// extent is the component's size along its axis.
func (c *Component) extent() float64 {
	if e := c.spec.length(c.frame.Size); e > 0 {
		return e
	}
	return c.animator.Extent()
}
