package drag

import "time"

// AutoScrollVelocity returns the scroll speed for the current drag, in units
// per second. It is negative towards the start of the list and zero when the
// dragged row is outside both edge bands or the list cannot move further.
func (s *State[ID]) AutoScrollVelocity() float64 {
	if !s.opts.ScrollEnabled || !s.IsDragging() {
		return 0
	}
	threshold, speed := s.opts.AutoScrollThreshold, s.opts.AutoScrollSpeed
	if threshold <= 0 || speed <= 0 || s.containerSize <= 0 {
		return 0
	}

	top := s.HoverOffset() - s.scrollOffset
	bottom := top + s.activeCellSize

	if top < threshold && s.scrollOffset > 0 {
		return -speed * depth(threshold-top, threshold)
	}
	if s.containerSize-bottom < threshold && s.scrollOffset < s.maxScroll() {
		return speed * depth(threshold-(s.containerSize-bottom), threshold)
	}
	return 0
}

func (s *State[ID]) maxScroll() float64 {
	return max(s.contentSize-s.containerSize, 0)
}

// depth is how far into a band of width threshold the row reaches, in [0, 1]
func depth(in, threshold float64) float64 {
	return min(max(in/threshold, 0), 1)
}

func (c *Coordinator[ID]) autoScroll(dt time.Duration) {
	if c.hooks.ScrollBy == nil || dt <= 0 {
		return
	}
	v := c.state.AutoScrollVelocity()
	if v == 0 {
		return
	}
	delta := v * dt.Seconds()
	target := min(max(c.state.scrollOffset+delta, 0), c.state.maxScroll())
	delta = target - c.state.scrollOffset
	if delta != 0 {
		c.hooks.ScrollBy(delta)
	}
}
