package drag

import (
	"log/slog"
	"math"
	"time"
)

// Phase is the coordinator's position in the drag lifecycle
type Phase int

const (
	Idle Phase = iota
	Dragging
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// PanEvent is one event of a pan gesture
type PanEvent struct {
	// Pointers is the number of contacts taking part in the gesture
	Pointers int
	// TranslationY is the distance moved since the gesture began
	TranslationY float64
}

// Hooks connect the coordinator to the list that owns it
type Hooks struct {
	// LevelAt returns the depth of the visible row at index
	LevelAt func(index int) (int, bool)
	// ScrollBy asks the host to scroll programmatically
	ScrollBy func(delta float64)
	// OnRelease is called once per completed drag, after the released row
	// has settled, with the active and spacer indices
	OnRelease func(from, to int)
	// OnCancel is called when a drag ends without a release
	OnCancel func()
}

// Coordinator turns pointer and scroll input into drag state changes
type Coordinator[ID comparable] struct {
	state  *State[ID]
	hooks  Hooks
	logger *slog.Logger

	gestureDisabled bool
	activated       bool
	release         *Spring
}

// NewCoordinator creates a coordinator driving state
func NewCoordinator[ID comparable](state *State[ID], hooks Hooks, logger *slog.Logger) *Coordinator[ID] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator[ID]{state: state, hooks: hooks, logger: logger}
}

// Phase returns the current lifecycle phase
func (c *Coordinator[ID]) Phase() Phase {
	switch {
	case c.state.settling:
		return Settling
	case c.state.activeIndex >= 0:
		return Dragging
	default:
		return Idle
	}
}

// TouchesDown reports contacts touching the list. A second contact during a
// drag aborts it.
func (c *Coordinator[ID]) TouchesDown(pointers int) {
	if pointers > 1 {
		if c.Phase() == Dragging {
			c.logger.Debug("drag aborted by additional contact", "pointers", pointers)
			c.cancel()
		}
		return
	}
	if !c.state.Disabled() {
		c.state.touchActive = true
	}
}

// TouchesUp reports that all contacts lifted
func (c *Coordinator[ID]) TouchesUp() {
	c.setTouchInactive()
}

// Begin starts a pan gesture. The disabled flag is latched for the whole
// gesture.
func (c *Coordinator[ID]) Begin(ev PanEvent) {
	if ev.Pointers != 1 {
		return
	}
	c.gestureDisabled = c.state.Disabled()
	c.activated = c.state.opts.ActivationDistance <= 0
}

// Update follows the pointer
func (c *Coordinator[ID]) Update(ev PanEvent) {
	if ev.Pointers != 1 || c.gestureDisabled {
		return
	}
	if !c.activated {
		if math.Abs(ev.TranslationY) < c.state.opts.ActivationDistance {
			return
		}
		c.activated = true
	}

	c.state.touchTranslate = ev.TranslationY
	if c.state.spacerIndex != -1 && c.hooks.LevelAt != nil {
		if level, ok := c.hooks.LevelAt(c.state.spacerIndex); ok {
			c.state.spacerIndentLevel = level
		}
	}
}

// End releases the pointer. The dragged row springs into the spacer slot and
// the release hook runs once it settles (see Tick).
func (c *Coordinator[ID]) End(ev PanEvent) {
	if ev.Pointers != 1 || c.gestureDisabled {
		return
	}

	scrolled := c.state.AutoScrollDistance()
	c.state.touchTranslate = ev.TranslationY + scrolled
	c.setTouchInactive()

	if c.state.activeIndex == -1 || c.state.Disabled() {
		return
	}

	c.state.settling = true
	c.release = NewSpring(c.state.opts.Animation, c.state.touchTranslate)
	c.release.SetTarget(c.state.placeholderOffset - c.state.activeCellOffset)
}

// Tick advances time-driven work: the release spring while settling, and
// auto-scroll while dragging.
func (c *Coordinator[ID]) Tick(dt time.Duration) {
	if c.state.settling {
		c.state.touchTranslate = c.release.Step(dt)
		if !c.release.AtRest() {
			return
		}
		from, to := c.state.activeIndex, c.state.spacerIndex
		if c.hooks.OnRelease != nil {
			c.hooks.OnRelease(from, to)
		}
		c.state.Reset()
		c.state.settling = false
		c.release = nil
		return
	}

	if c.state.IsDragging() {
		c.autoScroll(dt)
	}
}

// setTouchInactive clears the touch flag. A drag released without any
// movement is cancelled here.
func (c *Coordinator[ID]) setTouchInactive() {
	was := c.state.touchActive
	c.state.touchActive = false
	if !was {
		return
	}
	if c.state.touchTranslate == 0 && c.state.activeIndex >= 0 && !c.state.Disabled() {
		c.logger.Debug("drag released without movement")
		c.cancel()
	}
}

// Cancel abandons the current drag, settling or not, without a release
func (c *Coordinator[ID]) Cancel() {
	if c.Phase() == Idle {
		return
	}
	c.cancel()
}

func (c *Coordinator[ID]) cancel() {
	c.state.Reset()
	c.state.settling = false
	c.release = nil
	if c.hooks.OnCancel != nil {
		c.hooks.OnCancel()
	}
}
