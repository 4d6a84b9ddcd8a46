// Package drag holds the drag-to-reorder engine: the state shared by every row
// of one list, the per-row position engine, and the gesture coordinator.
package drag

// SpringConfig tunes the spring used for row and release animations
type SpringConfig struct {
	Damping                   float64 `toml:"damping"`
	Mass                      float64 `toml:"mass"`
	Stiffness                 float64 `toml:"stiffness"`
	OvershootClamping         bool    `toml:"overshoot_clamping"`
	RestSpeedThreshold        float64 `toml:"rest_speed_threshold"`
	RestDisplacementThreshold float64 `toml:"rest_displacement_threshold"`
}

// Options configures dragging for one list. Distances are in layout units
// (pixels on touch screens, cells in a terminal).
type Options struct {
	// AutoScrollThreshold is the distance from an edge at which auto-scroll starts
	AutoScrollThreshold float64 `toml:"auto_scroll_threshold"`
	// AutoScrollSpeed is the maximum auto-scroll speed in units per second
	AutoScrollSpeed float64      `toml:"auto_scroll_speed"`
	Animation       SpringConfig `toml:"animation"`
	ScrollEnabled   bool         `toml:"scroll_enabled"`
	// ActivationDistance is the movement required before a drag follows the pointer
	ActivationDistance float64 `toml:"activation_distance"`
	// DragItemOverflow lets the dragged row leave the list bounds
	DragItemOverflow bool `toml:"drag_item_overflow"`
	// HitSlop widens the touch target of every row
	HitSlop float64 `toml:"hit_slop"`
	// IndentationMultiplier converts one level of depth into a horizontal distance
	IndentationMultiplier float64 `toml:"indentation_multiplier"`
}

// DefaultSpringConfig returns the default row animation spring
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Damping:                   20,
		Mass:                      0.2,
		Stiffness:                 50,
		OvershootClamping:         false,
		RestSpeedThreshold:        0.2,
		RestDisplacementThreshold: 0.2,
	}
}

// DefaultOptions returns the default drag options
func DefaultOptions() Options {
	return Options{
		AutoScrollThreshold:   30,
		AutoScrollSpeed:       100,
		Animation:             DefaultSpringConfig(),
		ScrollEnabled:         true,
		ActivationDistance:    0,
		DragItemOverflow:      false,
		HitSlop:               0,
		IndentationMultiplier: 15,
	}
}
