package drag

import "time"

// Row describes one rendered row to the position engine
type Row[ID comparable] struct {
	Index int
	ID    ID
	Level int
	Measurement
}

// Transform is the target placement of a row for the current frame
type Transform struct {
	// TranslateY is the vertical displacement from the row's layout slot
	TranslateY float64
	// TranslateX is the indentation shift, only set for the dragged row
	TranslateX float64
	// FollowsTouch is set for the dragged row, which tracks the pointer
	// directly instead of springing
	FollowsTouch bool
}

// ComputeRowTransform runs the per-frame position logic for one row.
//
// Rows after the active row test the dragged row's trailing edge, rows before
// it test the leading edge. Landing in the top or bottom half of a row decides
// which slot that row yields. The only write is claiming the spacer.
func ComputeRowTransform[ID comparable](s *State[ID], row Row[ID]) Transform {
	if s.activeIndex < 0 {
		return Transform{}
	}

	isActive := row.Index == s.activeIndex
	isBefore := row.Index < s.activeIndex
	isAfter := row.Index > s.activeIndex

	leading := s.HoverOffset()
	trailing := leading + s.activeCellSize
	mid := row.Offset + row.Size/2
	end := row.End()

	candidate := -1
	switch {
	case isAfter:
		if trailing >= row.Offset && trailing < mid {
			candidate = row.Index - 1
		} else if trailing >= mid && trailing < end {
			candidate = row.Index
		}
	case isBefore:
		if leading < end && leading >= mid {
			candidate = row.Index + 1
		} else if leading >= row.Offset && leading < mid {
			candidate = row.Index
		}
	}

	if candidate != -1 && candidate != s.spacerIndex {
		s.claimSpacer(candidate, row.Level)
	}

	if s.spacerIndex == row.Index {
		if isAfter {
			s.placeholderOffset = row.Size + row.Offset - s.activeCellSize
		} else {
			s.placeholderOffset = row.Offset
		}
	}

	if isActive {
		indent := float64(s.spacerIndentLevel-s.activeIndentLevel) * s.opts.IndentationMultiplier
		return Transform{TranslateY: s.HoverTranslate(), TranslateX: indent, FollowsTouch: true}
	}

	shouldTranslate := row.Index >= s.spacerIndex
	if isAfter {
		shouldTranslate = row.Index <= s.spacerIndex
	}
	if !shouldTranslate {
		return Transform{}
	}
	if isAfter {
		return Transform{TranslateY: -s.activeCellSize}
	}
	return Transform{TranslateY: s.activeCellSize}
}

// Cell is the engine of one recycled row container
type Cell[ID comparable] struct {
	state     *State[ID]
	row       Row[ID]
	translate *Spring
	indent    *Spring
	held      float64
}

// NewCell creates a cell bound to row id at index
func NewCell[ID comparable](state *State[ID], id ID, index, level int) *Cell[ID] {
	c := &Cell[ID]{
		state:     state,
		translate: NewSpring(state.opts.Animation, 0),
		indent:    NewSpring(state.opts.Animation, 0),
	}
	c.Bind(id, index, level)
	return c
}

// Bind points the container at a row. Rebinding to a different row drops any
// animation in flight.
func (c *Cell[ID]) Bind(id ID, index, level int) {
	if c.row.ID != id {
		c.translate.Snap(0)
		c.indent.Snap(0)
		c.held = 0
	}
	m, _ := c.state.Measurement(id)
	c.row = Row[ID]{Index: index, ID: id, Level: level, Measurement: m}
}

// Row returns the row the cell is bound to
func (c *Cell[ID]) Row() Row[ID] { return c.row }

// Layout records a fresh measurement. It ends any held-over translation: once
// the list has been laid out again, the new slot already includes the move.
func (c *Cell[ID]) Layout(m Measurement) {
	c.row.Measurement = m
	c.state.Measure(c.row.ID, m)
	c.held = 0
	if _, dragging := c.state.ActiveID(); !dragging {
		c.translate.Snap(0)
		c.indent.Snap(0)
	}
}

// Frame advances the cell's animations by dt and returns its displacement
func (c *Cell[ID]) Frame(dt time.Duration) (y, x float64) {
	t := ComputeRowTransform(c.state, c.row)

	if t.FollowsTouch {
		c.translate.Snap(t.TranslateY)
		y = t.TranslateY
	} else {
		c.translate.SetTarget(t.TranslateY)
		y = c.translate.Step(dt)
	}
	c.indent.SetTarget(t.TranslateX)
	x = c.indent.Step(dt)

	// Between the end of a drag and the next layout pass the computed
	// translation drops to zero; keep showing the last one until then.
	if _, dragging := c.state.ActiveID(); !dragging {
		return c.held, 0
	}
	c.held = y
	if !t.FollowsTouch {
		x = 0
	}
	return y, x
}
