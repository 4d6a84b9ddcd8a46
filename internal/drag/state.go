package drag

import "log/slog"

// Measurement is a row's position and extent along the scroll axis, in
// content coordinates
type Measurement struct {
	Offset float64
	Size   float64
}

// End returns the trailing edge of the row
func (m Measurement) End() float64 {
	return m.Offset + m.Size
}

// Haptics delivers the short feedback pulse that marks the start of a drag
type Haptics interface {
	Pulse()
}

// HapticsFunc adapts a function to Haptics
type HapticsFunc func()

// Pulse calls f
func (f HapticsFunc) Pulse() { f() }

type noHaptics struct{}

func (noHaptics) Pulse() {}

// State is the drag state shared by every row of one list.
//
// The host writes layout (Measure, SetScrollOffset, sizes). BeginDrag, Reset
// and the Coordinator write the drag fields. Row engines only read, except
// for claiming the spacer. Everything runs on the list's event loop, so the
// state carries no locks.
type State[ID comparable] struct {
	opts    Options
	haptics Haptics
	logger  *slog.Logger

	measurements map[ID]Measurement

	activeID  ID
	hasActive bool

	activeIndex       int
	spacerIndex       int
	activeIndentLevel int
	spacerIndentLevel int

	activeCellOffset  float64
	activeCellSize    float64
	placeholderOffset float64

	touchTranslate float64
	touchActive    bool

	scrollOffset  float64
	scrollInit    float64
	containerSize float64
	contentSize   float64

	viewableMin int
	viewableMax int

	disabled bool
	settling bool
}

// NewState creates an idle drag state. A nil haptics or logger is replaced by
// a no-op pulse and slog.Default().
func NewState[ID comparable](opts Options, haptics Haptics, logger *slog.Logger) *State[ID] {
	if haptics == nil {
		haptics = noHaptics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &State[ID]{
		opts:         opts,
		haptics:      haptics,
		logger:       logger,
		measurements: make(map[ID]Measurement),
	}
	s.Reset()
	return s
}

// Options returns the drag options
func (s *State[ID]) Options() Options { return s.opts }

// BeginDrag makes the row id at visible index the active row. It returns
// false and changes nothing while the list is disabled or a drag is already
// in progress.
func (s *State[ID]) BeginDrag(id ID, index, level int) bool {
	if s.Disabled() || s.activeIndex >= 0 || s.hasActive || index < 0 {
		return false
	}

	if m, ok := s.measurements[id]; ok {
		s.activeCellOffset = m.Offset
		s.activeCellSize = m.Size
	} else {
		s.logger.Debug("drag started on a row without measurements", "id", id, "index", index)
		s.activeCellOffset = 0
		s.activeCellSize = 0
	}

	s.activeIndex = index
	s.spacerIndex = index
	s.activeIndentLevel = level
	s.spacerIndentLevel = level
	s.touchTranslate = 0
	s.placeholderOffset = s.activeCellOffset
	s.scrollInit = s.scrollOffset
	s.activeID = id
	s.hasActive = true

	s.haptics.Pulse()
	return true
}

// Reset returns every drag field to idle. Calling it when idle is a no-op.
func (s *State[ID]) Reset() {
	var zero ID
	s.activeIndex = -1
	s.spacerIndex = -1
	s.touchTranslate = 0
	s.touchActive = false
	s.activeCellSize = -1
	s.activeCellOffset = -1
	s.placeholderOffset = 0
	s.activeIndentLevel = 0
	s.spacerIndentLevel = 0
	s.scrollInit = s.scrollOffset
	s.activeID = zero
	s.hasActive = false
}

// ActiveID returns the id of the dragged row, if any
func (s *State[ID]) ActiveID() (ID, bool) { return s.activeID, s.hasActive }

// ActiveIndex returns the visible index of the dragged row, or -1
func (s *State[ID]) ActiveIndex() int { return s.activeIndex }

// SpacerIndex returns the visible index currently claimed as drop slot, or -1
func (s *State[ID]) SpacerIndex() int { return s.spacerIndex }

func (s *State[ID]) ActiveIndentLevel() int { return s.activeIndentLevel }
func (s *State[ID]) SpacerIndentLevel() int { return s.spacerIndentLevel }
func (s *State[ID]) ActiveCellOffset() float64 { return s.activeCellOffset }
func (s *State[ID]) ActiveCellSize() float64   { return s.activeCellSize }
func (s *State[ID]) PlaceholderOffset() float64 { return s.placeholderOffset }
func (s *State[ID]) TouchTranslate() float64   { return s.touchTranslate }
func (s *State[ID]) TouchActive() bool         { return s.touchActive }
func (s *State[ID]) ScrollOffset() float64     { return s.scrollOffset }
func (s *State[ID]) ContainerSize() float64    { return s.containerSize }
func (s *State[ID]) ContentSize() float64      { return s.contentSize }

// Disabled reports whether new drags are refused, either by the user switch
// or because a released row is still settling
func (s *State[ID]) Disabled() bool { return s.disabled || s.settling }

// Settling reports whether a released row is animating into its slot
func (s *State[ID]) Settling() bool { return s.settling }

// SetDisabled switches dragging off or on
func (s *State[ID]) SetDisabled(disabled bool) { s.disabled = disabled }

// IsDragging reports whether a row is active and the pointer is down
func (s *State[ID]) IsDragging() bool {
	return s.touchActive && s.activeIndex >= 0
}

// AutoScrollDistance is how far the list scrolled since the drag began
func (s *State[ID]) AutoScrollDistance() float64 {
	if !s.IsDragging() {
		return 0
	}
	return s.scrollOffset - s.scrollInit
}

// TouchPositionDiff is the pointer translation plus scroll compensation
func (s *State[ID]) TouchPositionDiff() float64 {
	extra := 0.0
	if s.touchActive {
		extra = s.AutoScrollDistance()
	}
	return s.touchTranslate + extra
}

// HoverTranslate is the translation of the dragged row from its layout slot.
// Unless DragItemOverflow is set, the row is kept inside the content.
func (s *State[ID]) HoverTranslate() float64 {
	if s.activeIndex < 0 {
		return 0
	}
	v := s.TouchPositionDiff()
	if s.opts.DragItemOverflow || s.contentSize <= 0 || s.activeCellSize <= 0 {
		return v
	}
	lo := -s.activeCellOffset
	hi := s.contentSize - s.activeCellSize - s.activeCellOffset
	if hi < lo {
		return v
	}
	return min(max(v, lo), hi)
}

// HoverOffset is the leading edge of the dragged row in content coordinates
func (s *State[ID]) HoverOffset() float64 {
	return s.HoverTranslate() + s.activeCellOffset
}

// Measure records the layout of row id
func (s *State[ID]) Measure(id ID, m Measurement) {
	s.measurements[id] = m
}

// Measurement returns the recorded layout of row id
func (s *State[ID]) Measurement(id ID) (Measurement, bool) {
	m, ok := s.measurements[id]
	return m, ok
}

// Forget drops the measurement of row id
func (s *State[ID]) Forget(id ID) {
	delete(s.measurements, id)
}

// SetScrollOffset records the list's scroll position
func (s *State[ID]) SetScrollOffset(offset float64) { s.scrollOffset = offset }

// SetContainerSize records the viewport extent
func (s *State[ID]) SetContainerSize(size float64) { s.containerSize = size }

// SetContentSize records the scrollable content extent
func (s *State[ID]) SetContentSize(size float64) { s.contentSize = size }

// SetViewable records the range of rendered rows
func (s *State[ID]) SetViewable(minIndex, maxIndex int) {
	s.viewableMin, s.viewableMax = minIndex, maxIndex
}

// Viewable returns the range of rendered rows
func (s *State[ID]) Viewable() (int, int) { return s.viewableMin, s.viewableMax }

// claimSpacer makes index the drop slot. Only a row engine whose overlap
// test produced index calls it, and the half-row intervals of distinct rows
// never overlap, so at most one row claims per frame.
func (s *State[ID]) claimSpacer(index, level int) {
	if s.activeIndex < 0 {
		return
	}
	s.spacerIndex = index
	s.spacerIndentLevel = level
}
