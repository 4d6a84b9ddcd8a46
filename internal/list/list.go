// Package list ties the tree model, the drag engine and the reconciler into a
// virtualized hierarchical list that the host renders row by row.
package list

import (
	"log/slog"
	"time"

	"github.com/pstuifzand/tui-dragtree/internal/drag"
	"github.com/pstuifzand/tui-dragtree/internal/model"
	"github.com/pstuifzand/tui-dragtree/internal/reorder"
)

// Host is the rendering side of the list
type Host interface {
	// ScrollBy scrolls the viewport programmatically
	ScrollBy(delta float64)
	// Relayout asks for every visible row to be measured again
	Relayout()
}

// OnReorder is called after a drag changed the tree. oldIndex and newIndex
// are the moved node's positions among its old and new siblings.
type OnReorder[ID comparable] func(oldIndex, newIndex int, roots []*model.Node[ID])

// Params configures a List
type Params[ID comparable] struct {
	Roots     []*model.Node[ID]
	Expanded  model.Set[ID]
	Options   drag.Options
	Host      Host
	Haptics   drag.Haptics
	OnReorder OnReorder[ID]
	Logger    *slog.Logger
	// Debug validates every reconciled tree against its index
	Debug bool
}

// RowFrame is the placement of one rendered row for the current frame
type RowFrame[ID comparable] struct {
	Index  int
	ID     ID
	Level  int
	Name   string
	Offset float64
	// Y and X are the animated displacement from the row's layout slot
	Y, X   float64
	Active bool
}

// List is a draggable, virtualized view of a tree
type List[ID comparable] struct {
	roots    []*model.Node[ID]
	index    model.Index[ID]
	expanded model.Set[ID]
	flat     []model.FlatNode[ID]

	state      *drag.State[ID]
	coord      *drag.Coordinator[ID]
	reconciler *reorder.Reconciler[ID]

	host      Host
	onReorder OnReorder[ID]
	logger    *slog.Logger

	cells   map[ID]*drag.Cell[ID]
	free    []*drag.Cell[ID]
	viewMin int
	viewMax int
	// requested range, before clamping to the visible rows
	wantMin int
	wantMax int
}

// New creates a list over p.Roots. The tree is owned by the list from now on.
func New[ID comparable](p Params[ID]) *List[ID] {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	expanded := p.Expanded
	if expanded == nil {
		expanded = model.NewSet[ID]()
	}

	l := &List[ID]{
		roots:      p.Roots,
		index:      model.BuildIndex(p.Roots),
		expanded:   expanded,
		state:      drag.NewState[ID](p.Options, p.Haptics, logger),
		reconciler: reorder.New[ID](logger),
		host:       p.Host,
		onReorder:  p.OnReorder,
		logger:     logger,
		cells:      make(map[ID]*drag.Cell[ID]),
		viewMax:    -1,
		wantMax:    -1,
	}
	l.reconciler.Debug = p.Debug
	l.coord = drag.NewCoordinator(l.state, drag.Hooks{
		LevelAt:   l.levelAt,
		ScrollBy:  l.scrollBy,
		OnRelease: l.finishDrag,
		OnCancel:  l.relayout,
	}, logger)
	l.reflatten()
	return l
}

// Roots returns the current tree
func (l *List[ID]) Roots() []*model.Node[ID] { return l.roots }

// Index returns the lookup tables of the current tree
func (l *List[ID]) Index() model.Index[ID] { return l.index }

// Flat returns the visible rows
func (l *List[ID]) Flat() []model.FlatNode[ID] { return l.flat }

// Len returns the number of visible rows
func (l *List[ID]) Len() int { return len(l.flat) }

// State exposes the shared drag state
func (l *List[ID]) State() *drag.State[ID] { return l.state }

// Phase returns the drag lifecycle phase
func (l *List[ID]) Phase() drag.Phase { return l.coord.Phase() }

// SetRoots replaces the tree. It is ignored while a drag is in progress.
func (l *List[ID]) SetRoots(roots []*model.Node[ID]) bool {
	if l.coord.Phase() != drag.Idle {
		return false
	}
	l.roots = roots
	l.index = model.BuildIndex(roots)
	l.reflatten()
	l.relayout()
	return true
}

// IsExpanded reports whether id is expanded
func (l *List[ID]) IsExpanded(id ID) bool { return l.expanded.Has(id) }

// Expanded returns a copy of the expanded set
func (l *List[ID]) Expanded() model.Set[ID] { return l.expanded.Clone() }

// SetExpanded replaces the expanded set
func (l *List[ID]) SetExpanded(expanded model.Set[ID]) {
	if expanded == nil {
		expanded = model.NewSet[ID]()
	}
	l.expanded = expanded.Clone()
	l.changedExpansion()
}

// Toggle flips the expansion of id. Leaves cannot be expanded.
func (l *List[ID]) Toggle(id ID) {
	n, ok := l.index.Nodes[id]
	if !ok || n.IsLeaf() {
		return
	}
	if l.expanded.Has(id) {
		l.expanded.Delete(id)
	} else {
		l.expanded.Add(id)
	}
	l.changedExpansion()
}

// Expand adds ids to the expanded set
func (l *List[ID]) Expand(ids ...ID) {
	l.expanded.Add(ids...)
	l.changedExpansion()
}

// Collapse removes ids from the expanded set
func (l *List[ID]) Collapse(ids ...ID) {
	l.expanded.Delete(ids...)
	l.changedExpansion()
}

// ExpandAll expands every node that can hold children
func (l *List[ID]) ExpandAll() {
	l.expanded = model.ExpandAll(l.roots)
	l.changedExpansion()
}

// CollapseAll collapses everything
func (l *List[ID]) CollapseAll() {
	l.expanded = model.NewSet[ID]()
	l.changedExpansion()
}

func (l *List[ID]) changedExpansion() {
	if l.coord.Phase() != drag.Idle {
		l.logger.Debug("expansion changed during a drag, cancelling it")
		l.coord.Cancel()
	}
	l.reflatten()
	l.relayout()
}

func (l *List[ID]) reflatten() {
	l.flat = model.Flatten(l.roots, l.expanded)
	l.SetViewable(l.wantMin, l.wantMax)
}

// SetViewable sets the range of rendered rows. Cells of rows that left the
// range are kept for reuse.
func (l *List[ID]) SetViewable(minIndex, maxIndex int) {
	l.wantMin, l.wantMax = minIndex, maxIndex
	minIndex = max(minIndex, 0)
	maxIndex = min(maxIndex, len(l.flat)-1)
	l.viewMin, l.viewMax = minIndex, maxIndex
	l.state.SetViewable(minIndex, maxIndex)

	keep := make(map[ID]struct{}, max(maxIndex-minIndex+1, 0))
	for i := minIndex; i <= maxIndex; i++ {
		keep[l.flat[i].Node.ID] = struct{}{}
	}
	for id, c := range l.cells {
		if _, ok := keep[id]; ok {
			continue
		}
		if active, dragging := l.state.ActiveID(); dragging && active == id {
			continue
		}
		delete(l.cells, id)
		l.free = append(l.free, c)
	}
}

// Viewable returns the range of rendered rows
func (l *List[ID]) Viewable() (int, int) { return l.viewMin, l.viewMax }

// CellAt returns the cell bound to the visible row at index, binding a
// recycled one when needed
func (l *List[ID]) CellAt(index int) *drag.Cell[ID] {
	if index < 0 || index >= len(l.flat) {
		return nil
	}
	fn := l.flat[index]
	if c, ok := l.cells[fn.Node.ID]; ok {
		c.Bind(fn.Node.ID, index, fn.Level)
		return c
	}
	var c *drag.Cell[ID]
	if n := len(l.free); n > 0 {
		c = l.free[n-1]
		l.free = l.free[:n-1]
		c.Bind(fn.Node.ID, index, fn.Level)
	} else {
		c = drag.NewCell(l.state, fn.Node.ID, index, fn.Level)
	}
	l.cells[fn.Node.ID] = c
	return c
}

// Layout records the measurement of the visible row at index
func (l *List[ID]) Layout(index int, m drag.Measurement) {
	if c := l.CellAt(index); c != nil {
		c.Layout(m)
	}
}

// SetScrollOffset reports the current scroll position
func (l *List[ID]) SetScrollOffset(offset float64) { l.state.SetScrollOffset(offset) }

// SetContainerSize reports the viewport extent
func (l *List[ID]) SetContainerSize(size float64) { l.state.SetContainerSize(size) }

// SetContentSize reports the content extent
func (l *List[ID]) SetContentSize(size float64) { l.state.SetContentSize(size) }

// CanScroll reports whether the user may scroll the list
func (l *List[ID]) CanScroll() bool {
	return l.state.Options().ScrollEnabled && l.coord.Phase() == drag.Idle
}

// RowAt returns the rendered row under position pos in content coordinates,
// or -1. Every row's target is widened by HitSlop.
func (l *List[ID]) RowAt(pos float64) int {
	slop := l.state.Options().HitSlop
	best, bestDist := -1, 0.0
	for i := l.viewMin; i <= l.viewMax; i++ {
		m, ok := l.state.Measurement(l.flat[i].Node.ID)
		if !ok {
			continue
		}
		if pos >= m.Offset && pos < m.End() {
			return i
		}
		if slop <= 0 || pos < m.Offset-slop || pos >= m.End()+slop {
			continue
		}
		dist := max(m.Offset-pos, pos-m.End())
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// StartDrag makes the visible row at index the active row
func (l *List[ID]) StartDrag(index int) bool {
	if index < 0 || index >= len(l.flat) {
		return false
	}
	fn := l.flat[index]
	l.CellAt(index)
	return l.state.BeginDrag(fn.Node.ID, index, fn.Level)
}

// SetDisabled switches dragging off or on
func (l *List[ID]) SetDisabled(disabled bool) { l.state.SetDisabled(disabled) }

// Cancel abandons the current drag without reordering
func (l *List[ID]) Cancel() { l.coord.Cancel() }

func (l *List[ID]) TouchesDown(pointers int)   { l.coord.TouchesDown(pointers) }
func (l *List[ID]) TouchesUp()                 { l.coord.TouchesUp() }
func (l *List[ID]) PanBegin(ev drag.PanEvent)  { l.coord.Begin(ev) }
func (l *List[ID]) PanUpdate(ev drag.PanEvent) { l.coord.Update(ev) }
func (l *List[ID]) PanEnd(ev drag.PanEvent)    { l.coord.End(ev) }

// Tick advances the drag by dt and returns the placement of every rendered row
func (l *List[ID]) Tick(dt time.Duration) []RowFrame[ID] {
	l.coord.Tick(dt)

	if l.viewMax < l.viewMin {
		return nil
	}
	activeIndex := l.state.ActiveIndex()
	frames := make([]RowFrame[ID], 0, l.viewMax-l.viewMin+1)
	for i := l.viewMin; i <= l.viewMax; i++ {
		c := l.CellAt(i)
		y, x := c.Frame(dt)
		fn := l.flat[i]
		frames = append(frames, RowFrame[ID]{
			Index:  i,
			ID:     fn.Node.ID,
			Level:  fn.Level,
			Name:   fn.Node.Name,
			Offset: c.Row().Offset,
			Y:      y,
			X:      x,
			Active: i == activeIndex,
		})
	}
	return frames
}

func (l *List[ID]) levelAt(index int) (int, bool) {
	if index < 0 || index >= len(l.flat) {
		return 0, false
	}
	return l.flat[index].Level, true
}

func (l *List[ID]) scrollBy(delta float64) {
	if l.host != nil {
		l.host.ScrollBy(delta)
	}
}

func (l *List[ID]) relayout() {
	if l.host != nil {
		l.host.Relayout()
	}
}

func (l *List[ID]) finishDrag(from, to int) {
	defer l.relayout()

	res, err := l.reconciler.Reconcile(l.flat, from, to, l.index)
	if err != nil {
		l.logger.Error("reorder failed", "from", from, "to", to, "error", err)
		return
	}
	if !res.Changed {
		l.logger.Debug("drop left the tree unchanged", "reason", res.Reason)
		return
	}

	l.roots = res.Roots
	l.index = res.Index
	l.reflatten()
	if l.onReorder != nil {
		l.onReorder(res.OldIndex, res.NewIndex, res.Roots)
	}
}
