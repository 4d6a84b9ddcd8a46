package list

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-dragtree/internal/drag"
	"github.com/pstuifzand/tui-dragtree/internal/model"
)

const frame = 16 * time.Millisecond

type fakeHost struct {
	list      *List[string]
	scrolls   []float64
	relayouts int
}

func (h *fakeHost) ScrollBy(delta float64) {
	h.scrolls = append(h.scrolls, delta)
	h.list.SetScrollOffset(h.list.State().ScrollOffset() + delta)
}

func (h *fakeHost) Relayout() { h.relayouts++ }

type reorderCall struct {
	oldIndex, newIndex int
	roots              []*model.Node[string]
}

// sampleTree builds [A{A1, A2}, B]
func sampleTree() []*model.Node[string] {
	a := model.NewBranch("A", "A", 1, model.NewLeaf("A1", "A1", 0), model.NewLeaf("A2", "A2", 0))
	b := model.NewLeaf("B", "B", 2)
	return []*model.Node[string]{a, b}
}

func newList(t *testing.T, roots []*model.Node[string], opts drag.Options, expanded ...string) (*List[string], *fakeHost, *[]reorderCall) {
	t.Helper()
	host := &fakeHost{}
	calls := &[]reorderCall{}
	l := New(Params[string]{
		Roots:    roots,
		Expanded: model.NewSet(expanded...),
		Options:  opts,
		Host:     host,
		OnReorder: func(oldIndex, newIndex int, roots []*model.Node[string]) {
			*calls = append(*calls, reorderCall{oldIndex, newIndex, roots})
		},
		Debug: true,
	})
	host.list = l
	l.SetViewable(0, 100)
	layoutAll(l)
	return l, host, calls
}

// layoutAll measures every visible row as 10 units tall, back to back
func layoutAll(l *List[string]) {
	for i := 0; i < l.Len(); i++ {
		l.Layout(i, drag.Measurement{Offset: float64(i) * 10, Size: 10})
	}
}

func flatIDs(l *List[string]) []string {
	out := make([]string, l.Len())
	for i, fn := range l.Flat() {
		out[i] = fn.Node.ID
	}
	return out
}

func childIDs(nodes []*model.Node[string]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

// dragRow presses row index, moves it by dy and releases it
func dragRow(t *testing.T, l *List[string], index int, dy float64) {
	t.Helper()
	l.TouchesDown(1)
	require.True(t, l.StartDrag(index))
	l.PanBegin(drag.PanEvent{Pointers: 1})
	l.PanUpdate(drag.PanEvent{Pointers: 1, TranslationY: dy})
	l.Tick(frame)
	l.PanEnd(drag.PanEvent{Pointers: 1, TranslationY: dy})
	l.TouchesUp()
}

func settle(t *testing.T, l *List[string]) {
	t.Helper()
	for i := 0; i < 1000 && l.Phase() != drag.Idle; i++ {
		l.Tick(frame)
	}
	require.Equal(t, drag.Idle, l.Phase())
}

func TestNewFlattens(t *testing.T) {
	l, _, _ := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	assert.Equal(t, []string{"A", "A1", "A2", "B"}, flatIDs(l))
	lo, hi := l.Viewable()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 3, hi)
}

func TestDropOntoLeafMakesItParent(t *testing.T) {
	l, host, calls := newList(t, sampleTree(), drag.DefaultOptions(), "A")

	// A2's trailing edge reaches the bottom half of B
	dragRow(t, l, 2, 6)
	assert.Equal(t, drag.Settling, l.Phase())
	assert.Equal(t, 3, l.State().SpacerIndex())
	assert.Empty(t, *calls, "reorder waits for the release animation")

	settle(t, l)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, 1, call.oldIndex)
	assert.Equal(t, 0, call.newIndex)
	assert.Equal(t, []string{"A", "B"}, childIDs(call.roots))
	assert.Equal(t, []string{"A1"}, childIDs(call.roots[0].Children))
	assert.Equal(t, 1, call.roots[0].Children[0].OrderIndex)
	assert.Equal(t, []string{"A2"}, childIDs(call.roots[1].Children))

	assert.Equal(t, call.roots, l.Roots())
	assert.NoError(t, model.Validate(l.Roots(), l.Index()))
	assert.Equal(t, []string{"A", "A1", "B"}, flatIDs(l))
	assert.Positive(t, host.relayouts)

	for i := 0; i < 10; i++ {
		l.Tick(frame)
	}
	assert.Len(t, *calls, 1)
}

func TestReleaseWithoutMovementNeverReorders(t *testing.T) {
	l, host, calls := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	before := model.Clone(l.Roots())

	dragRow(t, l, 1, 0)

	assert.Equal(t, drag.Idle, l.Phase())
	assert.Equal(t, -1, l.State().ActiveIndex())
	for i := 0; i < 100; i++ {
		l.Tick(frame)
	}
	assert.Empty(t, *calls)
	assert.True(t, model.Equal(before, l.Roots()))
	assert.Positive(t, host.relayouts)
}

func TestDropIntoOwnChildIsIgnored(t *testing.T) {
	l, _, calls := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	before := model.Clone(l.Roots())

	dragRow(t, l, 0, 6)
	assert.Equal(t, 1, l.State().SpacerIndex())
	settle(t, l)

	assert.Empty(t, *calls)
	assert.True(t, model.Equal(before, l.Roots()))
	assert.Equal(t, []string{"A", "A1", "A2", "B"}, flatIDs(l))
}

func TestReorderSiblings(t *testing.T) {
	roots := []*model.Node[string]{
		model.NewBranch("X", "X", 1),
		model.NewBranch("Y", "Y", 2, model.NewLeaf("Y1", "Y1", 1)),
		model.NewBranch("Z", "Z", 3, model.NewLeaf("Z1", "Z1", 1)),
	}
	l, _, calls := newList(t, roots, drag.DefaultOptions())

	// Z moves up over the top half of Y
	dragRow(t, l, 2, -14)
	assert.Equal(t, 1, l.State().SpacerIndex())
	settle(t, l)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"X", "Z", "Y"}, flatIDs(l))
}

func TestExpansionHelpers(t *testing.T) {
	l, host, _ := newList(t, sampleTree(), drag.DefaultOptions())
	assert.Equal(t, []string{"A", "B"}, flatIDs(l))

	l.Toggle("A")
	assert.Equal(t, []string{"A", "A1", "A2", "B"}, flatIDs(l))
	l.Toggle("A")
	assert.Equal(t, []string{"A", "B"}, flatIDs(l))

	l.Toggle("B")
	assert.False(t, l.Expanded().Has("B"), "leaves cannot expand")

	l.Expand("A")
	assert.Equal(t, []string{"A", "A1", "A2", "B"}, flatIDs(l))
	l.Collapse("A")
	assert.Equal(t, []string{"A", "B"}, flatIDs(l))

	l.ExpandAll()
	assert.Equal(t, 4, l.Len())
	l.CollapseAll()
	assert.Equal(t, 2, l.Len())

	l.SetExpanded(model.NewSet("A"))
	assert.Equal(t, 4, l.Len())
	lo, hi := l.Viewable()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 3, hi, "window grows back with the list")

	assert.GreaterOrEqual(t, host.relayouts, 7)
}

func TestExpansionChangeCancelsDrag(t *testing.T) {
	l, _, calls := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	l.TouchesDown(1)
	require.True(t, l.StartDrag(3))
	l.PanBegin(drag.PanEvent{Pointers: 1})
	l.PanUpdate(drag.PanEvent{Pointers: 1, TranslationY: -12})

	l.Collapse("A")
	assert.Equal(t, drag.Idle, l.Phase())

	for i := 0; i < 100; i++ {
		l.Tick(frame)
	}
	assert.Empty(t, *calls)
}

func TestSetRootsRefusedWhileDragging(t *testing.T) {
	l, _, _ := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	l.TouchesDown(1)
	require.True(t, l.StartDrag(0))
	assert.False(t, l.CanScroll())

	assert.False(t, l.SetRoots(nil))
	assert.Equal(t, 4, l.Len())
}

func TestCanScroll(t *testing.T) {
	l, _, _ := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	assert.True(t, l.CanScroll())

	opts := drag.DefaultOptions()
	opts.ScrollEnabled = false
	fixed, _, _ := newList(t, sampleTree(), opts, "A")
	assert.False(t, fixed.CanScroll())
}

func TestRowAtHonoursHitSlop(t *testing.T) {
	opts := drag.DefaultOptions()
	opts.HitSlop = 2
	l, _, _ := newList(t, sampleTree(), opts)
	l.Layout(0, drag.Measurement{Offset: 0, Size: 10})
	l.Layout(1, drag.Measurement{Offset: 20, Size: 10})

	assert.Equal(t, 0, l.RowAt(5))
	assert.Equal(t, 0, l.RowAt(11))
	assert.Equal(t, 1, l.RowAt(19))
	assert.Equal(t, 1, l.RowAt(25))
	assert.Equal(t, -1, l.RowAt(15))
	assert.Equal(t, 0, l.RowAt(-1))
	assert.Equal(t, -1, l.RowAt(100))

	plain, _, _ := newList(t, sampleTree(), drag.DefaultOptions())
	plain.Layout(0, drag.Measurement{Offset: 0, Size: 10})
	plain.Layout(1, drag.Measurement{Offset: 20, Size: 10})
	assert.Equal(t, -1, plain.RowAt(11))
}

func TestRowAtOnlyHitsRenderedRows(t *testing.T) {
	l, _, _ := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	assert.Equal(t, 0, l.RowAt(5))

	l.SetViewable(1, 2)
	assert.Equal(t, -1, l.RowAt(5))
	assert.Equal(t, 2, l.RowAt(25))
}

func TestIsExpandedAndCancel(t *testing.T) {
	l, host, calls := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	assert.True(t, l.IsExpanded("A"))
	assert.False(t, l.IsExpanded("B"))

	l.TouchesDown(1)
	require.True(t, l.StartDrag(2))
	l.PanBegin(drag.PanEvent{Pointers: 1})
	l.PanUpdate(drag.PanEvent{Pointers: 1, TranslationY: -16})
	l.Tick(frame)

	before := host.relayouts
	l.Cancel()
	assert.Equal(t, drag.Idle, l.Phase())
	assert.Equal(t, before+1, host.relayouts)
	assert.Empty(t, *calls)

	l.Cancel()
	assert.Equal(t, before+1, host.relayouts)
}

func TestCellsAreRecycled(t *testing.T) {
	roots := make([]*model.Node[string], 5)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		roots[i] = model.NewLeaf(id, id, i+1)
	}
	l, _, _ := newList(t, roots, drag.DefaultOptions())

	l.SetViewable(0, 1)
	c0, c1 := l.CellAt(0), l.CellAt(1)
	require.NotNil(t, c0)
	assert.Same(t, c0, l.CellAt(0))

	l.SetViewable(3, 4)
	c3 := l.CellAt(3)
	assert.Contains(t, []*drag.Cell[string]{c0, c1}, c3)
	assert.Equal(t, "d", c3.Row().ID)
	assert.Equal(t, 3, c3.Row().Index)

	assert.Nil(t, l.CellAt(-1))
	assert.Nil(t, l.CellAt(5))
}

func TestTickReportsVisibleRows(t *testing.T) {
	l, _, _ := newList(t, sampleTree(), drag.DefaultOptions(), "A")
	l.SetViewable(1, 2)

	frames := l.Tick(frame)
	require.Len(t, frames, 2)
	assert.Equal(t, "A1", frames[0].ID)
	assert.Equal(t, 1, frames[0].Level)
	assert.Equal(t, 10.0, frames[0].Offset)
	assert.Equal(t, "A2", frames[1].Name)
	assert.False(t, frames[1].Active)

	l.TouchesDown(1)
	require.True(t, l.StartDrag(2))
	l.PanBegin(drag.PanEvent{Pointers: 1})
	l.PanUpdate(drag.PanEvent{Pointers: 1, TranslationY: 3})
	frames = l.Tick(frame)
	assert.True(t, frames[1].Active)
	assert.Equal(t, 3.0, frames[1].Y)
}

func TestAutoScrollThroughHost(t *testing.T) {
	roots := make([]*model.Node[string], 10)
	for i := range roots {
		id := string(rune('a' + i))
		roots[i] = model.NewLeaf(id, id, i+1)
	}
	opts := drag.DefaultOptions()
	opts.AutoScrollThreshold = 5
	l, host, _ := newList(t, roots, opts)
	l.SetContainerSize(30)
	l.SetContentSize(100)

	l.TouchesDown(1)
	require.True(t, l.StartDrag(1))
	l.PanBegin(drag.PanEvent{Pointers: 1})
	l.PanUpdate(drag.PanEvent{Pointers: 1, TranslationY: 15})
	l.Tick(frame)

	require.NotEmpty(t, host.scrolls)
	assert.Positive(t, host.scrolls[0])
	assert.Positive(t, l.State().AutoScrollDistance())
}
