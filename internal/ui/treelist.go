package ui

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-dragtree/internal/drag"
	"github.com/pstuifzand/tui-dragtree/internal/list"
	"github.com/pstuifzand/tui-dragtree/internal/model"
)

// indentWidth is the number of columns per tree level
const indentWidth = 2

// overscan rows are rendered above and below the viewport
const overscan = 2

// press tracks one primary-button gesture
type press struct {
	row     int
	x       int
	startY  int
	lastY   int
	moved   bool
	aborted bool
}

// TreeList renders a draggable tree in a terminal viewport. It is the host of
// the list: it lays out rows, scrolls, and turns mouse input into pans.
type TreeList struct {
	list *list.List[string]

	top    int
	height int
	width  int
	scroll float64

	cursor   int
	cursorID string

	needsLayout bool
	frames      []list.RowFrame[string]
	press       *press

	grabbing  bool
	grabDelta int
}

// NewTreeList creates a tree list. p.Host is replaced by the tree list itself.
func NewTreeList(p list.Params[string]) *TreeList {
	t := &TreeList{needsLayout: true}
	p.Host = t
	t.list = list.New(p)
	if t.list.Len() > 0 {
		t.cursorID = t.list.Flat()[0].Node.ID
	}
	return t
}

// List returns the underlying list
func (t *TreeList) List() *list.List[string] { return t.list }

// ScrollBy scrolls the viewport, clamped to the content
func (t *TreeList) ScrollBy(delta float64) {
	t.setScroll(t.scroll + delta)
}

// Relayout marks every rendered row for measuring on the next frame
func (t *TreeList) Relayout() {
	t.needsLayout = true
}

// Scroll returns the scroll offset in rows
func (t *TreeList) Scroll() float64 { return t.scroll }

// SetViewport places the list on screen
func (t *TreeList) SetViewport(top, height, width int) {
	if top == t.top && height == t.height && width == t.width {
		return
	}
	t.top, t.height, t.width = top, max(height, 0), width
	t.list.SetContainerSize(float64(t.height))
	t.setScroll(t.scroll)
	t.needsLayout = true
}

func (t *TreeList) maxScroll() float64 {
	return math.Max(float64(t.list.Len()-t.height), 0)
}

func (t *TreeList) setScroll(v float64) {
	t.scroll = math.Min(math.Max(v, 0), t.maxScroll())
	t.list.SetScrollOffset(t.scroll)
	t.updateWindow()
}

// updateWindow tells the list which rows are rendered and measures rows that
// entered the window
func (t *TreeList) updateWindow() {
	first := int(math.Floor(t.scroll)) - overscan
	last := int(math.Ceil(t.scroll)) + t.height + overscan
	t.list.SetViewable(first, last)
	t.layout(t.needsLayout)
}

// layout measures rendered rows. Without force only rows missing a
// measurement for their slot are measured, so hold-over translations survive.
func (t *TreeList) layout(force bool) {
	flat := t.list.Flat()
	t.list.SetContentSize(float64(len(flat)))
	lo, hi := t.list.Viewable()
	for i := lo; i <= hi; i++ {
		want := drag.Measurement{Offset: float64(i), Size: 1}
		if !force {
			if m, ok := t.list.State().Measurement(flat[i].Node.ID); ok && m == want {
				continue
			}
		}
		t.list.Layout(i, want)
	}
	if force {
		t.needsLayout = false
	}
}

// sync brings the window and the cursor up to date with the flat rows
func (t *TreeList) sync() {
	if t.needsLayout {
		t.setScroll(t.scroll)
	}
	if idx := model.IndexOf(t.list.Flat(), t.cursorID); idx >= 0 {
		t.cursor = idx
	} else {
		t.SetCursor(t.cursor)
	}
}

// Tick advances animations by dt and computes the frame to render
func (t *TreeList) Tick(dt time.Duration) {
	t.sync()
	t.frames = t.list.Tick(dt)
	// A drop may have reordered the rows.
	t.sync()
}

// Cursor returns the index of the selected row
func (t *TreeList) Cursor() int { return t.cursor }

// CursorID returns the id of the selected row
func (t *TreeList) CursorID() (string, bool) {
	if t.cursor < 0 || t.cursor >= t.list.Len() {
		return "", false
	}
	return t.cursorID, true
}

// SetCursor selects the visible row at index, clamped to the list
func (t *TreeList) SetCursor(index int) {
	n := t.list.Len()
	if n == 0 {
		t.cursor, t.cursorID = 0, ""
		return
	}
	t.cursor = min(max(index, 0), n-1)
	t.cursorID = t.list.Flat()[t.cursor].Node.ID
	t.ensureCursorVisible()
}

// SelectID moves the cursor to id when it is visible
func (t *TreeList) SelectID(id string) bool {
	idx := model.IndexOf(t.list.Flat(), id)
	if idx < 0 {
		return false
	}
	t.SetCursor(idx)
	return true
}

// MoveCursor moves the cursor by delta rows
func (t *TreeList) MoveCursor(delta int) {
	if t.grabbing {
		t.MoveGrab(delta)
		return
	}
	t.SetCursor(t.cursor + delta)
}

func (t *TreeList) ensureCursorVisible() {
	if t.height <= 0 || !t.list.CanScroll() {
		return
	}
	c := float64(t.cursor)
	switch {
	case c < t.scroll:
		t.setScroll(c)
	case c >= t.scroll+float64(t.height):
		t.setScroll(c - float64(t.height) + 1)
	}
}

// ToggleCursor expands or collapses the selected row
func (t *TreeList) ToggleCursor() {
	if id, ok := t.CursorID(); ok {
		t.list.Toggle(id)
	}
}

// ExpandCursor expands the selected row
func (t *TreeList) ExpandCursor() {
	if id, ok := t.CursorID(); ok {
		t.list.Expand(id)
	}
}

// CollapseCursor collapses the selected row, or moves to its parent when it
// is already collapsed
func (t *TreeList) CollapseCursor() {
	id, ok := t.CursorID()
	if !ok {
		return
	}
	if t.list.IsExpanded(id) {
		t.list.Collapse(id)
		return
	}
	if parent, ok := t.list.Index().Parent(id); ok {
		t.SelectID(parent)
	}
}

// Grabbing reports whether a row was picked up with the keyboard
func (t *TreeList) Grabbing() bool { return t.grabbing }

// Grab picks up the selected row. The row then follows MoveGrab until Drop.
func (t *TreeList) Grab() bool {
	if t.grabbing || t.press != nil || t.list.Phase() != drag.Idle {
		return false
	}
	t.sync()
	t.list.TouchesDown(1)
	if !t.list.StartDrag(t.cursor) {
		t.list.TouchesUp()
		return false
	}
	t.list.PanBegin(drag.PanEvent{Pointers: 1})
	t.grabbing = true
	t.grabDelta = 0
	return true
}

// MoveGrab moves the grabbed row by delta rows
func (t *TreeList) MoveGrab(delta int) {
	if !t.grabbing {
		return
	}
	t.grabDelta += delta
	t.list.PanUpdate(drag.PanEvent{Pointers: 1, TranslationY: panTranslation(t.grabDelta)})
}

// Drop releases the grabbed row into its drop slot
func (t *TreeList) Drop() {
	if !t.grabbing {
		return
	}
	t.grabbing = false
	t.list.PanEnd(drag.PanEvent{Pointers: 1, TranslationY: panTranslation(t.grabDelta)})
	t.list.TouchesUp()
}

// CancelGrab puts the grabbed row back
func (t *TreeList) CancelGrab() {
	if !t.grabbing {
		return
	}
	t.grabbing = false
	t.list.Cancel()
}

// panTranslation converts a pointer move of dy rows into a pan translation.
// A downward move of whole rows puts the trailing edge on the lower boundary
// of the target row, so it is pulled back half a row to land inside it.
func panTranslation(dy int) float64 {
	if dy > 0 {
		return float64(dy) - 0.5
	}
	return float64(dy)
}

// HandleMouse maps mouse input onto the list. The primary button is one
// pointer, any two buttons together are two. It reports whether the event
// was used.
func (t *TreeList) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		if t.list.CanScroll() {
			t.ScrollBy(-1)
		}
		return true
	case buttons&tcell.WheelDown != 0:
		if t.list.CanScroll() {
			t.ScrollBy(1)
		}
		return true
	}

	pointers := 0
	for _, b := range []tcell.ButtonMask{tcell.Button1, tcell.Button2, tcell.Button3} {
		if buttons&b != 0 {
			pointers++
		}
	}

	if pointers > 1 {
		if t.press != nil {
			t.press.aborted = true
		}
		t.list.TouchesDown(pointers)
		return true
	}

	if buttons&tcell.Button1 != 0 {
		if t.press == nil {
			return t.pressAt(x, y)
		}
		if !t.press.aborted && y != t.press.lastY {
			t.press.lastY = y
			t.press.moved = true
			t.list.PanUpdate(drag.PanEvent{Pointers: 1, TranslationY: panTranslation(y - t.press.startY)})
		}
		return true
	}

	if buttons == tcell.ButtonNone && t.press != nil {
		p := t.press
		t.press = nil
		t.list.PanEnd(drag.PanEvent{Pointers: 1, TranslationY: panTranslation(y - p.startY)})
		t.list.TouchesUp()
		if !p.moved && !p.aborted && p.row >= 0 {
			t.click(p.row, p.x)
		}
		return true
	}
	return false
}

func (t *TreeList) pressAt(x, y int) bool {
	if y < t.top || y >= t.top+t.height || t.grabbing {
		return false
	}
	t.sync()
	row := t.list.RowAt(float64(y-t.top) + t.scroll)
	t.press = &press{row: row, x: x, startY: y, lastY: y}
	t.list.TouchesDown(1)
	if row >= 0 {
		t.list.StartDrag(row)
	}
	t.list.PanBegin(drag.PanEvent{Pointers: 1})
	return true
}

// click selects a row, and toggles it when the arrow was hit
func (t *TreeList) click(row, x int) {
	if row >= t.list.Len() {
		return
	}
	t.SetCursor(row)
	fn := t.list.Flat()[row]
	arrow := fn.Level * indentWidth
	if x >= arrow && x < arrow+indentWidth {
		t.list.Toggle(fn.Node.ID)
	}
}

// Render draws the last computed frame. The dragged row is drawn last so it
// floats over its siblings.
func (t *TreeList) Render(screen *Screen) {
	var active *list.RowFrame[string]
	for i := range t.frames {
		f := &t.frames[i]
		if f.Active {
			active = f
			continue
		}
		t.renderRow(screen, f)
	}
	if active == nil {
		return
	}
	state := t.list.State()
	if state.SpacerIndex() >= 0 {
		slotY := t.screenY(state.PlaceholderOffset())
		if t.onScreen(slotY) {
			x := state.SpacerIndentLevel() * indentWidth
			for ; x < t.width; x++ {
				screen.SetCell(x, slotY, '╌', screen.TreeDropSlotStyle())
			}
		}
	}
	t.renderRow(screen, active)
}

func (t *TreeList) screenY(offset float64) int {
	return t.top + int(math.Round(offset-t.scroll))
}

func (t *TreeList) onScreen(y int) bool {
	return y >= t.top && y < t.top+t.height
}

func (t *TreeList) renderRow(screen *Screen, f *list.RowFrame[string]) {
	y := t.screenY(f.Offset + f.Y)
	if !t.onScreen(y) {
		return
	}

	textStyle := screen.TreeTextStyle()
	switch {
	case f.Active:
		textStyle = screen.TreeActiveStyle()
	case f.ID == t.cursorID:
		textStyle = screen.TreeCursorStyle()
	}

	x := f.Level*indentWidth + int(math.Round(f.X))
	if f.Active {
		screen.FillLine(0, y, screen.BackgroundStyle())
		screen.FillLine(max(x, 0), y, textStyle)
	} else {
		for l := 0; l < f.Level; l++ {
			screen.SetCell(l*indentWidth, y, '│', screen.TreeGuideStyle())
		}
	}

	screen.SetCell(x, y, t.arrow(f.ID), screen.TreeArrowStyle())
	x += indentWidth
	screen.DrawStringLimited(x, y, f.Name, t.width-x, textStyle)
}

func (t *TreeList) arrow(id string) rune {
	n, ok := t.list.Index().Nodes[id]
	switch {
	case !ok || n.IsLeaf():
		return '•'
	case t.list.IsExpanded(id):
		return '▾'
	default:
		return '▸'
	}
}
