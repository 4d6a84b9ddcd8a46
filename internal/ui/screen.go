package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-dragtree/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreenWithTheme creates a terminal screen with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes s and wraps it. Tests pass a simulation screen.
func NewScreenFrom(s tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := s.Size()
	return &Screen{
		tcellScreen: s,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Fill(' ', s.BackgroundStyle())
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text at x, y and returns the column after it. Wide runes
// take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, r, style)
		x += w
	}
	return x
}

// DrawStringLimited draws text cut to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine paints columns x.. of row y with style
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// GetContent returns the rune drawn at x, y
func (s *Screen) GetContent(x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.tcellScreen.GetContent(x, y)
	return r, style
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the size after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	s.width, s.height = s.tcellScreen.Size()
	return s.width, s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseMotionEvents)
}

// Beep rings the terminal bell
func (s *Screen) Beep() {
	_ = s.tcellScreen.Beep()
}

// Theme-aware styles

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.TreeBackground)
}

// TreeTextStyle returns the style of ordinary rows
func (s *Screen) TreeTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeText, s.Theme.Colors.TreeBackground)
}

// TreeCursorStyle returns the style of the row under the cursor
func (s *Screen) TreeCursorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeCursor, s.Theme.Colors.TreeBackground).Bold(true)
}

// TreeArrowStyle returns the style of expand arrows and leaf bullets
func (s *Screen) TreeArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeArrow, s.Theme.Colors.TreeBackground)
}

// TreeGuideStyle returns the style of indentation guides
func (s *Screen) TreeGuideStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeGuide, s.Theme.Colors.TreeBackground)
}

// TreeActiveStyle returns the style of the dragged row
func (s *Screen) TreeActiveStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeActiveRow, s.Theme.Colors.TreeActiveBg).Bold(true)
}

// TreeDropSlotStyle returns the style of the slot the dragged row will land in
func (s *Screen) TreeDropSlotStyle() tcell.Style {
	fg := theme.Blend(s.Theme.Colors.TreeDropSlot, s.Theme.Colors.TreeBackground, 0.3)
	return theme.ColorPairToStyle(fg, s.Theme.Colors.TreeBackground)
}

// PromptLabelStyle returns the style of the reveal prompt label
func (s *Screen) PromptLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.PromptLabel).Bold(true)
}

// PromptTextStyle returns the style of typed prompt text
func (s *Screen) PromptTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.PromptText)
}

// PromptMatchStyle returns the style of the match count
func (s *Screen) PromptMatchStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.PromptMatch)
}

// StatusModeStyle returns the style for the drag phase indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for the modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusModified)
}

// HeaderStyle returns the style for the header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
