package ui

import (
	"fmt"
	"sort"
)

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() rune
	GetDescription() string
}

// PendingKeyBindingInfo represents a pending keybinding for display
type PendingKeyBindingInfo interface {
	GetKey() rune
	GetDescription() string
	GetSequences() map[rune]string // Returns map of second key to description
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the help text, one entry per line
func (h *HelpScreen) Lines() []string {
	result := []string{"Keys:", ""}

	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %c  - %s", kb.GetKey(), kb.GetDescription()))

		pkb, ok := kb.(PendingKeyBindingInfo)
		if !ok {
			continue
		}
		sequences := pkb.GetSequences()
		keys := make([]rune, 0, len(sequences))
		for k := range sequences {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			result = append(result, fmt.Sprintf("    %c%c  - %s", pkb.GetKey(), k, sequences[k]))
		}
	}

	result = append(result,
		"",
		"Mouse:",
		"  Drag a row          - Move it, drop on a row's lower half to nest",
		"  Click an arrow      - Expand or collapse",
		"  Wheel               - Scroll",
		"  Second button       - Abort the drag",
		"",
		"Special Keys:",
		"  Ctrl+S      - Save",
		"  Escape      - Cancel a grab or close the prompt",
		"  Arrow Keys  - Navigate (alternative to hjkl)",
	)
	return result
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	width, height := screen.Size()
	contentStyle := screen.TreeTextStyle()
	borderStyle := screen.TreeGuideStyle()
	titleStyle := screen.HeaderStyle()

	screen.Clear()

	startY := 1
	startX := 2
	boxWidth := width - 4
	if boxWidth < 4 || height < 5 {
		return
	}
	bottom := height - 2

	screen.SetCell(startX, startY, '┌', borderStyle)
	for i := 1; i < boxWidth-1; i++ {
		screen.SetCell(startX+i, startY, '─', borderStyle)
	}
	screen.SetCell(startX+boxWidth-1, startY, '┐', borderStyle)

	screen.SetCell(startX, startY+1, '│', borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, " Help (? to close) ", boxWidth-4, titleStyle)
	screen.SetCell(startX+boxWidth-1, startY+1, '│', borderStyle)

	y := startY + 2
	for _, line := range h.Lines() {
		if y >= bottom {
			break
		}
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
		y++
	}

	screen.SetCell(startX, y, '└', borderStyle)
	for i := 1; i < boxWidth-1; i++ {
		screen.SetCell(startX+i, y, '─', borderStyle)
	}
	screen.SetCell(startX+boxWidth-1, y, '┘', borderStyle)
}
