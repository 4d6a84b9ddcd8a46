package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// PromptAction is the result of a key press in the prompt
type PromptAction int

const (
	PromptNone PromptAction = iota
	PromptChanged
	PromptSubmit
	PromptCancel
)

// Prompt is a one-line input at the bottom of the screen
type Prompt struct {
	active bool
	label  string
	text   []rune
	cursor int
}

// NewPrompt creates an inactive prompt
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Start opens the prompt with an empty input
func (p *Prompt) Start(label string) {
	p.active = true
	p.label = label
	p.text = p.text[:0]
	p.cursor = 0
}

// Stop closes the prompt
func (p *Prompt) Stop() {
	p.active = false
}

// IsActive returns whether the prompt is open
func (p *Prompt) IsActive() bool {
	return p.active
}

// Text returns the current input
func (p *Prompt) Text() string {
	return string(p.text)
}

// HandleKey edits the input
func (p *Prompt) HandleKey(ev *tcell.EventKey) PromptAction {
	if !p.active {
		return PromptNone
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return PromptCancel
	case tcell.KeyEnter:
		p.Stop()
		return PromptSubmit
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.cursor == 0 {
			return PromptNone
		}
		p.text = append(p.text[:p.cursor-1], p.text[p.cursor:]...)
		p.cursor--
		return PromptChanged
	case tcell.KeyDelete:
		if p.cursor >= len(p.text) {
			return PromptNone
		}
		p.text = append(p.text[:p.cursor], p.text[p.cursor+1:]...)
		return PromptChanged
	case tcell.KeyLeft:
		p.cursor = max(p.cursor-1, 0)
	case tcell.KeyRight:
		p.cursor = min(p.cursor+1, len(p.text))
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.text)
	case tcell.KeyCtrlU:
		p.text = p.text[:0]
		p.cursor = 0
		return PromptChanged
	case tcell.KeyRune:
		p.text = append(p.text, 0)
		copy(p.text[p.cursor+1:], p.text[p.cursor:])
		p.text[p.cursor] = ev.Rune()
		p.cursor++
		return PromptChanged
	}
	return PromptNone
}

// Render draws the prompt on row y with the number of matches on the right
func (p *Prompt) Render(screen *Screen, y int, matches int) {
	if !p.active {
		return
	}
	width, _ := screen.Size()
	screen.FillLine(0, y, screen.PromptTextStyle())

	x := screen.DrawString(0, y, p.label, screen.PromptLabelStyle())
	count := fmt.Sprintf(" %d ", matches)
	textWidth := width - x - StringWidth(count)
	screen.DrawStringLimited(x, y, string(p.text), textWidth, screen.PromptTextStyle())
	screen.DrawString(width-StringWidth(count), y, count, screen.PromptMatchStyle())

	cursorX := x + StringWidth(string(p.text[:p.cursor]))
	if cursorX < x+textWidth {
		r := ' '
		if p.cursor < len(p.text) {
			r = p.text[p.cursor]
		}
		screen.SetCell(cursorX, y, r, screen.PromptTextStyle().Reverse(true))
	}
}
