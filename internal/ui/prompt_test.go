package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(p *Prompt, text string) {
	for _, r := range text {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt()
	assert.False(t, p.IsActive())
	assert.Equal(t, PromptNone, p.HandleKey(key(tcell.KeyEnter)), "inactive prompts ignore keys")

	p.Start("Reveal: ")
	assert.True(t, p.IsActive())
	typeText(p, "nod")
	assert.Equal(t, "nod", p.Text())

	assert.Equal(t, PromptChanged, p.HandleKey(key(tcell.KeyBackspace2)))
	assert.Equal(t, "no", p.Text())

	p.HandleKey(key(tcell.KeyHome))
	typeText(p, "x")
	assert.Equal(t, "xno", p.Text())

	p.HandleKey(key(tcell.KeyEnd))
	assert.Equal(t, PromptNone, p.HandleKey(key(tcell.KeyDelete)))
	p.HandleKey(key(tcell.KeyLeft))
	assert.Equal(t, PromptChanged, p.HandleKey(key(tcell.KeyDelete)))
	assert.Equal(t, "xn", p.Text())

	assert.Equal(t, PromptChanged, p.HandleKey(key(tcell.KeyCtrlU)))
	assert.Equal(t, "", p.Text())
}

func TestPromptSubmitAndCancel(t *testing.T) {
	p := NewPrompt()
	p.Start("Reveal: ")
	typeText(p, "a")
	assert.Equal(t, PromptSubmit, p.HandleKey(key(tcell.KeyEnter)))
	assert.False(t, p.IsActive())
	assert.Equal(t, "a", p.Text())

	p.Start("Reveal: ")
	assert.Equal(t, "", p.Text(), "starting clears the input")
	assert.Equal(t, PromptCancel, p.HandleKey(key(tcell.KeyEscape)))
	assert.False(t, p.IsActive())
}

func TestPromptRender(t *testing.T) {
	screen := newSimScreen(t)
	p := NewPrompt()
	p.Start("Reveal: ")
	typeText(p, "node")

	screen.Clear()
	p.Render(screen, 0, 3)

	width, _ := screen.Size()
	assert.Equal(t, "Reveal: node", rowText(screen, 0, 0, 12))
	assert.Equal(t, " 3 ", rowText(screen, 0, width-3, width))
}
