package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding
func (kb *KeyBinding) GetKey() rune {
	return kb.Key
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// PendingKeyBinding represents a pending key (like 'z') that waits for a second key
type PendingKeyBinding struct {
	Prefix      rune                // The first key (e.g., 'z')
	Description string              // Description of what the pending key does
	Sequences   map[rune]KeyBinding // Map of second key to keybinding
}

// GetKey returns the prefix key
func (pkb *PendingKeyBinding) GetKey() rune {
	return pkb.Prefix
}

// GetDescription returns the description
func (pkb *PendingKeyBinding) GetDescription() string {
	return pkb.Description
}

// GetSequences returns a map of second key to description for display in help
func (pkb *PendingKeyBinding) GetSequences() map[rune]string {
	result := make(map[rune]string)
	for key, binding := range pkb.Sequences {
		result[key] = binding.Description
	}
	return result
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Move down (moves the grabbed row while grabbing)",
			Handler: func(app *App) {
				app.tree.MoveCursor(1)
			},
		},
		{
			Key:         'k',
			Description: "Move up (moves the grabbed row while grabbing)",
			Handler: func(app *App) {
				app.tree.MoveCursor(-1)
			},
		},
		{
			Key:         'h',
			Description: "Collapse item, or go to parent",
			Handler: func(app *App) {
				app.tree.CollapseCursor()
			},
		},
		{
			Key:         'l',
			Description: "Expand item",
			Handler: func(app *App) {
				app.tree.ExpandCursor()
			},
		},
		{
			Key:         ' ',
			Description: "Grab the selected row, press again to drop it",
			Handler: func(app *App) {
				app.toggleGrab()
			},
		},
		{
			Key:         'g',
			Description: "Go to first row",
			Handler: func(app *App) {
				app.tree.SetCursor(0)
			},
		},
		{
			Key:         'G',
			Description: "Go to last row",
			Handler: func(app *App) {
				app.tree.SetCursor(app.tree.List().Len() - 1)
			},
		},
		{
			Key:         '/',
			Description: "Reveal nodes matching a fuzzy query",
			Handler: func(app *App) {
				app.startPrompt(promptReveal, "Reveal: ")
			},
		},
		{
			Key:         ':',
			Description: "Command mode",
			Handler: func(app *App) {
				app.startPrompt(promptCommand, ":")
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.handleCommand("q")
			},
		},
	}
}

// InitializePendingKeybindings sets up the two-key sequences
func (a *App) InitializePendingKeybindings() []PendingKeyBinding {
	return []PendingKeyBinding{
		{
			Prefix:      'z',
			Description: "Folding",
			Sequences: map[rune]KeyBinding{
				'a': {
					Key:         'a',
					Description: "Toggle the selected item",
					Handler: func(app *App) {
						app.tree.ToggleCursor()
					},
				},
				'R': {
					Key:         'R',
					Description: "Expand all",
					Handler: func(app *App) {
						app.tree.List().ExpandAll()
					},
				},
				'M': {
					Key:         'M',
					Description: "Collapse all",
					Handler: func(app *App) {
						app.tree.List().CollapseAll()
					},
				},
			},
		},
	}
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if a.pendingKey != 0 {
		prefix := a.pendingKey
		a.pendingKey = 0
		if ev.Key() != tcell.KeyRune {
			return
		}
		for _, pkb := range a.pendingKeybindings {
			if pkb.Prefix != prefix {
				continue
			}
			if kb, ok := pkb.Sequences[ev.Rune()]; ok {
				kb.Handler(a)
			}
		}
		return
	}

	// Handle special keys first
	switch ev.Key() {
	case tcell.KeyDown:
		a.tree.MoveCursor(1)
		return
	case tcell.KeyUp:
		a.tree.MoveCursor(-1)
		return
	case tcell.KeyLeft:
		a.tree.CollapseCursor()
		return
	case tcell.KeyRight:
		a.tree.ExpandCursor()
		return
	case tcell.KeyEnter:
		a.toggleGrab()
		return
	case tcell.KeyEscape:
		if a.tree.Grabbing() {
			a.tree.CancelGrab()
			a.SetStatus("Move cancelled")
		}
		return
	case tcell.KeyCtrlS:
		a.handleCommand("w")
		return
	case tcell.KeyCtrlC:
		a.handleCommand("q")
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	for _, pkb := range a.pendingKeybindings {
		if pkb.Prefix == r {
			a.pendingKey = r
			return
		}
	}
	for _, kb := range a.keybindings {
		if kb.Key == r {
			kb.Handler(a)
			return
		}
	}
}

// toggleGrab picks up the selected row or drops the grabbed one
func (a *App) toggleGrab() {
	if a.tree.Grabbing() {
		a.tree.Drop()
		return
	}
	if !a.tree.Grab() {
		a.SetStatus("Cannot move now")
		return
	}
	a.SetStatus("Moving: j/k to move, space to drop, Esc to cancel")
}

func (a *App) startPrompt(mode promptMode, label string) {
	if a.tree.Grabbing() {
		return
	}
	a.promptMode = mode
	a.revealRanked = nil
	a.prompt.Start(label)
}
