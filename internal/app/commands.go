package app

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-dragtree/internal/outline"
	"github.com/pstuifzand/tui-dragtree/internal/theme"
)

// parseCommand splits a command line into words. Single and double quotes
// group words and a backslash escapes the next character.
func parseCommand(input string) []string {
	var parts []string
	var cur strings.Builder
	inWord := false
	var quote rune
	escaped := false

	for _, r := range input {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, cur.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		if a.dirty {
			a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		} else {
			a.quit = true
		}
	case "q!", "quit!":
		a.quit = true
	case "w", "write":
		if len(parts) > 1 {
			a.store.FilePath = parts[1]
		}
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.SetStatus("Saved " + a.store.FilePath)
		}
	case "wq":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.quit = true
		}
	case "title":
		if len(parts) < 2 {
			a.SetStatus("Usage: :title <text>")
			return
		}
		a.doc.Title = strings.Join(parts[1:], " ")
		a.dirty = true
	case "set":
		a.handleSet(parts[1:])
	case "theme":
		if len(parts) < 2 {
			a.SetStatus("Usage: :theme <name>")
			return
		}
		a.screen.Theme = theme.LoadThemeOrDefault(parts[1])
		a.SetStatus("Theme: " + a.screen.Theme.Name)
	case "expandall":
		a.tree.List().ExpandAll()
	case "collapseall":
		a.tree.List().CollapseAll()
	case "reveal":
		a.reveal(strings.Join(parts[1:], " "))
	case "export":
		if len(parts) < 2 {
			a.SetStatus("Usage: :export <file.md>")
			return
		}
		if err := outline.ExportToMarkdown(a.doc.Nodes, parts[1]); err != nil {
			a.SetStatus("Export failed: " + err.Error())
			return
		}
		a.SetStatus("Exported to " + parts[1])
	case "import":
		if len(parts) < 2 {
			a.SetStatus("Usage: :import <file>")
			return
		}
		a.importOutline(parts[1])
	case "backups":
		a.SetStatus(a.backupSummary())
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// handleSet changes a session setting. Settings read at runtime take effect
// immediately.
func (a *App) handleSet(args []string) {
	switch len(args) {
	case 0:
		a.SetStatus(fmt.Sprintf("%v", a.cfg.GetAll()))
		return
	case 1:
		a.SetStatus(fmt.Sprintf("%s = %q", args[0], a.cfg.Get(args[0])))
		return
	}

	key, value := args[0], strings.Join(args[1:], " ")
	a.cfg.Set(key, value)
	if key == "drag" {
		a.tree.List().SetDisabled(!a.cfg.Bool("drag", true))
	}
	a.SetStatus(fmt.Sprintf("%s = %q", key, value))
}

// importOutline replaces the tree with the outline in path
func (a *App) importOutline(path string) {
	roots, err := outline.ImportFile(path)
	if err != nil {
		a.SetStatus("Import failed: " + err.Error())
		return
	}
	if len(roots) == 0 {
		a.SetStatus("Nothing to import in " + path)
		return
	}
	if !a.tree.List().SetRoots(roots) {
		a.SetStatus("Cannot import while a row is moving")
		return
	}
	a.doc.Nodes = roots
	a.dirty = true
	a.tree.SetCursor(0)
	a.SetStatus(fmt.Sprintf("Imported %d top-level nodes from %s", len(roots), path))
}
