package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-dragtree/internal/config"
	"github.com/pstuifzand/tui-dragtree/internal/drag"
	"github.com/pstuifzand/tui-dragtree/internal/model"
	"github.com/pstuifzand/tui-dragtree/internal/storage"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "w",
			expected: []string{"w"},
		},
		{
			name:     "command with arguments",
			input:    "w tree.json",
			expected: []string{"w", "tree.json"},
		},
		{
			name:     "double quoted string",
			input:    `title "my tree"`,
			expected: []string{"title", "my tree"},
		},
		{
			name:     "single quoted string",
			input:    "title 'my tree'",
			expected: []string{"title", "my tree"},
		},
		{
			name:     "mixed quotes",
			input:    `title "Hello World" and more`,
			expected: []string{"title", "Hello World", "and", "more"},
		},
		{
			name:     "escaped quotes",
			input:    `set key "value with \"quotes\""`,
			expected: []string{"set", "key", `value with "quotes"`},
		},
		{
			name:     "escaped backslash",
			input:    `w "C:\\Users\\test"`,
			expected: []string{"w", `C:\Users\test`},
		},
		{
			name:     "multiple spaces",
			input:    "command    with    spaces",
			expected: []string{"command", "with", "spaces"},
		},
		{
			name:     "tabs and spaces",
			input:    "command\twith\t  mixed",
			expected: []string{"command", "with", "mixed"},
		},
		{
			name:     "empty quoted string",
			input:    `command ""`,
			expected: []string{"command", ""},
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommand(tt.input))
		})
	}
}

// testDocument is [A{A1, A2}, B, C]
func testDocument() *storage.Document {
	return &storage.Document{
		Title: "Test",
		Nodes: []*model.Node[string]{
			model.NewBranch("A", "Alpha", 1, model.NewLeaf("A1", "Alpha one", 1), model.NewLeaf("A2", "Alpha two", 2)),
			model.NewLeaf("B", "Bravo", 2),
			model.NewLeaf("C", "Charlie", 3),
		},
	}
}

func newTestApp(t *testing.T, doc *storage.Document) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	if doc != nil {
		require.NoError(t, storage.NewJSONStore(path).Save(doc))
	}

	cfg, err := config.LoadFromFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	backups, err := storage.NewBackupManagerIn(filepath.Join(dir, "backups"))
	require.NoError(t, err)

	a, err := NewApp(Params{
		FilePath: path,
		Config:   cfg,
		Screen:   tcell.NewSimulationScreen(""),
		Backups:  backups,
		Debug:    true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	a.tick(0)
	return a, path
}

func press(a *App, keys string) {
	for _, r := range keys {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pressKey(a *App, k tcell.Key) {
	a.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func settle(t *testing.T, a *App) {
	t.Helper()
	for i := 0; i < 1000 && a.tree.List().Phase() != drag.Idle; i++ {
		a.tick(frameInterval)
	}
	require.Equal(t, drag.Idle, a.tree.List().Phase())
}

func flatIDs(a *App) []string {
	var ids []string
	for _, fn := range a.tree.List().Flat() {
		ids = append(ids, fn.Node.ID)
	}
	return ids
}

func assertNestedUnderC(t *testing.T, roots []*model.Node[string]) {
	t.Helper()
	require.Len(t, roots, 2)
	assert.Equal(t, "A", roots[0].ID)
	assert.Equal(t, "C", roots[1].ID)
	require.Len(t, roots[1].Children, 1)
	assert.Equal(t, "B", roots[1].Children[0].ID)
}

func TestNewAppGeneratesTreeForMissingFile(t *testing.T) {
	a, path := newTestApp(t, nil)

	assert.NotEmpty(t, a.doc.Nodes)
	assert.Equal(t, "Untitled", a.doc.Title)
	assert.False(t, a.dirty)
	assert.NoFileExists(t, path)
}

func TestMouseDragReordersSavesAndBacksUp(t *testing.T) {
	a, path := newTestApp(t, testDocument())
	assert.Equal(t, []string{"A", "B", "C"}, flatIDs(a))

	// B is on screen row 2; move it onto C
	a.handleEvent(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	a.tick(frameInterval)
	a.handleEvent(tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone))
	settle(t, a)

	assertNestedUnderC(t, a.doc.Nodes)
	assert.False(t, a.dirty, "reorders are saved right away")

	saved, err := storage.NewJSONStore(path).Load()
	require.NoError(t, err)
	assertNestedUnderC(t, saved.Nodes)

	backups, err := a.backups.FindBackupsForFile(path)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, a.sessionID, backups[0].SessionID)
}

func TestAutosaveCanBeSwitchedOff(t *testing.T) {
	a, path := newTestApp(t, testDocument())
	a.handleCommand("set autosave false")

	press(a, "j j")
	a.tick(frameInterval)
	press(a, " ")
	settle(t, a)

	assertNestedUnderC(t, a.doc.Nodes)
	assert.True(t, a.dirty)

	saved, err := storage.NewJSONStore(path).Load()
	require.NoError(t, err)
	assert.Len(t, saved.Nodes, 3)
}

func TestKeyboardGrabMovesRow(t *testing.T) {
	a, _ := newTestApp(t, testDocument())

	press(a, "j")
	press(a, " ")
	require.True(t, a.tree.Grabbing())
	press(a, "j")
	a.tick(frameInterval)
	press(a, " ")
	assert.False(t, a.tree.Grabbing())
	settle(t, a)

	assertNestedUnderC(t, a.doc.Nodes)
}

func TestEscapeCancelsGrab(t *testing.T) {
	a, _ := newTestApp(t, testDocument())

	press(a, "j j")
	a.tick(frameInterval)
	pressKey(a, tcell.KeyEscape)

	assert.False(t, a.tree.Grabbing())
	settle(t, a)
	assert.Len(t, a.doc.Nodes, 3)
	assert.Equal(t, []string{"A", "B", "C"}, flatIDs(a))
}

func TestFoldingKeys(t *testing.T) {
	a, _ := newTestApp(t, testDocument())

	press(a, "zR")
	assert.Equal(t, []string{"A", "A1", "A2", "B", "C"}, flatIDs(a))
	press(a, "zM")
	assert.Equal(t, []string{"A", "B", "C"}, flatIDs(a))

	press(a, "za")
	assert.Equal(t, []string{"A", "A1", "A2", "B", "C"}, flatIDs(a))
	press(a, "h")
	assert.Equal(t, []string{"A", "B", "C"}, flatIDs(a))
	press(a, "l")
	assert.Equal(t, []string{"A", "A1", "A2", "B", "C"}, flatIDs(a))
}

func TestRevealExpandsAncestorsOfMatches(t *testing.T) {
	a, _ := newTestApp(t, testDocument())

	press(a, "/")
	require.True(t, a.prompt.IsActive())
	press(a, "two")
	assert.Equal(t, []string{"A2"}, a.revealRanked)

	pressKey(a, tcell.KeyEnter)
	assert.False(t, a.prompt.IsActive())
	assert.Equal(t, []string{"A", "A1", "A2", "B", "C"}, flatIDs(a))
	id, ok := a.tree.CursorID()
	require.True(t, ok)
	assert.Equal(t, "A2", id)
}

func TestRankMatchesOrdersByDistance(t *testing.T) {
	a, _ := newTestApp(t, testDocument())

	matches := a.rankMatches("alpha")
	require.Len(t, matches, 3)
	assert.Equal(t, "A", matches[0])
	assert.Empty(t, a.rankMatches("  "))
	assert.Empty(t, a.rankMatches("zzz"))
}

func TestSetDragFalseDisablesDragging(t *testing.T) {
	a, _ := newTestApp(t, testDocument())

	a.handleCommand("set drag false")
	a.handleEvent(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone))
	assert.Equal(t, drag.Idle, a.tree.List().Phase())
	a.handleEvent(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))

	a.handleCommand("set drag true")
	a.handleEvent(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone))
	assert.Equal(t, drag.Dragging, a.tree.List().Phase())
}

func TestQuitRequiresSaveOrForce(t *testing.T) {
	a, path := newTestApp(t, testDocument())

	a.handleCommand(`title "New title"`)
	assert.True(t, a.dirty)
	a.handleCommand("q")
	assert.False(t, a.quit)

	a.handleCommand("w")
	assert.False(t, a.dirty)
	saved, err := storage.NewJSONStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "New title", saved.Title)

	a.handleCommand("title Other")
	a.handleCommand("q!")
	assert.True(t, a.quit)
}

func TestUnknownCommandSetsStatus(t *testing.T) {
	a, _ := newTestApp(t, testDocument())

	a.handleCommand("frobnicate")
	assert.Equal(t, "Unknown command: frobnicate", a.statusMsg)

	a.handleCommand("backups")
	assert.Equal(t, "No backups for this file", a.statusMsg)
}

func TestRenderDrawsTitleRowsAndStatus(t *testing.T) {
	a, _ := newTestApp(t, testDocument())
	a.render()

	line := func(y, n int) string {
		var out []rune
		for x := 0; x < n; x++ {
			r, _ := a.screen.GetContent(x, y)
			out = append(out, r)
		}
		return string(out)
	}

	assert.Equal(t, " Test ", line(0, 6))
	assert.Equal(t, "▸ Alpha", line(1, 7))
	_, height := a.screen.Size()
	assert.Equal(t, " idle ", line(height-1, 6))
}

func TestExportAndImportOutline(t *testing.T) {
	a, _ := newTestApp(t, testDocument())
	dir := t.TempDir()
	md := filepath.Join(dir, "tree.md")

	a.handleCommand("export " + md)
	data, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Equal(t, "- Alpha\n  - Alpha one\n  - Alpha two\n- Bravo\n- Charlie\n", string(data))

	txt := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(txt, []byte("one\n  two\nthree\n"), 0o644))
	a.handleCommand("import " + txt)

	assert.True(t, a.dirty)
	require.Len(t, a.doc.Nodes, 2)
	assert.Equal(t, "one", a.doc.Nodes[0].Name)
	assert.Equal(t, []string{"1", "2"}, flatIDs(a))

	a.handleCommand("import " + filepath.Join(dir, "missing.txt"))
	assert.Contains(t, a.statusMsg, "Import failed")
	assert.Len(t, a.doc.Nodes, 2)
}
