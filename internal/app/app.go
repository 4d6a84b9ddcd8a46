package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-dragtree/internal/config"
	"github.com/pstuifzand/tui-dragtree/internal/drag"
	"github.com/pstuifzand/tui-dragtree/internal/list"
	"github.com/pstuifzand/tui-dragtree/internal/model"
	"github.com/pstuifzand/tui-dragtree/internal/sample"
	"github.com/pstuifzand/tui-dragtree/internal/storage"
	"github.com/pstuifzand/tui-dragtree/internal/theme"
	"github.com/pstuifzand/tui-dragtree/internal/ui"
)

// frameInterval is the time between two rendered frames
const frameInterval = 16 * time.Millisecond

// statusTimeout is how long a status message stays visible
const statusTimeout = 5 * time.Second

type promptMode int

const (
	promptCommand promptMode = iota
	promptReveal
)

// Params configures an App
type Params struct {
	FilePath string
	// Config defaults to the user's config file
	Config *config.Config
	// Screen defaults to the terminal
	Screen tcell.Screen
	// Backups defaults to the standard backup directory
	Backups *storage.BackupManager
	Logger  *slog.Logger
	Debug   bool
}

// App is the main application controller
type App struct {
	screen  *ui.Screen
	cfg     *config.Config
	store   *storage.JSONStore
	backups *storage.BackupManager
	doc     *storage.Document
	tree    *ui.TreeList
	prompt  *ui.Prompt
	help    *ui.HelpScreen
	logger  *slog.Logger

	keybindings        []KeyBinding
	pendingKeybindings []PendingKeyBinding
	pendingKey         rune

	promptMode   promptMode
	revealRanked []string

	statusMsg  string
	statusTime time.Time
	dirty      bool
	quit       bool
	debugMode  bool
	sessionID  string
	lastFrame  time.Time
}

// NewApp creates a new App instance
func NewApp(p Params) (*App, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := p.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	store := storage.NewJSONStore(p.FilePath)
	doc, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	if len(doc.Nodes) == 0 {
		doc.Nodes = sample.Generate(sample.NewRand(uint64(time.Now().UnixNano())), sample.Params{
			Roots:       6,
			MaxLevel:    3,
			MaxChildren: 4,
		})
		logger.Info("started with a generated tree", "nodes", sample.Count(doc.Nodes))
	}

	backups := p.Backups
	if backups == nil {
		backups, err = storage.NewBackupManager()
		if err != nil {
			logger.Warn("backups disabled", "error", err)
		}
	}

	var tcellScreen tcell.Screen = p.Screen
	if tcellScreen == nil {
		tcellScreen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
	}
	screen, err := ui.NewScreenFrom(tcellScreen, theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, err
	}
	screen.EnableMouse()

	a := &App{
		screen:     screen,
		cfg:        cfg,
		store:      store,
		backups:    backups,
		doc:        doc,
		prompt:     ui.NewPrompt(),
		help:       ui.NewHelpScreen(),
		logger:     logger,
		statusMsg:  "Ready",
		statusTime: time.Now(),
		debugMode:  p.Debug,
		sessionID:  generateSessionID(),
	}

	a.tree = ui.NewTreeList(list.Params[string]{
		Roots:     doc.Nodes,
		Options:   cfg.DragOptions(),
		Haptics:   drag.HapticsFunc(a.pulse),
		OnReorder: a.onReorder,
		Logger:    logger.With("component", "list"),
		Debug:     p.Debug,
	})
	a.tree.List().SetDisabled(!cfg.Bool("drag", true))

	a.keybindings = a.InitializeKeybindings()
	a.pendingKeybindings = a.InitializePendingKeybindings()
	help := make([]ui.KeyBindingInfo, 0, len(a.keybindings)+len(a.pendingKeybindings))
	for i := range a.keybindings {
		help = append(help, &a.keybindings[i])
	}
	for i := range a.pendingKeybindings {
		help = append(help, &a.pendingKeybindings[i])
	}
	a.help.SetKeybindings(help)

	return a, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	// Create a channel for events
	eventChan := make(chan tcell.Event)

	// Start event polling goroutine
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.lastFrame = time.Now()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleEvent(ev)
		case now := <-ticker.C:
			a.tick(now.Sub(a.lastFrame))
			a.lastFrame = now
		}
	}

	return nil
}

// Close closes the application
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// tick advances the list by dt and draws a frame
func (a *App) tick(dt time.Duration) {
	width, height := a.screen.Size()
	a.tree.SetViewport(1, height-2, width)
	a.tree.Tick(dt)
	a.render()
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()

	if a.help.IsVisible() {
		a.help.Render(a.screen)
		a.screen.Show()
		return
	}

	a.screen.DrawStringLimited(0, 0, " "+a.doc.Title+" ", width, a.screen.HeaderStyle())
	a.tree.Render(a.screen)

	if a.prompt.IsActive() {
		a.prompt.Render(a.screen, height-1, len(a.revealRanked))
	} else {
		a.renderStatus(width, height-1)
	}

	a.screen.Show()
}

func (a *App) renderStatus(width, y int) {
	mode := a.tree.List().Phase().String()
	if a.tree.Grabbing() {
		mode = "grab"
	}
	x := a.screen.DrawString(0, y, " "+mode+" ", a.screen.StatusModeStyle())
	if a.dirty {
		x = a.screen.DrawString(x, y, "[+] ", a.screen.StatusModifiedStyle())
	}
	if time.Since(a.statusTime) < statusTimeout {
		a.screen.DrawStringLimited(x, y, a.statusMsg, width-x, a.screen.StatusMessageStyle())
	}
}

// handleEvent dispatches one terminal event
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		if a.prompt.IsActive() || a.help.IsVisible() {
			return
		}
		a.tree.HandleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.prompt.IsActive() {
		a.handlePromptKey(ev)
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' {
			a.help.Toggle()
		}
		return
	}

	a.handleKeypress(ev)
}

func (a *App) handlePromptKey(ev *tcell.EventKey) {
	action := a.prompt.HandleKey(ev)
	switch a.promptMode {
	case promptReveal:
		switch action {
		case ui.PromptChanged:
			a.revealRanked = a.rankMatches(a.prompt.Text())
		case ui.PromptSubmit:
			a.reveal(a.prompt.Text())
			a.revealRanked = nil
		case ui.PromptCancel:
			a.revealRanked = nil
		}
	case promptCommand:
		if action == ui.PromptSubmit {
			a.handleCommand(a.prompt.Text())
		}
	}
}

// onReorder runs after a drop changed the tree
func (a *App) onReorder(oldIndex, newIndex int, roots []*model.Node[string]) {
	a.doc.Nodes = roots
	a.dirty = true
	a.logger.Debug("tree reordered", "oldIndex", oldIndex, "newIndex", newIndex)
	a.SetStatus(fmt.Sprintf("Moved from position %d to %d", oldIndex+1, newIndex+1))

	if a.store.FilePath == "" || !a.cfg.Bool("autosave", true) {
		return
	}
	if err := a.Save(); err != nil {
		a.logger.Error("autosave failed", "error", err)
		a.SetStatus("Failed to save: " + err.Error())
	}
}

// pulse rings the terminal bell when a drag starts
func (a *App) pulse() {
	if a.cfg.Bool("haptics", true) {
		a.screen.Beep()
	}
}

// Save backs up the previous file and writes the tree to disk
func (a *App) Save() error {
	if a.store.FilePath == "" {
		return fmt.Errorf("no file name, use :w <file>")
	}
	a.backup()
	if err := a.store.Save(a.doc); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
