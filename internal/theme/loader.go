package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration. Colors are keyed by
// their snake_case name, e.g. tree_active_row.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "tui-dragtree", "themes"),
		filepath.Join(home, ".local", "share", "tui-dragtree", "themes"),
	}
}

// findThemeFile searches for a theme file in dirs
func findThemeFile(themeName string, dirs []string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName, getThemePaths())
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

func (c *Colors) byName() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"tree_text":       &c.TreeText,
		"tree_cursor":     &c.TreeCursor,
		"tree_arrow":      &c.TreeArrow,
		"tree_guide":      &c.TreeGuide,
		"tree_active_row": &c.TreeActiveRow,
		"tree_active_bg":  &c.TreeActiveBg,
		"tree_drop_slot":  &c.TreeDropSlot,
		"tree_background": &c.TreeBackground,
		"prompt_label":    &c.PromptLabel,
		"prompt_text":     &c.PromptText,
		"prompt_match":    &c.PromptMatch,
		"status_mode":     &c.StatusMode,
		"status_message":  &c.StatusMessage,
		"status_modified": &c.StatusModified,
		"header_title":    &c.HeaderTitle,
	}
}

// configToTheme converts a ThemeConfig to a Theme on top of Tokyo Night.
// Unknown color keys are an error.
func configToTheme(config ThemeConfig) (*Theme, error) {
	theme := TokyoNight()
	slots := theme.Colors.byName()

	for key, value := range config.Colors {
		slot, ok := slots[key]
		if !ok {
			return nil, fmt.Errorf("unknown theme color %q", key)
		}
		if value != "" {
			*slot = ParseColorString(value)
		}
	}

	if config.Name != "" {
		theme.Name = config.Name
	}

	return theme, nil
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
