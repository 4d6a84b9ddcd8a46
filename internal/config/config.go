package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-dragtree/internal/drag"
)

const appDir = "tui-dragtree"

// Config holds application configuration
type Config struct {
	Theme    string            `toml:"theme"`
	Settings map[string]string `toml:"settings"`
	Drag     drag.Options      `toml:"drag"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. Keys missing from the file
// keep their defaults.
func LoadFromFile(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parse(data)
}

func parse(data []byte) (*Config, error) {
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Theme == "" {
		config.Theme = "tokyo-night"
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	config.sessionSettings = make(map[string]string)

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// DefaultDragOptions are the drag options tuned for terminal rows, where one
// row is one cell tall
func DefaultDragOptions() drag.Options {
	opts := drag.DefaultOptions()
	opts.AutoScrollThreshold = 2
	opts.AutoScrollSpeed = 20
	opts.IndentationMultiplier = 2
	opts.HitSlop = 0
	opts.Animation = drag.SpringConfig{
		Damping:                   20,
		Mass:                      0.2,
		Stiffness:                 200,
		RestSpeedThreshold:        0.05,
		RestDisplacementThreshold: 0.05,
	}
	return opts
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme: "tokyo-night",
		Settings: map[string]string{
			"haptics": "true",
		},
		Drag:            DefaultDragOptions(),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appDir), nil
}

// DragOptions returns the drag options with session overrides applied
func (c *Config) DragOptions() drag.Options {
	opts := c.Drag
	if v, ok := c.Float("auto_scroll_speed"); ok {
		opts.AutoScrollSpeed = v
	}
	if v, ok := c.Float("indentation_multiplier"); ok {
		opts.IndentationMultiplier = v
	}
	if v, ok := c.Float("activation_distance"); ok {
		opts.ActivationDistance = v
	}
	return opts
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	return c.Settings[key]
}

// Bool reads a boolean setting, returning def when unset or malformed
func (c *Config) Bool(key string, def bool) bool {
	v, err := strconv.ParseBool(c.Get(key))
	if err != nil {
		return def
	}
	return v
}

// Float reads a numeric setting
func (c *Config) Float(key string) (float64, bool) {
	raw := c.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string, len(c.Settings)+len(c.sessionSettings))
	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}
	return result
}

// Save persists the configuration to the TOML file
// Note: This only persists the Settings map and drag options, not session settings
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveToFile(configPath)
}

// SaveToFile writes the configuration to filePath
func (c *Config) SaveToFile(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
