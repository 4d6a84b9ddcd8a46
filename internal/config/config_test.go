package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("haptics", "false")
	if cfg.Get("haptics") != "false" {
		t.Errorf("Expected 'false', got '%s'", cfg.Get("haptics"))
	}
}

func TestSessionOverridesPersisted(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Get("haptics") != "true" {
		t.Errorf("Expected persisted 'true', got '%s'", cfg.Get("haptics"))
	}

	cfg.Set("haptics", "false")
	if cfg.Get("haptics") != "false" {
		t.Errorf("Expected session 'false', got '%s'", cfg.Get("haptics"))
	}
	if cfg.Settings["haptics"] != "true" {
		t.Errorf("Set must not touch persisted settings")
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	all := cfg.GetAll()
	all["original"] = "modified"

	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSettings(t *testing.T) {
	cfg := &Config{}

	if cfg.Get("key") != "" {
		t.Errorf("Get should return empty string for nil settings")
	}

	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}
}

func TestBoolAndFloat(t *testing.T) {
	cfg := defaultConfig()

	assert.True(t, cfg.Bool("haptics", false))
	assert.True(t, cfg.Bool("missing", true))
	cfg.Set("haptics", "nope")
	assert.False(t, cfg.Bool("haptics", false))

	_, ok := cfg.Float("auto_scroll_speed")
	assert.False(t, ok)
	cfg.Set("auto_scroll_speed", "12.5")
	v, ok := cfg.Float("auto_scroll_speed")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)
	cfg.Set("auto_scroll_speed", "fast")
	_, ok = cfg.Float("auto_scroll_speed")
	assert.False(t, ok)
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.NotNil(t, cfg.sessionSettings)
	assert.Equal(t, DefaultDragOptions(), cfg.Drag)
	assert.Equal(t, 2.0, cfg.Drag.IndentationMultiplier)
	assert.True(t, cfg.Drag.ScrollEnabled)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadMergesDragSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
theme = "default"

[drag]
auto_scroll_threshold = 4
drag_item_overflow = true

[drag.animation]
stiffness = 120
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Theme)
	assert.Equal(t, "true", cfg.Get("haptics"))

	opts := cfg.DragOptions()
	assert.Equal(t, 4.0, opts.AutoScrollThreshold)
	assert.True(t, opts.DragItemOverflow)
	assert.Equal(t, 120.0, opts.Animation.Stiffness)

	// Untouched keys keep their defaults
	defaults := DefaultDragOptions()
	assert.Equal(t, defaults.AutoScrollSpeed, opts.AutoScrollSpeed)
	assert.Equal(t, defaults.Animation.Damping, opts.Animation.Damping)
	assert.Equal(t, defaults.IndentationMultiplier, opts.IndentationMultiplier)
}

func TestLoadRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[drag\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestDragOptionsSessionOverrides(t *testing.T) {
	cfg := defaultConfig()
	cfg.Set("indentation_multiplier", "4")
	cfg.Set("activation_distance", "1")

	opts := cfg.DragOptions()
	assert.Equal(t, 4.0, opts.IndentationMultiplier)
	assert.Equal(t, 1.0, opts.ActivationDistance)
	assert.Equal(t, 2.0, cfg.Drag.IndentationMultiplier, "overrides are not persisted")
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := defaultConfig()
	cfg.Settings["theme_note"] = "x"
	cfg.Drag.HitSlop = 1
	cfg.Set("session_only", "yes")

	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Drag, loaded.Drag)
	assert.Equal(t, "x", loaded.Get("theme_note"))
	assert.Equal(t, "", loaded.Get("session_only"))
}
