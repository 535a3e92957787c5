// Package config handles the dpswitch settings file.
//
// Settings are application preferences (xrandr command, window title, theme,
// notifications). The display layouts themselves live in a separate layout file,
// see package layouts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultCommand       = "xrandr"
	DefaultTitle         = "dpswitch"
	DefaultTheme         = "default"
	DefaultNotifyTimeout = 5 * time.Second
	DefaultLayoutPath    = "/etc/dpswitch/config.json"
	MaxColumns           = 32
)

// Settings represents the dpswitch settings file.
type Settings struct {
	Xrandr  XrandrConfig  `toml:"xrandr"`
	UI      UIConfig      `toml:"ui"`
	Notify  NotifyConfig  `toml:"notify"`
	Layouts LayoutsConfig `toml:"layouts"`
}

// XrandrConfig controls how xrandr is invoked.
type XrandrConfig struct {
	Command string   `toml:"command"` // Executable name or path
	Timeout Duration `toml:"timeout"` // Per invocation with a unit ("10s"), "0" = wait forever
	DryRun  bool     `toml:"dry_run"` // Log commands without running them
}

// UIConfig holds window settings.
type UIConfig struct {
	Title       string `toml:"title"`
	Theme       string `toml:"theme"`        // Theme name without .css extension
	Columns     int    `toml:"columns"`      // Buttons per row, 0 = single row
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// NotifyConfig controls the desktop notification sent after a switch.
type NotifyConfig struct {
	Enabled bool     `toml:"enabled"`
	Timeout Duration `toml:"timeout"`
}

// LayoutsConfig locates the layout file.
type LayoutsConfig struct {
	Path  string `toml:"path"`  // Used when no path is given on the command line
	Watch bool   `toml:"watch"` // Reload when the file changes
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// DefaultSettings returns Settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Xrandr: XrandrConfig{
			Command: DefaultCommand,
			Timeout: Duration(0),
		},
		UI: UIConfig{
			Title:       DefaultTitle,
			Theme:       DefaultTheme,
			Columns:     0,
			ColorScheme: string(ColorSchemeSystem),
		},
		Notify: NotifyConfig{
			Enabled: false,
			Timeout: Duration(DefaultNotifyTimeout),
		},
		Layouts: LayoutsConfig{
			Path:  DefaultLayoutPath,
			Watch: true,
		},
	}
}

// ConfigDir returns the dpswitch configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dpswitch")
}

// SettingsPath returns the path to the settings file.
func SettingsPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "settings.toml")
}

// ThemesDir returns the directory holding user theme overrides.
func ThemesDir() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// LoadSettings loads settings from the specified path.
// If path is empty, uses the default settings path.
// Returns the defaults if the file doesn't exist.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		path = SettingsPath()
	}

	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

// Save writes the settings to the specified path.
// Creates parent directories if needed.
func (s *Settings) Save(path string) error {
	if path == "" {
		path = SettingsPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the settings are valid.
func (s *Settings) Validate() error {
	if s.Xrandr.Command == "" {
		return errors.New("xrandr.command must not be empty")
	}
	if s.Xrandr.Timeout < 0 {
		return fmt.Errorf("xrandr.timeout must not be negative, got %s", s.Xrandr.Timeout.Duration())
	}

	if s.UI.Columns < 0 || s.UI.Columns > MaxColumns {
		return fmt.Errorf("ui.columns must be between 0 and %d, got %d", MaxColumns, s.UI.Columns)
	}
	if !slices.Contains(ValidColorSchemes(), ColorScheme(s.UI.ColorScheme)) {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", s.UI.ColorScheme, ValidColorSchemes())
	}

	if s.Notify.Timeout < 0 {
		return fmt.Errorf("notify.timeout must not be negative, got %s", s.Notify.Timeout.Duration())
	}

	return nil
}

// LayoutPath returns the layout file to load: the argument when given,
// otherwise the configured path.
func (s *Settings) LayoutPath(arg string) string {
	if arg != "" {
		return arg
	}
	if s.Layouts.Path != "" {
		return s.Layouts.Path
	}
	return DefaultLayoutPath
}
