package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	cfg := DefaultSettings()

	assert.Equal(t, "xrandr", cfg.Xrandr.Command)
	assert.Equal(t, time.Duration(0), cfg.Xrandr.Timeout.Duration())
	assert.False(t, cfg.Xrandr.DryRun)
	assert.Equal(t, "dpswitch", cfg.UI.Title)
	assert.Equal(t, "default", cfg.UI.Theme)
	assert.Equal(t, 0, cfg.UI.Columns)
	assert.Equal(t, "system", cfg.UI.ColorScheme)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout.Duration())
	assert.Equal(t, "/etc/dpswitch/config.json", cfg.Layouts.Path)
	assert.True(t, cfg.Layouts.Watch)
	require.NoError(t, cfg.Validate())
}

func TestLoadSettings_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadSettings("/nonexistent/path/settings.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), cfg)
}

func TestLoadSettings_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	content := `
[xrandr]
command = "/usr/local/bin/xrandr"
timeout = "3s"
dry_run = true

[ui]
title = "Displays"
theme = "high-contrast"
columns = 2
color_scheme = "dark"

[notify]
enabled = true
timeout = "2500ms"

[layouts]
path = "~/.config/dpswitch/layouts.yaml"
watch = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/xrandr", cfg.Xrandr.Command)
	assert.Equal(t, 3*time.Second, cfg.Xrandr.Timeout.Duration())
	assert.True(t, cfg.Xrandr.DryRun)
	assert.Equal(t, "Displays", cfg.UI.Title)
	assert.Equal(t, "high-contrast", cfg.UI.Theme)
	assert.Equal(t, 2, cfg.UI.Columns)
	assert.Equal(t, "dark", cfg.UI.ColorScheme)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, 2500*time.Millisecond, cfg.Notify.Timeout.Duration())
	assert.Equal(t, "~/.config/dpswitch/layouts.yaml", cfg.Layouts.Path)
	assert.False(t, cfg.Layouts.Watch)
}

func TestLoadSettings_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ncolumns = 3\n"), 0644))

	cfg, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.UI.Columns)
	assert.Equal(t, "xrandr", cfg.Xrandr.Command)
	assert.Equal(t, "dpswitch", cfg.UI.Title)
	assert.True(t, cfg.Layouts.Watch)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"invalid toml", `this is not valid toml [`, "failed to parse settings file"},
		{"bad duration", "[xrandr]\ntimeout = \"soon\"\n", "invalid duration"},
		{"duration without unit", "[xrandr]\ntimeout = \"60\"\n", "missing unit"},
		{"empty command", "[xrandr]\ncommand = \"\"\n", "xrandr.command"},
		{"too many columns", "[ui]\ncolumns = 100\n", "ui.columns"},
		{"negative columns", "[ui]\ncolumns = -1\n", "ui.columns"},
		{"bad color scheme", "[ui]\ncolor_scheme = \"sepia\"\n", "invalid color_scheme"},
		{"negative timeout", "[notify]\ntimeout = \"-1s\"\n", "notify.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSettings(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSettings_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "settings.toml")

	cfg := DefaultSettings()
	cfg.UI.Title = "Monitors"
	cfg.Xrandr.Timeout = Duration(1500 * time.Millisecond)

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "Monitors", loaded.UI.Title)
	assert.Equal(t, 1500*time.Millisecond, loaded.Xrandr.Timeout.Duration())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSettings_LayoutPath(t *testing.T) {
	cfg := DefaultSettings()
	assert.Equal(t, "/tmp/x.json", cfg.LayoutPath("/tmp/x.json"))
	assert.Equal(t, DefaultLayoutPath, cfg.LayoutPath(""))

	cfg.Layouts.Path = "/home/me/layouts.yaml"
	assert.Equal(t, "/home/me/layouts.yaml", cfg.LayoutPath(""))

	cfg.Layouts.Path = ""
	assert.Equal(t, DefaultLayoutPath, cfg.LayoutPath(""))
}

func TestSettingsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/dpswitch/settings.toml", SettingsPath())
	assert.Equal(t, "/custom/config/dpswitch/themes", ThemesDir())
}

func TestSettingsPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, SettingsPath(), filepath.Join("dpswitch", "settings.toml"))
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "0s", want: 0},
		{in: "750ms", want: 750 * time.Millisecond},
		{in: "1m30s", want: 90 * time.Second},
		{in: "60", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}
