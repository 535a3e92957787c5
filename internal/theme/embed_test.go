package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme_Default(t *testing.T) {
	css, found := GetEmbeddedTheme("default")
	require.True(t, found, "default theme should be found")
	assert.Contains(t, css, ".layout-button")
	assert.Contains(t, css, "@window_bg_color")
	assert.Contains(t, css, `@import "_status.css"`)
}

func TestGetEmbeddedTheme_NotFound(t *testing.T) {
	for _, name := range []string{"nonexistent", "", "_status"} {
		css, found := GetEmbeddedTheme(name)
		assert.False(t, found, name)
		assert.Empty(t, css)
	}
}

func TestGetEmbeddedPartial(t *testing.T) {
	for _, name := range []string{"_status.css", "_status", "status"} {
		css, found := GetEmbeddedPartial(name)
		require.True(t, found, name)
		assert.Contains(t, css, ".status-error")
	}

	_, found := GetEmbeddedPartial("_nonexistent.css")
	assert.False(t, found)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()
	assert.ElementsMatch(t, BundledThemes, themes)
	for _, name := range themes {
		assert.False(t, strings.HasPrefix(name, "_"), "partial listed as theme: %s", name)
	}
}

func TestIsEmbeddedTheme(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"default", true},
		{"high-contrast", true},
		{"compact", true},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEmbeddedTheme(tt.name))
		})
	}
}

func TestBundledThemes_StyleStatusArea(t *testing.T) {
	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			th, found, err := Resolve(name, "")
			require.NoError(t, err)
			require.True(t, found)

			for _, class := range []string{".dpswitch-window", ".layout-button", ".status-label", ".status-error"} {
				assert.Contains(t, th.CSS, class)
			}
			assert.Equal(t, strings.Count(th.CSS, "{"), strings.Count(th.CSS, "}"), "unbalanced braces")
			assert.NotContains(t, th.CSS, "import failed")
		})
	}
}
