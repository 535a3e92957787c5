package theme

import (
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader applies a theme to the GTK display.
type Loader struct {
	mu        sync.Mutex
	logger    *slog.Logger
	provider  *gtk.CSSProvider
	themesDir string
	applied   bool
}

// NewLoader creates a loader that looks for user themes in themesDir.
// It must be called on the GTK main thread.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
	}
}

// Load resolves a theme by name, loads it into the CSS provider and returns it.
// Unknown themes fall back to the default theme.
func (l *Loader) Load(name string) *Theme {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, found, err := Resolve(name, l.themesDir)
	switch {
	case err != nil:
		l.logger.Warn("failed to load user theme, using bundled", "theme", name, "error", err)
	case !found:
		l.logger.Warn("theme not found, using default", "theme", name)
	default:
		l.logger.Debug("loaded theme", "name", t.Name, "path", t.Path, "bundled", t.Bundled)
	}

	l.provider.LoadFromString(t.CSS)
	return t
}

// Apply installs the provider on display, or the default display when nil.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.applied {
		return
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	l.applied = true
}
