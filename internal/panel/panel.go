// Package panel is the libadwaita window: one button per layout and a status
// label showing what the last switch did.
package panel

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/dpswitch/internal/config"
	"github.com/jmylchreest/dpswitch/internal/layouts"
	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/switcher"
	"github.com/jmylchreest/dpswitch/internal/theme"
)

const appID = "io.github.jmylchreest.dpswitch"

// Options configures the window.
type Options struct {
	Title       string
	Path        string // Layout file, watched when Watch is set
	Config      *model.Config
	LoadErr     error
	Switcher    *switcher.Switcher
	Columns     int
	Theme       string
	ThemesDir   string
	ColorScheme config.ColorScheme
	Watch       bool
	Logger      *slog.Logger
}

// Panel owns the GTK widgets. All methods except the switch goroutine run on
// the GTK main loop.
type Panel struct {
	opts   Options
	logger *slog.Logger
	state  *state

	window   *adw.ApplicationWindow
	grid     *gtk.Grid
	label    *gtk.Label
	buttons  []*gtk.Button
	classes  []string
	attached bool

	watcher *layouts.Watcher
}

// Run opens the window and blocks until it is closed, returning the exit code.
func Run(opts Options) int {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Panel{
		opts:   opts,
		logger: logger,
		state:  newState(opts.Config, opts.LoadErr),
	}

	app := adw.NewApplication(appID, 0)
	app.ConnectActivate(func() {
		if p.window != nil {
			p.window.Present()
			return
		}
		p.activate(app)
	})
	app.ConnectShutdown(func() {
		if p.watcher != nil {
			_ = p.watcher.Stop()
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, closing window", "signal", sig)
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()

	// Arguments were already parsed by the caller.
	return app.Run([]string{os.Args[0]})
}

func (p *Panel) activate(app *adw.Application) {
	applyColorScheme(p.opts.ColorScheme)

	loader := theme.NewLoader(p.opts.ThemesDir, p.logger)
	th := loader.Load(p.opts.Theme)
	loader.Apply(nil)

	title := p.opts.Title
	if title == "" {
		title = config.DefaultTitle
	}

	p.window = adw.NewApplicationWindow(&app.Application)
	p.window.SetTitle(title)
	p.window.AddCSSClass("dpswitch-window")
	p.window.AddCSSClass("theme-" + th.Name)

	header := adw.NewHeaderBar()
	header.SetTitleWidget(adw.NewWindowTitle(title, p.opts.Path))

	p.grid = gtk.NewGrid()
	p.grid.AddCSSClass("layout-grid")
	p.grid.SetColumnSpacing(6)
	p.grid.SetRowSpacing(6)

	p.label = gtk.NewLabel("")
	p.label.SetXAlign(0)
	p.label.SetSelectable(true)
	p.label.SetWrap(true)

	box := gtk.NewBox(gtk.OrientationVertical, 0)
	box.Append(header)
	box.Append(p.grid)
	p.window.SetContent(box)

	p.rebuild()
	p.startWatcher()
	p.window.Present()
}

// rebuild recreates the buttons from the current layouts.
func (p *Panel) rebuild() {
	for _, btn := range p.buttons {
		p.grid.Remove(btn)
	}
	if p.attached {
		p.grid.Remove(p.label)
	}
	p.buttons = p.buttons[:0]

	all := p.state.layouts()
	for i, l := range all {
		btn := gtk.NewButtonWithLabel(l.Name)
		btn.AddCSSClass("layout-button")
		btn.ConnectClicked(func() {
			p.switchTo(l)
		})

		col, row := gridPosition(i, p.opts.Columns)
		p.grid.Attach(btn, col, row, 1, 1)
		p.buttons = append(p.buttons, btn)
	}

	_, lastRow := gridPosition(max(len(all)-1, 0), p.opts.Columns)
	p.grid.Attach(p.label, 0, lastRow+1, statusSpan(len(all), p.opts.Columns), 1)
	p.attached = true

	p.setSensitive(!p.state.busy())
	p.renderStatus()
}

// switchTo runs a switch off the main loop and renders the result back on it.
func (p *Panel) switchTo(layout model.Layout) {
	if p.opts.Switcher == nil || !p.state.begin(layout.Name) {
		return
	}
	p.setSensitive(false)
	p.renderStatus()

	go func() {
		res := p.opts.Switcher.Switch(context.Background(), layout)
		glib.IdleAdd(func() {
			p.state.finish(res.Log)
			p.setSensitive(true)
			p.renderStatus()
		})
	}()
}

func (p *Panel) setSensitive(sensitive bool) {
	for _, btn := range p.buttons {
		btn.SetSensitive(sensitive)
	}
}

func (p *Panel) renderStatus() {
	text, classes := p.state.status()
	for _, c := range p.classes {
		if !slices.Contains(classes, c) {
			p.label.RemoveCSSClass(c)
		}
	}
	for _, c := range classes {
		p.label.AddCSSClass(c)
	}
	p.classes = classes
	p.label.SetText(text)
}

func (p *Panel) startWatcher() {
	if !p.opts.Watch || p.opts.Path == "" {
		return
	}

	w, err := layouts.NewWatcher(p.opts.Path, p.logger)
	if err != nil {
		p.logger.Warn("failed to create layout watcher", "error", err)
		return
	}
	w.SetReloadCallback(func(cfg *model.Config, err error) {
		glib.IdleAdd(func() {
			if p.state.reload(cfg, err) {
				p.rebuild()
				return
			}
			p.renderStatus()
		})
	})
	if err := w.Start(); err != nil {
		p.logger.Warn("failed to start layout watcher", "error", err)
		_ = w.Stop()
		return
	}
	p.watcher = w
}

func applyColorScheme(scheme config.ColorScheme) {
	sm := adw.StyleManagerGetDefault()
	switch scheme {
	case config.ColorSchemeLight:
		sm.SetColorScheme(adw.ColorSchemeForceLight)
	case config.ColorSchemeDark:
		sm.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		sm.SetColorScheme(adw.ColorSchemeDefault)
	}
}
