package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/dpswitch/internal/layouts"
	"github.com/jmylchreest/dpswitch/internal/model"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Options
	Watch  bool // Reload when the layout file changes
	Logger *slog.Logger
}

// Run starts the TUI and blocks until it exits.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Watch && opts.Path != "" {
		w, err := layouts.NewWatcher(opts.Path, logger)
		if err != nil {
			logger.Warn("failed to create layout watcher", "error", err)
		} else {
			updates := make(chan Reload, 1)
			w.SetReloadCallback(func(cfg *model.Config, err error) {
				// Drop a stale result rather than block the watcher.
				select {
				case <-updates:
				default:
				}
				updates <- Reload{Config: cfg, Err: err}
			})
			if err := w.Start(); err != nil {
				logger.Warn("failed to start layout watcher", "error", err)
				_ = w.Stop()
			} else {
				defer func() { _ = w.Stop() }()
				opts.Updates = updates
			}
		}
	}

	p := tea.NewProgram(New(opts.Options), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
