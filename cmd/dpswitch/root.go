package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dpswitch/internal/config"
	"github.com/jmylchreest/dpswitch/internal/layouts"
	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/notify"
	"github.com/jmylchreest/dpswitch/internal/panel"
	"github.com/jmylchreest/dpswitch/internal/switcher"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global settings and state
var (
	settings   *config.Settings
	globalOpts struct {
		verbose      bool
		settingsPath string
		dryRun       bool
	}
	logger *slog.Logger
)

// rootCmd opens the layout panel when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "dpswitch [config-path]",
	Short: "Switch between multi-monitor layouts",
	Long: `dpswitch switches between predefined multi-monitor layouts using xrandr.

Layouts are read from a JSON or YAML file (default: /etc/dpswitch/config.json).
Running dpswitch without a subcommand opens a window with one button per layout.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		path := globalOpts.settingsPath
		if path == "" {
			path = config.SettingsPath()
		}

		var err error
		settings, err = config.LoadSettings(path)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if globalOpts.dryRun {
			settings.Xrandr.DryRun = true
		}
		return nil
	},
	RunE:         runPanel,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.settingsPath, "settings", "",
		"Path to settings file (default: ~/.config/dpswitch/settings.toml)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.dryRun, "dry-run", false,
		"Log xrandr commands without running them")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

func runPanel(cmd *cobra.Command, args []string) error {
	path, cfg, loadErr := loadLayouts(args)

	code := panel.Run(panel.Options{
		Title:       settings.UI.Title,
		Path:        path,
		Config:      cfg,
		LoadErr:     loadErr,
		Switcher:    newSwitcher(),
		Columns:     settings.UI.Columns,
		Theme:       settings.UI.Theme,
		ThemesDir:   config.ThemesDir(),
		ColorScheme: config.ColorScheme(settings.UI.ColorScheme),
		Watch:       settings.Layouts.Watch,
		Logger:      logger,
	})
	if code != 0 {
		return fmt.Errorf("window exited with status %d", code)
	}
	return nil
}

// loadLayouts loads the layout file named by the first argument, falling
// back to the configured path. A load error is returned alongside the path so
// the UIs can show it.
func loadLayouts(args []string) (string, *model.Config, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	path := settings.LayoutPath(arg)

	cfg, err := layouts.Load(path)
	if err != nil {
		logger.Warn("failed to load layouts", "path", path, "error", err)
		return path, nil, err
	}
	logger.Debug("loaded layouts", "path", path, "count", len(cfg.Layouts))
	return path, cfg, nil
}

func newClient() *xrandr.Client {
	return xrandr.NewClient(xrandr.Options{
		Command: settings.Xrandr.Command,
		Timeout: settings.Xrandr.Timeout.Duration(),
		DryRun:  settings.Xrandr.DryRun,
		Logger:  logger,
	})
}

// newSwitcher builds the switcher and hooks up desktop notifications when
// they are enabled.
func newSwitcher() *switcher.Switcher {
	sw := switcher.New(newClient(), logger)

	if !settings.Notify.Enabled {
		return sw
	}
	sender, err := notify.NewDBusSender()
	if err != nil {
		logger.Warn("desktop notifications unavailable", "error", err)
		return sw
	}
	n := notify.New(sender, settings.Notify.Timeout.Duration(), logger)
	sw.OnComplete(func(res switcher.Result) {
		n.SwitchDone(res.Layout, res.Log.Failed(), res.Log.Text())
	})
	return sw
}
