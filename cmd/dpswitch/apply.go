package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dpswitch/internal/adapter/output"
	"github.com/jmylchreest/dpswitch/internal/core"
)

var applyOpts struct {
	config string
	format string
	color  bool
}

var applyCmd = &cobra.Command{
	Use:   "apply <layout|index>",
	Short: "Switch to a layout without opening a window",
	Long: `Switch the displays to the named layout and print what was done. The layout
may also be given by its 1-based position in the file or a unique prefix of
its name.

The exit status is non-zero when the layout is unknown or any xrandr command
failed. Failed commands do not stop the remaining steps of the switch.

Examples:
  dpswitch apply dock
  dpswitch apply 2
  dpswitch apply --config ~/layouts.yaml mobile
  dpswitch --dry-run apply presentation`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyOpts.config, "config", "c", "",
		"Path to layout file (default: /etc/dpswitch/config.json)")
	applyCmd.Flags().StringVarP(&applyOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	applyCmd.Flags().BoolVar(&applyOpts.color, "color", isatty.IsTerminal(os.Stdout.Fd()),
		"Color the switch log")
}

func runApply(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(applyOpts.format)
	if err != nil {
		return err
	}

	var layoutArgs []string
	if applyOpts.config != "" {
		layoutArgs = []string{applyOpts.config}
	}
	path, cfg, err := loadLayouts(layoutArgs)
	if err != nil {
		return err
	}

	layout, err := core.Resolve(cfg.Layouts, args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := newSwitcher().Switch(ctx, *layout)

	f := output.NewFormatter(format, output.FormatterOptions{Color: applyOpts.color})
	if err := f.FormatSwitch(os.Stdout, res); err != nil {
		return fmt.Errorf("failed to write switch log: %w", err)
	}
	if res.Log.Failed() {
		return fmt.Errorf("switch to %q failed", layout.Name)
	}
	return nil
}
