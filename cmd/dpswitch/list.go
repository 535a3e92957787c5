package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dpswitch/internal/adapter/output"
	"github.com/jmylchreest/dpswitch/internal/core"
	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

var listOpts struct {
	// Filter options
	search    string
	connected bool
	limit     int

	// Output options
	format  string
	compact bool
}

var listCmd = &cobra.Command{
	Use:   "list [config-path]",
	Short: "List the layouts defined in the layout file",
	Long: `List layouts in file order.

Examples:
  # Human readable summary
  dpswitch list

  # Pick a layout usable with the monitors plugged in right now
  dpswitch list --connected -f dmenu | fuzzel -d | xargs dpswitch apply

  # Inspect a YAML layout file as JSON
  dpswitch list ~/.config/dpswitch/layouts.yaml -f json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	// Filter flags
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Only layouts whose name, display or port contains this text")
	listCmd.Flags().BoolVar(&listOpts.connected, "connected", false,
		"Only layouts whose displays are all connected (queries xrandr)")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of layouts to show (0=unlimited)")

	// Output flags
	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, dmenu)")
	listCmd.Flags().BoolVar(&listOpts.compact, "compact", false,
		"Single-line JSON output")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOpts.format)
	if err != nil {
		return err
	}

	_, cfg, err := loadLayouts(args)
	if err != nil {
		return err
	}

	opts := core.FilterOptions{
		Search: listOpts.search,
		Limit:  listOpts.limit,
	}
	if listOpts.connected {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		outputs, err := newClient().Outputs(ctx)
		if err != nil {
			return err
		}
		opts.Connected = xrandr.ConnectedPorts(outputs)
	}

	filtered := &model.Config{
		Displays: cfg.Displays,
		Layouts:  core.Filter(cfg.Layouts, opts),
	}

	f := output.NewFormatter(format, output.FormatterOptions{Compact: listOpts.compact})
	if err := f.FormatLayouts(os.Stdout, filtered); err != nil {
		return fmt.Errorf("failed to write layouts: %w", err)
	}
	return nil
}
