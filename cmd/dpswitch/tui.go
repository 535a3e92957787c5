package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dpswitch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [config-path]",
	Short: "Switch layouts from the terminal",
	Long: `Launch the terminal interface: a list of layouts with the status of the
last switch below it.

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       Apply the selected layout
  i, tab      Show layout details
  c           Copy the layout as an xrandr script
  r           Reload the layout file
  ?           Show help
  q           Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	path, cfg, loadErr := loadLayouts(args)

	return tui.Run(tui.RunOptions{
		Options: tui.Options{
			Title:    settings.UI.Title,
			Path:     path,
			Config:   cfg,
			LoadErr:  loadErr,
			Switcher: newSwitcher(),
			Command:  settings.Xrandr.Command,
		},
		Watch:  settings.Layouts.Watch,
		Logger: logger,
	})
}
