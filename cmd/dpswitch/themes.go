package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dpswitch/internal/config"
	"github.com/jmylchreest/dpswitch/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the window themes",
	Long: `List bundled themes and the user themes found in ~/.config/dpswitch/themes.
The theme selected by [ui] theme is marked with *.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	dir := config.ThemesDir()
	for _, name := range theme.ListThemes(dir) {
		mark := " "
		if name == settings.UI.Theme {
			mark = "*"
		}
		source := "bundled"
		if dir != "" && !theme.IsEmbeddedTheme(name) {
			source = "user"
		} else if _, err := os.Stat(filepath.Join(dir, name+".css")); dir != "" && err == nil {
			source = "user (overrides bundled)"
		}
		fmt.Fprintf(os.Stdout, "%s %-16s %s\n", mark, name, source)
	}
	return nil
}
