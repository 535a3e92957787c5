package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dpswitch/internal/config"
)

var initOpts struct {
	force   bool
	layouts string
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Long: `Write the default settings to ~/.config/dpswitch/settings.toml (or the
path given with --settings) so they can be edited.

An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initOpts.force, "force", false,
		"Overwrite an existing settings file")
	initCmd.Flags().StringVar(&initOpts.layouts, "layouts", "",
		"Layout file to record as [layouts] path")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := globalOpts.settingsPath
	if path == "" {
		path = config.SettingsPath()
	}
	if path == "" {
		return errors.New("cannot determine settings path, use --settings")
	}

	if _, err := os.Stat(path); err == nil && !initOpts.force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	s := config.DefaultSettings()
	if initOpts.layouts != "" {
		s.Layouts.Path = initOpts.layouts
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.Save(path); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, path)
	return nil
}
