package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dpswitch/internal/adapter/output"
)

var outputsOpts struct {
	format  string
	compact bool
}

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "Show the outputs xrandr reports",
	Long: `Query xrandr and list every output with its connection state, current
geometry and primary flag. Useful for finding the port names to put in a
layout file.`,
	Args: cobra.NoArgs,
	RunE: runOutputs,
}

func init() {
	rootCmd.AddCommand(outputsCmd)

	outputsCmd.Flags().StringVarP(&outputsOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, dmenu)")
	outputsCmd.Flags().BoolVar(&outputsOpts.compact, "compact", false,
		"Single-line JSON output")
}

func runOutputs(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputsOpts.format)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	outputs, err := newClient().Outputs(ctx)
	if err != nil {
		return err
	}

	f := output.NewFormatter(format, output.FormatterOptions{Compact: outputsOpts.compact})
	if err := f.FormatOutputs(os.Stdout, outputs); err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	return nil
}
