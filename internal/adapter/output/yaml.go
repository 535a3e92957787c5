package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/switcher"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FormatLayouts writes layouts as a YAML sequence.
func (f *YAMLFormatter) FormatLayouts(w io.Writer, cfg *model.Config) error {
	return f.encode(w, layoutViews(cfg))
}

// FormatOutputs writes outputs as a YAML sequence.
func (f *YAMLFormatter) FormatOutputs(w io.Writer, outputs []xrandr.Output) error {
	return f.encode(w, outputViews(outputs))
}

// FormatSwitch writes a switch result as a YAML mapping.
func (f *YAMLFormatter) FormatSwitch(w io.Writer, res switcher.Result) error {
	return f.encode(w, newSwitchView(res))
}
