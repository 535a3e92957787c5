package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/switcher"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

// JSONFormatter formats data as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// FormatLayouts writes layouts as a JSON array.
func (f *JSONFormatter) FormatLayouts(w io.Writer, cfg *model.Config) error {
	return f.encode(w, layoutViews(cfg))
}

// FormatOutputs writes outputs as a JSON array.
func (f *JSONFormatter) FormatOutputs(w io.Writer, outputs []xrandr.Output) error {
	return f.encode(w, outputViews(outputs))
}

// FormatSwitch writes a switch result as a JSON object.
func (f *JSONFormatter) FormatSwitch(w io.Writer, res switcher.Result) error {
	return f.encode(w, newSwitchView(res))
}
