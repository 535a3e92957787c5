// Package output provides output formatters for layouts, outputs and switch results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/switcher"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

// Formatter writes dpswitch data for scripts and terminals.
type Formatter interface {
	// FormatLayouts writes the layouts of cfg in file order.
	FormatLayouts(w io.Writer, cfg *model.Config) error
	// FormatOutputs writes xrandr outputs.
	FormatOutputs(w io.Writer, outputs []xrandr.Output) error
	// FormatSwitch writes the result of a layout switch.
	FormatSwitch(w io.Writer, res switcher.Result) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatDmenu FormatType = "dmenu"
)

// ValidFormats returns all supported format names.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatDmenu}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	for _, f := range ValidFormats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, must be one of: %v", s, ValidFormats())
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatDmenu:
		return NewDmenuFormatter()
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Color   bool // Render switch logs with ANSI colors (plain only)
	Compact bool // Single-line JSON
}

// layoutView is the serialized form of a layout.
type layoutView struct {
	Name     string        `json:"name" yaml:"name"`
	Settings []settingView `json:"settings" yaml:"settings"`
}

type settingView struct {
	Display    string `json:"display" yaml:"display"`
	Port       string `json:"port" yaml:"port"`
	Resolution string `json:"resolution" yaml:"resolution"`
	Rate       string `json:"rate" yaml:"rate"`
	Position   string `json:"position,omitempty" yaml:"position,omitempty"`
	Primary    bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

type switchView struct {
	ID         string       `json:"id" yaml:"id"`
	Layout     string       `json:"layout" yaml:"layout"`
	Failed     bool         `json:"failed" yaml:"failed"`
	DurationMS int64        `json:"duration_ms" yaml:"duration_ms"`
	Lines      []statusLine `json:"lines" yaml:"lines"`
}

type statusLine struct {
	Text  string `json:"text" yaml:"text"`
	Error bool   `json:"error,omitempty" yaml:"error,omitempty"`
}

func layoutViews(cfg *model.Config) []layoutView {
	views := []layoutView{}
	if cfg == nil {
		return views
	}
	for _, l := range cfg.Layouts {
		v := layoutView{Name: l.Name, Settings: make([]settingView, 0, len(l.Settings))}
		for _, s := range l.Settings {
			v.Settings = append(v.Settings, settingView{
				Display:    s.Display.Name,
				Port:       s.Port(),
				Resolution: s.Resolution,
				Rate:       s.Rate,
				Position:   positionText(s.Position),
				Primary:    s.Primary,
			})
		}
		views = append(views, v)
	}
	return views
}

// positionText renders a position as e.g. "right-of laptop".
func positionText(p *model.Position) string {
	if p == nil {
		return ""
	}
	return strings.TrimPrefix(p.Direction.Flag(), "--") + " " + p.Reference.Name
}

func newSwitchView(res switcher.Result) switchView {
	v := switchView{
		ID:         res.ID,
		Layout:     res.Layout,
		Failed:     res.Log.Failed(),
		DurationMS: res.Duration.Milliseconds(),
		Lines:      []statusLine{},
	}
	for _, line := range res.Log.Lines() {
		v.Lines = append(v.Lines, statusLine{Text: line.Text, Error: line.IsError})
	}
	return v
}

func outputViews(outputs []xrandr.Output) []xrandr.Output {
	if outputs == nil {
		return []xrandr.Output{}
	}
	return outputs
}
