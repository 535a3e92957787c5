package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/status"
	"github.com/jmylchreest/dpswitch/internal/switcher"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

// PlainFormatter formats data as human-readable text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// FormatLayouts writes one block per layout:
//
//	dock (2 displays)
//	    external  HDMI-1  1920x1080@60  primary
//	    laptop    eDP-1   1920x1080@60  left-of external
func (f *PlainFormatter) FormatLayouts(w io.Writer, cfg *model.Config) error {
	for _, l := range layoutViews(cfg) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%s)\n", l.Name, english.Plural(len(l.Settings), "display", ""))

		nameWidth, portWidth := 0, 0
		for _, s := range l.Settings {
			nameWidth = max(nameWidth, len(s.Display))
			portWidth = max(portWidth, len(s.Port))
		}
		for _, s := range l.Settings {
			var extra []string
			if s.Primary {
				extra = append(extra, "primary")
			}
			if s.Position != "" {
				extra = append(extra, s.Position)
			}
			line := fmt.Sprintf("    %-*s  %-*s  %s@%s  %s", nameWidth, s.Display, portWidth, s.Port,
				s.Resolution, s.Rate, strings.Join(extra, ", "))
			sb.WriteString(strings.TrimRight(line, " ") + "\n")
		}

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatOutputs writes one line per output.
func (f *PlainFormatter) FormatOutputs(w io.Writer, outputs []xrandr.Output) error {
	for _, o := range outputs {
		state := "disconnected"
		switch {
		case o.Enabled:
			state = fmt.Sprintf("%s@%s +%d+%d", o.Mode, o.Rate, o.X, o.Y)
		case o.Connected:
			state = "off"
		}
		if o.Primary {
			state += " primary"
		}
		if o.Connected {
			state += fmt.Sprintf(" (%s)", english.Plural(len(o.Modes), "mode", ""))
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", o.Port, state); err != nil {
			return err
		}
	}
	return nil
}

// FormatSwitch writes the switch log.
func (f *PlainFormatter) FormatSwitch(w io.Writer, res switcher.Result) error {
	text := res.Log.Text()
	if f.opts.Color {
		text = status.RenderANSI(res.Log)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
