package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/switcher"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

// DmenuFormatter writes bare names, one per line, for dmenu/rofi/fuzzel pickers:
//
//	dpswitch apply "$(dpswitch list -f dmenu | rofi -dmenu)"
type DmenuFormatter struct{}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter() *DmenuFormatter {
	return &DmenuFormatter{}
}

// FormatLayouts writes layout names in file order.
func (f *DmenuFormatter) FormatLayouts(w io.Writer, cfg *model.Config) error {
	for _, name := range cfg.LayoutNames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// FormatOutputs writes the ports of connected outputs.
func (f *DmenuFormatter) FormatOutputs(w io.Writer, outputs []xrandr.Output) error {
	for _, o := range outputs {
		if !o.Connected {
			continue
		}
		if _, err := fmt.Fprintln(w, o.Port); err != nil {
			return err
		}
	}
	return nil
}

// FormatSwitch writes the log text only.
func (f *DmenuFormatter) FormatSwitch(w io.Writer, res switcher.Result) error {
	_, err := fmt.Fprintln(w, res.Log.Text())
	return err
}
