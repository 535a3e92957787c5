package tui

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/xrandr"
)

// copyText copies text to the system clipboard.
func copyText(text string) error {
	cmd := detectClipboardCommand()
	if cmd == "" {
		return errors.New("no clipboard command available (install xclip, xsel or wl-copy)")
	}
	parts := strings.Fields(cmd)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)
	return c.Run()
}

// detectClipboardCommand returns the clipboard command to use.
// xrandr implies an X session, so the X11 tools are tried first.
func detectClipboardCommand() string {
	if _, err := exec.LookPath("xclip"); err == nil {
		return "xclip -selection clipboard"
	}
	if _, err := exec.LookPath("xsel"); err == nil {
		return "xsel --clipboard --input"
	}
	if _, err := exec.LookPath("wl-copy"); err == nil {
		return "wl-copy"
	}
	return ""
}

// layoutScript renders the commands that apply a layout, for pasting into a
// shell script. Outputs to switch off depend on what is active at switch time
// and are not included.
func layoutScript(command string, l model.Layout) string {
	if command == "" {
		command = xrandr.DefaultCommand
	}

	var sb strings.Builder
	primary := ""
	for _, s := range l.Settings {
		sb.WriteString(command + " " + strings.Join(xrandr.EnableArgs(s), " ") + "\n")
		if s.Primary {
			primary = s.Port()
		}
	}
	if primary != "" {
		sb.WriteString(command + " --output " + primary + " --primary\n")
	}
	return sb.String()
}
