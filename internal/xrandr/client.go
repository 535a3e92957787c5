// Package xrandr drives the xrandr command line tool.
package xrandr

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/status"
)

// DefaultCommand is the xrandr executable looked up in PATH.
const DefaultCommand = "xrandr"

// activeRegex matches an output that is connected and currently driving a mode, e.g.
// "HDMI-A-0 connected primary 1920x1080+0+0 (normal left inverted ...) 600mm x 340mm".
var activeRegex = regexp.MustCompile(`^([0-9A-Za-z_.\-]+) connected (?:primary )?[0-9]+x[0-9]+\+[0-9]+\+[0-9]+`)

// Options configures a Client.
type Options struct {
	Command string        // Executable, defaults to "xrandr"
	Timeout time.Duration // Per invocation, 0 = wait forever
	DryRun  bool          // Log mutating commands without running them
	Runner  Runner        // Defaults to ExecRunner
	Logger  *slog.Logger
}

// Client issues xrandr commands and records them in a status.Log.
type Client struct {
	command string
	timeout time.Duration
	dryRun  bool
	runner  Runner
	logger  *slog.Logger
}

// NewClient creates a new xrandr client.
func NewClient(opts Options) *Client {
	if opts.Command == "" {
		opts.Command = DefaultCommand
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		command: opts.Command,
		timeout: opts.Timeout,
		dryRun:  opts.DryRun,
		runner:  opts.Runner,
		logger:  opts.Logger,
	}
}

// DryRun reports whether mutating commands are skipped.
func (c *Client) DryRun() bool {
	return c.dryRun
}

// Active returns the ports of all currently enabled outputs, in xrandr order.
// A failed query is recorded in the log and yields no ports.
func (c *Client) Active(ctx context.Context, log *status.Log) []string {
	res := c.exec(ctx)
	if res.Failed() && res.Stdout == "" {
		cerr := c.commandError(nil, res)
		log.Append(cerr.Message(), true)
		c.logger.Warn("failed to query active outputs", "error", cerr)
		return nil
	}
	return ParseActive(res.Stdout)
}

// ParseActive extracts enabled output ports from xrandr query output.
func ParseActive(output string) []string {
	var ports []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		m := activeRegex.FindStringSubmatch(line)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		ports = append(ports, m[1])
	}
	return ports
}

// Enable turns on or reconfigures the display of a setting.
func (c *Client) Enable(ctx context.Context, log *status.Log, s model.DisplaySetting) error {
	return c.run(ctx, log, EnableArgs(s))
}

// SetPrimary marks a port as the primary output.
func (c *Client) SetPrimary(ctx context.Context, log *status.Log, port string) error {
	return c.run(ctx, log, []string{"--output", port, "--primary"})
}

// Disable turns a port off.
func (c *Client) Disable(ctx context.Context, log *status.Log, port string) error {
	return c.run(ctx, log, []string{"--output", port, "--off"})
}

// EnableArgs builds the xrandr arguments for a display setting.
func EnableArgs(s model.DisplaySetting) []string {
	args := []string{
		"--output", s.Port(),
		"--mode", s.Resolution,
		"--rate", s.Rate,
	}
	if s.Position != nil {
		if flag := s.Position.Direction.Flag(); flag != "" {
			args = append(args, flag, s.Position.Reference.Port)
		}
	}
	return args
}

// run echoes the command line into the log, executes it and records any failure.
func (c *Client) run(ctx context.Context, log *status.Log, args []string) error {
	cmdline := c.command + " " + strings.Join(args, " ")
	log.Append(cmdline, false)

	if c.dryRun {
		c.logger.Info("dry run, not executing", "command", cmdline)
		return nil
	}

	start := time.Now()
	res := c.exec(ctx, args...)
	c.logger.Debug("xrandr finished", "command", cmdline, "exit", res.ExitCode, "duration", time.Since(start))

	if !res.Failed() {
		return nil
	}

	cerr := c.commandError(args, res)
	log.Append(cerr.Message(), true)
	c.logger.Warn("xrandr command failed", "command", cmdline, "error", cerr)
	return cerr
}

func (c *Client) exec(ctx context.Context, args ...string) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.runner.Run(ctx, c.command, args...)
}

func (c *Client) commandError(args []string, res Result) *CommandError {
	return &CommandError{
		Command:  c.command,
		Args:     args,
		ExitCode: res.ExitCode,
		Stderr:   strings.TrimSpace(res.Stderr),
		Err:      res.Err,
	}
}
