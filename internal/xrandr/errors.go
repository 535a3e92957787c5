package xrandr

import (
	"fmt"
	"strings"
)

// CommandError describes a failed xrandr invocation.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	cmdline := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", cmdline, e.Err)
	case e.Stderr != "":
		return fmt.Sprintf("%s: exit status %d: %s", cmdline, e.ExitCode, e.Stderr)
	default:
		return fmt.Sprintf("%s: exit status %d", cmdline, e.ExitCode)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user for the failure.
func (e *CommandError) Message() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}
