package xrandr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result is the captured outcome of one process invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error // Set when the process could not be started or was killed
}

// Failed reports whether the invocation should be treated as an error:
// a non-zero exit, a start failure, or anything written to stderr.
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0 || len(bytes.TrimSpace([]byte(r.Stderr))) > 0
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and blocks until it exits.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) Result {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Err = err
		}
	}
	return res
}
