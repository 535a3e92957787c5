// Package status collects the output of a layout switch for display.
package status

import "strings"

// Line is a single entry in a switch log.
type Line struct {
	Text    string `json:"text" yaml:"text"`
	IsError bool   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Log is the ordered output of one layout switch: command echoes and error text.
// It is a value type; a switch builds one and hands it to a renderer.
//
// Rendering is block-level. When any line is an error the whole block is styled as
// an error, even lines that were plain command echoes.
type Log struct {
	lines  []Line
	failed bool
}

// Reset clears all lines and the error flag.
func (l *Log) Reset() {
	l.lines = nil
	l.failed = false
}

// Append adds a line. An error line raises the error flag for the whole log.
func (l *Log) Append(text string, isError bool) {
	if isError {
		l.failed = true
	}
	l.lines = append(l.lines, Line{Text: text, IsError: isError})
}

// Lines returns a copy of the accumulated lines.
func (l Log) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Failed reports whether any error line was appended since the last reset.
func (l Log) Failed() bool {
	return l.failed
}

// Empty reports whether the log has no lines.
func (l Log) Empty() bool {
	return len(l.lines) == 0
}

// Text returns all lines joined by newlines.
func (l Log) Text() string {
	var sb strings.Builder
	for i, line := range l.lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Text)
	}
	return sb.String()
}

// ErrorLog builds a log holding a single error line, used for load failures.
func ErrorLog(text string) Log {
	var l Log
	l.Append(text, true)
	return l
}
