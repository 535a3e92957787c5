package layouts

import (
	"errors"
	"fmt"
	"strings"
)

// ReadError is returned when the layout file cannot be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to open layout file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the layout file is not well-formed or does not match
// the schema. Field is a dotted path such as "configs.dock[1].position".
type ParseError struct {
	Path  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	where := "layout file"
	if e.Path != "" {
		where = "layout file " + e.Path
	}
	if e.Field != "" {
		return fmt.Sprintf("failed to parse %s: %s: %v", where, e.Field, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReferenceError is returned when a layout names a display that is not defined
// under "displays".
type ReferenceError struct {
	Path    string
	Layout  string
	Field   string
	Name    string
	Defined []string // Display names the file does define, sorted
}

func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("layout %q: %s references undefined display %q", e.Layout, e.Field, e.Name)
	if len(e.Defined) > 0 {
		msg += " (defined: " + strings.Join(e.Defined, ", ") + ")"
	}
	return msg
}

func parseError(field string, err error) *ParseError {
	return &ParseError{Field: field, Err: err}
}

// Describe renders a load error for the status area: a short heading line
// followed by the error itself.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		readErr  *ReadError
		parseErr *ParseError
		refErr   *ReferenceError
	)
	heading := "Error: loading layout file"
	switch {
	case errors.As(err, &readErr):
		heading = "Error: opening layout file"
	case errors.As(err, &parseErr):
		heading = "Error: parsing layout file"
	case errors.As(err, &refErr):
		heading = "Error: undefined display"
	}
	return heading + "\n" + err.Error()
}
