package panel

import (
	"sync"

	"github.com/jmylchreest/dpswitch/internal/layouts"
	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/status"
)

// CSS classes applied to the status label.
const (
	classStatus      = "status-label"
	classStatusError = "status-error"
	classAdwError    = "error"
)

// state is the toolkit-independent part of the panel: the current layouts,
// the status log on display and whether a switch is running.
type state struct {
	mu        sync.Mutex
	cfg       *model.Config
	log       status.Log
	switching string
}

func newState(cfg *model.Config, loadErr error) *state {
	s := &state{cfg: cfg}
	if loadErr != nil {
		s.log = status.ErrorLog(layouts.Describe(loadErr))
	}
	return s
}

// layouts returns the layouts to show buttons for, in file order.
func (s *state) layouts() []model.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return nil
	}
	return s.cfg.Layouts
}

// begin marks a switch to name as running. It reports false when another
// switch has not finished yet.
func (s *state) begin(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.switching != "" {
		return false
	}
	s.switching = name
	return true
}

// finish records the log of the finished switch.
func (s *state) finish(log status.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switching = ""
	s.log = log
}

func (s *state) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.switching != ""
}

// reload applies a reload result. A failed reload keeps the current layouts
// and shows the error. It reports whether the layouts changed.
func (s *state) reload(cfg *model.Config, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log = status.ErrorLog(layouts.Describe(err))
		return false
	}
	s.cfg = cfg
	s.log.Reset()
	return true
}

// status returns the text and CSS classes for the status label.
func (s *state) status() (string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.switching != "" {
		return "Switching to " + s.switching + "...", []string{classStatus}
	}
	return statusView(s.log)
}

// statusView styles the whole block as an error when any line is one.
func statusView(log status.Log) (string, []string) {
	classes := []string{classStatus}
	if log.Failed() {
		classes = append(classes, classStatusError, classAdwError)
	}
	return log.Text(), classes
}

// gridPosition places the i-th button. columns <= 0 keeps every button on
// one row.
func gridPosition(i, columns int) (col, row int) {
	if columns <= 0 {
		return i, 0
	}
	return i % columns, i / columns
}

// statusSpan is the number of grid columns the status label covers.
func statusSpan(buttons, columns int) int {
	span := buttons
	if columns > 0 && columns < buttons {
		span = columns
	}
	return max(span, 1)
}
