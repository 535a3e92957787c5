package switcher

import (
	"context"
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/status"
)

// Controller is the display control surface a switch needs.
// *xrandr.Client satisfies it.
type Controller interface {
	Active(ctx context.Context, log *status.Log) []string
	Enable(ctx context.Context, log *status.Log, s model.DisplaySetting) error
	SetPrimary(ctx context.Context, log *status.Log, port string) error
	Disable(ctx context.Context, log *status.Log, port string) error
}

// Result describes a completed switch.
type Result struct {
	ID       string
	Layout   string
	Log      status.Log
	Started  time.Time
	Duration time.Duration
}

// CompleteCallback is invoked after every switch, outside the switch lock.
type CompleteCallback func(Result)

// Switcher runs layout switches one at a time.
type Switcher struct {
	mu         sync.Mutex
	ctl        Controller
	logger     *slog.Logger
	onComplete CompleteCallback
}

// New creates a switcher driving ctl.
func New(ctl Controller, logger *slog.Logger) *Switcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Switcher{ctl: ctl, logger: logger}
}

// OnComplete registers a callback run after each switch.
func (s *Switcher) OnComplete(cb CompleteCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = cb
}

// Switch moves the displays to layout and returns the log of what was done.
// Failed commands are recorded in the log and do not stop the switch.
func (s *Switcher) Switch(ctx context.Context, layout model.Layout) Result {
	s.mu.Lock()
	res := s.switchLocked(ctx, layout)
	cb := s.onComplete
	s.mu.Unlock()

	if cb != nil {
		cb(res)
	}
	return res
}

func (s *Switcher) switchLocked(ctx context.Context, layout model.Layout) Result {
	res := Result{
		ID:      newSwitchID(),
		Layout:  layout.Name,
		Started: time.Now(),
	}
	logger := s.logger.With("switch_id", res.ID, "layout", layout.Name)
	logger.Debug("starting layout switch")

	var log status.Log
	active := s.ctl.Active(ctx, &log)
	plan := Decide(active, layout)
	logger.Debug("planned switch", "active", active, "apply", len(plan.ToApply), "disable", plan.ToDisable)

	log.Append("Mode: "+layout.Name, false)

	for _, setting := range plan.ToApply {
		_ = s.ctl.Enable(ctx, &log, setting)
	}
	if port, ok := plan.Primary(); ok {
		_ = s.ctl.SetPrimary(ctx, &log, port)
	}
	for _, port := range plan.ToDisable {
		_ = s.ctl.Disable(ctx, &log, port)
	}

	res.Log = log
	res.Duration = time.Since(res.Started)
	if log.Failed() {
		logger.Warn("layout switch finished with errors", "duration", res.Duration)
	} else {
		logger.Info("layout switch finished", "duration", res.Duration)
	}
	return res
}

func newSwitchID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}
