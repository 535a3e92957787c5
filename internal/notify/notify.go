// Package notify sends freedesktop desktop notifications about layout switches.
package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	godbus "github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	notifyCall = busName + ".Notify"
	appName    = "dpswitch"
)

// Level maps to the freedesktop urgency hint.
type Level byte

const (
	LevelLow Level = iota
	LevelNormal
	LevelCritical
)

// Message is a notification to send.
type Message struct {
	Summary string
	Body    string
	Icon    string
	Level   Level
	Timeout time.Duration
}

// Sender delivers a message and returns the server-assigned id.
// replaces is the id of a previous notification to replace, or 0.
type Sender interface {
	Send(msg Message, replaces uint32) (uint32, error)
}

// Notifier sends one notification per switch, replacing the previous one
// so that rapid switches do not stack up.
type Notifier struct {
	mu      sync.Mutex
	sender  Sender
	logger  *slog.Logger
	timeout time.Duration
	lastID  uint32
}

// New creates a notifier. A nil sender disables it.
func New(sender Sender, timeout time.Duration, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender:  sender,
		logger:  logger,
		timeout: timeout,
	}
}

// SwitchDone reports the outcome of a switch to layout.
func (n *Notifier) SwitchDone(layout string, failed bool, detail string) {
	msg := Message{
		Summary: "Display layout: " + layout,
		Icon:    "video-display",
		Level:   LevelLow,
		Timeout: n.timeout,
	}
	if failed {
		msg.Summary = "Display layout " + layout + " failed"
		msg.Body = lastLines(detail, 3)
		msg.Icon = "dialog-error"
		msg.Level = LevelCritical
	}
	n.Send(msg)
}

// Send delivers msg unless there is no sender. Failures are logged.
func (n *Notifier) Send(msg Message) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sender == nil {
		return
	}

	id, err := n.sender.Send(msg, n.lastID)
	if err != nil {
		n.logger.Warn("failed to send notification", "summary", msg.Summary, "error", err)
		return
	}
	n.lastID = id
	n.logger.Debug("sent notification", "id", id, "summary", msg.Summary)
}

func lastLines(s string, max int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return strings.Join(lines, "\n")
}

// DBusSender calls org.freedesktop.Notifications on the session bus.
type DBusSender struct {
	conn *godbus.Conn
}

// NewDBusSender connects to the session bus.
func NewDBusSender() (*DBusSender, error) {
	conn, err := godbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusSender{conn: conn}, nil
}

// Send implements Sender.
func (s *DBusSender) Send(msg Message, replaces uint32) (uint32, error) {
	hints := map[string]godbus.Variant{
		"urgency":       godbus.MakeVariant(byte(msg.Level)),
		"category":      godbus.MakeVariant("device"),
		"transient":     godbus.MakeVariant(true),
		"desktop-entry": godbus.MakeVariant(appName),
	}

	timeout := int32(-1)
	if msg.Timeout > 0 {
		timeout = int32(msg.Timeout.Milliseconds())
	}

	obj := s.conn.Object(busName, godbus.ObjectPath(objectPath))
	call := obj.Call(notifyCall, 0,
		appName, replaces, msg.Icon, msg.Summary, msg.Body,
		[]string{}, hints, timeout)
	if call.Err != nil {
		return 0, fmt.Errorf("notify call failed: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}
	return id, nil
}
