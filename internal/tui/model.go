// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/dpswitch/internal/layouts"
	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/status"
	"github.com/jmylchreest/dpswitch/internal/switcher"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeHelp
)

// refreshInterval controls how often the "last switch" age is redrawn.
const refreshInterval = 30 * time.Second

// Reload is a layout file reload result delivered from a watcher.
type Reload struct {
	Config *model.Config
	Err    error
}

// Options configures the TUI model.
type Options struct {
	Title    string
	Path     string
	Config   *model.Config
	LoadErr  error
	Switcher *switcher.Switcher

	// Command is the xrandr executable shown in copied scripts.
	Command string

	// Updates delivers watcher reloads, if any.
	Updates <-chan Reload

	Now func() time.Time
}

// Model is the main TUI model.
type Model struct {
	title   string
	path    string
	command string
	sw      *switcher.Switcher
	cfg     *model.Config
	updates <-chan Reload
	now     func() time.Time

	mode Mode

	// Components
	list     list.Model
	viewport viewport.Model
	help     help.Model

	// Switch state
	log        status.Log
	switching  string
	lastLayout string
	lastSwitch time.Time

	width  int
	height int
	ready  bool

	keys KeyMap

	// Transient status message; statusSeq ties each clear timer to its message.
	statusMsg string
	statusErr bool
	statusSeq int
}

// layoutItem wraps a layout for the list component.
type layoutItem struct {
	layout model.Layout
}

func (i layoutItem) Title() string {
	return i.layout.Name
}

func (i layoutItem) Description() string {
	parts := make([]string, 0, len(i.layout.Settings))
	for _, s := range i.layout.Settings {
		p := s.Display.Name + " " + s.Resolution + "@" + s.Rate
		if s.Primary {
			p += "*"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

func (i layoutItem) FilterValue() string {
	return i.layout.Name
}

// New creates a new TUI model.
func New(opts Options) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = opts.Title
	if l.Title == "" {
		l.Title = "dpswitch"
	}
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		title:   l.Title,
		path:    opts.Path,
		command: opts.Command,
		sw:      opts.Switcher,
		updates: opts.Updates,
		now:     now,
		mode:    ModeList,
		list:    l,
		help:    help.New(),
		keys:    DefaultKeyMap(),
	}

	if opts.LoadErr != nil {
		m.log = status.ErrorLog(layouts.Describe(opts.LoadErr))
	}
	m.setConfig(opts.Config)
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForReload, tick())
}

// waitForReload blocks until the watcher delivers a result.
func (m Model) waitForReload() tea.Msg {
	if m.updates == nil {
		return nil
	}
	r, ok := <-m.updates
	if !ok {
		return nil
	}
	return reloadMsg{cfg: r.Config, err: r.Err, watched: true}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type tickMsg time.Time

type switchDoneMsg struct {
	res switcher.Result
}

type reloadMsg struct {
	cfg     *model.Config
	err     error
	watched bool
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct {
	seq int
}

type copyResultMsg struct {
	err error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport = viewport.New(msg.Width, max(msg.Height-3, 1))
		m.resize()
		return m, nil

	case tickMsg:
		return m, tick()

	case switchDoneMsg:
		m.switching = ""
		m.log = msg.res.Log
		m.lastLayout = msg.res.Layout
		m.lastSwitch = msg.res.Started
		m.resize()
		return m, nil

	case reloadMsg:
		var cmds []tea.Cmd
		if msg.watched {
			cmds = append(cmds, m.waitForReload)
		}
		if msg.err != nil {
			// Keep the layouts we have.
			m.log = status.ErrorLog(layouts.Describe(msg.err))
			m.resize()
			cmds = append(cmds, setStatus("Reload failed", true))
			return m, tea.Batch(cmds...)
		}
		m.log.Reset()
		m.setConfig(msg.cfg)
		cmds = append(cmds, setStatus(fmt.Sprintf("Loaded %d layouts", len(msg.cfg.Layouts)), false))
		return m, tea.Batch(cmds...)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		m.statusSeq++
		seq := m.statusSeq
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})

	case clearStatusMsg:
		if msg.seq != m.statusSeq {
			return m, nil
		}
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Copied commands to clipboard", false)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeList:
		m.list, cmd = m.list.Update(msg)
	case ModeDetail:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Apply):
		return m.apply()

	case key.Matches(msg, m.keys.Details):
		if item, ok := m.list.SelectedItem().(layoutItem); ok {
			m.mode = ModeDetail
			m.viewport.SetContent(m.renderDetail(item.layout))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.list.SelectedItem().(layoutItem); ok {
			script := layoutScript(m.command, item.layout)
			return m, func() tea.Msg {
				return copyResultMsg{err: copyText(script)}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		m.mode = ModeList
		return m.apply()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// apply starts a switch to the selected layout in the background.
func (m Model) apply() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(layoutItem)
	if !ok || m.sw == nil {
		return m, nil
	}
	if m.switching != "" {
		return m, setStatus("Switch to "+m.switching+" still running", true)
	}

	m.switching = item.layout.Name
	sw := m.sw
	layout := item.layout
	return m, func() tea.Msg {
		return switchDoneMsg{res: sw.Switch(context.Background(), layout)}
	}
}

func (m Model) reload() tea.Msg {
	cfg, err := layouts.Load(m.path)
	return reloadMsg{cfg: cfg, err: err}
}

func (m *Model) setConfig(cfg *model.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	items := make([]list.Item, 0, len(cfg.Layouts))
	for _, l := range cfg.Layouts {
		items = append(items, layoutItem{layout: l})
	}
	m.list.SetItems(items)
	m.resize()
}

// resize gives the list whatever the status block and key bar leave over.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	used := lipgloss.Height(m.statusBlock()) + 1
	m.list.SetSize(m.width, max(m.height-used-1, 3))
}

func (m Model) renderDetail(l model.Layout) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(l.Name) + "\n\n")
	for _, s := range l.Settings {
		sb.WriteString(labelStyle.Render("Display: ") + s.Display.Name + " (" + s.Port() + ")\n")
		sb.WriteString(labelStyle.Render("Mode:    ") + s.Resolution + " @ " + s.Rate + " Hz\n")
		if s.Position != nil {
			sb.WriteString(labelStyle.Render("Place:   ") + string(s.Position.Direction) + " of " + s.Position.Reference.Name + "\n")
		}
		if s.Primary {
			sb.WriteString(labelStyle.Render("Primary: ") + "yes\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(labelStyle.Render("Commands:") + "\n")
	sb.WriteString(layoutScript(m.command, l))
	return sb.String()
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeDetail:
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).Render("Layout Detail") + "\n" +
			m.viewport.View() + "\n" + m.footer()
	case ModeHelp:
		return m.viewHelp()
	default:
		return m.list.View() + "\n" + m.statusBlock() + "\n" + m.footer()
	}
}

// statusBlock renders the switch log, or progress while a switch runs.
func (m Model) statusBlock() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	if m.switching != "" {
		return dim.Render("Switching to " + m.switching + "...")
	}

	block := status.RenderANSI(m.log)
	if !m.lastSwitch.IsZero() {
		age := dim.Render(fmt.Sprintf("last switch: %s, %s", m.lastLayout, humanize.RelTime(m.lastSwitch, m.now(), "ago", "from now")))
		if block == "" {
			return age
		}
		return block + "\n" + age
	}
	return block
}

func (m Model) footer() string {
	if m.statusMsg != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			style = style.Foreground(lipgloss.Color("9"))
		}
		return style.Render(m.statusMsg)
	}
	m.help.Width = m.width
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	m.help.Width = m.width
	return titleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Press ? or esc to return")
}
