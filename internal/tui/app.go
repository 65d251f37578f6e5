// Package tui is a terminal demo of hold-to-seek: press and hold the mouse
// in the middle of the screen to seek, drag sideways to pick the speed.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/speed"
	"github.com/tessro/holdseek/internal/tui/components"
	"github.com/tessro/holdseek/internal/tui/styles"
)

// Options wires the UI to a player and its seek controller. Controller must
// publish to Stream, and Recognizer must feed Controller.
type Options struct {
	Player          core.Player
	Controller      *seek.Controller
	Recognizer      *gesture.Recognizer
	Stream          *feedback.Stream
	Curve           *speed.Curve
	Layout          gesture.Layout
	CellWidth       int
	RefreshInterval time.Duration
	Theme           string
	Logger          hclog.Logger
}

// App holds the TUI application state
type App struct {
	opts Options
}

// NewApp creates a new TUI application
func NewApp(opts Options) *App {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 100 * time.Millisecond
	}
	if opts.Curve == nil {
		opts.Curve = speed.Default()
	}
	if opts.Layout == (gesture.Layout{}) {
		opts.Layout = gesture.DefaultLayout
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &App{opts: opts}
}

// Model is the main TUI model
type Model struct {
	app    *App
	width  int
	height int
	keys   keyMap
	help   help.Model

	// State
	state  *core.PlaybackState
	status seek.Status

	// Components
	nowPlaying *components.NowPlaying
	overlay    *components.Overlay
	zones      *components.Zones
	events     *components.Events

	// Pointer
	pressing bool
	pressCol int

	// Error handling
	lastError   error
	errorExpiry time.Time // When to clear the error

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	return Model{
		app:        app,
		keys:       defaultKeyMap(),
		help:       help.New(),
		nowPlaying: components.NewNowPlaying(),
		overlay:    components.NewOverlay(app.opts.Curve),
		zones:      components.NewZones(app.opts.Layout),
		events:     components.NewEvents(50),
		pressCol:   -1,
	}
}

// Messages
type tickMsg time.Time
type stateMsg *core.PlaybackState
type feedbackMsg feedback.Event
type streamClosedMsg struct{}
type releasedMsg struct{ tapped bool }
type errMsg error

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchState() tea.Cmd {
	player := m.app.opts.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		state, err := core.Snapshot(ctx, player)
		if err != nil {
			return errMsg(err)
		}
		return stateMsg(state)
	}
}

func (m Model) waitForFeedback() tea.Cmd {
	events := m.app.opts.Stream.Events()
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return feedbackMsg(e)
	}
}

// release ends the press off the UI goroutine: ending a session restores
// playback, which is a player call.
func (m Model) release() tea.Cmd {
	rec := m.app.opts.Recognizer
	return func() tea.Msg {
		return releasedMsg{tapped: rec.Up()}
	}
}

func (m Model) cancelHold() tea.Cmd {
	rec := m.app.opts.Recognizer
	ctrl := m.app.opts.Controller
	return func() tea.Msg {
		rec.Cancel()
		ctrl.Interrupt()
		return releasedMsg{}
	}
}

func (m Model) togglePlayPause() tea.Cmd {
	player := m.app.opts.Player
	playing := m.state != nil && m.state.IsPlaying
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		var err error
		if playing {
			err = player.Pause(ctx)
		} else {
			err = player.Play(ctx)
		}
		if err != nil {
			return errMsg(err)
		}
		state, err := core.Snapshot(ctx, player)
		if err != nil {
			return errMsg(err)
		}
		return stateMsg(state)
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		m.fetchState(),
		m.waitForFeedback(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.BlurMsg:
		if m.pressing {
			m.pressing = false
			m.pressCol = -1
		}
		return m, m.cancelHold()

	case tickMsg:
		m.status = m.app.opts.Controller.Status()
		return m, tea.Batch(m.tick(), m.fetchState())

	case stateMsg:
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		m.state = msg
		return m, nil

	case feedbackMsg:
		e := feedback.Event(msg)
		m.events.Add(e)
		if e.Type == feedback.EventSeekFailed && e.Err != nil {
			m.setError(e.Err)
		}
		m.status = m.app.opts.Controller.Status()
		return m, m.waitForFeedback()

	case streamClosedMsg:
		return m, nil

	case releasedMsg:
		m.status = m.app.opts.Controller.Status()
		if msg.tapped {
			return m, m.togglePlayPause()
		}
		return m, m.fetchState()

	case errMsg:
		m.setError(msg)
		return m, nil
	}

	return m, nil
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(5 * time.Second) // Show error for 5 seconds
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.app.opts.Controller.Interrupt()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m, m.togglePlayPause()

	case key.Matches(msg, m.keys.Cancel):
		m.pressing = false
		m.pressCol = -1
		return m, m.cancelHold()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchState()
	}

	return m, nil
}

// pixels converts a terminal column to a pointer x at the cell's center.
func (m Model) pixels(col int) float64 {
	cw := float64(m.app.opts.CellWidth)
	return (float64(col) + 0.5) * cw
}

func (m Model) screenWidth() float64 {
	return float64(m.width * m.app.opts.CellWidth)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.width == 0 {
		return m, nil
	}
	rec := m.app.opts.Recognizer

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.pressing {
			return m, nil
		}
		playing := m.state != nil && m.state.IsPlaying
		if rec.Down(m.pixels(msg.X), m.screenWidth(), playing) {
			m.pressing = true
			m.pressCol = msg.X
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.pressing {
			rec.Move(m.pixels(msg.X))
		}
		return m, nil

	case tea.MouseActionRelease:
		if !m.pressing {
			return m, nil
		}
		m.pressing = false
		m.pressCol = -1
		return m, m.release()
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	accent := lipgloss.TerminalColor(styles.Primary)
	if m.status.State != seek.Idle {
		accent = styles.TierColor(m.status.Tier)
	}

	header := styles.Highlight.Render("holdseek") + styles.Subtitle.Render("  hold to seek")
	nowPlaying := m.nowPlaying.Render(m.state, m.width-2, accent)
	zones := m.zones.Render(m.width, m.pressCol)
	overlay := m.overlay.Render(m.status, m.width)

	used := lipgloss.Height(header) + lipgloss.Height(nowPlaying) + lipgloss.Height(zones) + lipgloss.Height(overlay) + 2
	eventsHeight := m.height - used - 1
	if eventsHeight < 5 {
		eventsHeight = 5
	}
	events := m.events.Render(m.width-2, eventsHeight, time.Now())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		nowPlaying,
		zones,
		overlay,
		events,
		m.renderStatusBar(),
	)
}

func (m Model) renderStatusBar() string {
	status := m.help.View(m.keys)

	if m.lastError != nil && time.Now().Before(m.errorExpiry) {
		status = styles.Failure.Render("Error: " + m.lastError.Error())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

// Run starts the TUI application
func Run(opts Options) error {
	styles.ApplyTheme(opts.Theme)
	app := NewApp(opts)

	app.opts.Logger.Debug("starting ui", "refresh", app.opts.RefreshInterval, "cell_width", app.opts.CellWidth)

	model := NewModel(app)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	app.opts.Controller.Interrupt()
	return err
}
