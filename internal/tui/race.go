package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bcdxn/camelrace/internal/config"
	"github.com/bcdxn/camelrace/internal/draw"
	"github.com/bcdxn/camelrace/internal/draw/termcanvas"
	"github.com/bcdxn/camelrace/internal/race"
	"github.com/bcdxn/camelrace/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

var (
	s = styles.Default()

	ErrInit = errors.New("race engine failed to initialize")
)

// NewModel builds the race TUI: a terminal canvas registered under the configured surface id, a
// frame scheduler and the race engine drawing on them.
func NewModel(cfg config.Config, opts ...TUIOption) (Model, error) {
	m := Model{
		logger: slog.Default(),
		ctx:    context.Background(),
		random: race.DefaultSource(),
		keys:   defaultKeyMap(),
		help:   help.New(),
		status: "Press s to start the race",
	}
	// apply given options
	for _, opt := range opts {
		opt(&m)
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Racing
	m.spinner = sp

	m.canvas = termcanvas.New(cfg.SurfaceWidth, cfg.SurfaceHeight, termcanvas.WithCellSize(cfg.CellWidth, cfg.CellHeight))
	m.frames = NewFrameScheduler(cfg.FPS)
	m.engine = race.New(
		draw.Registry{cfg.SurfaceID: m.canvas},
		race.WithLogger(m.logger),
		race.WithScheduler(m.frames),
		race.WithRandomSource(m.random),
	)
	if !m.engine.Init(cfg.SurfaceID) {
		return m, fmt.Errorf("%w: surface %q", ErrInit, cfg.SurfaceID)
	}
	m.standings = newStandings(m.engine.Camels())
	return m, nil
}

// NewProgram returns the bubbletea program running the model on the alternate screen.
func NewProgram(m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithContext(m.ctx), tea.WithAltScreen())
}

type TUIOption = func(m *Model)

// WithLogger configures the logger to use within the TUI program and the race engine
func WithLogger(l *slog.Logger) TUIOption {
	return func(m *Model) { m.logger = l }
}

// WithContext configures the context to use within the TUI program
func WithContext(ctx context.Context) TUIOption {
	return func(m *Model) { m.ctx = ctx }
}

// WithRandomSource configures the source of speed variations of the race engine
func WithRandomSource(r race.RandomSource) TUIOption {
	return func(m *Model) { m.random = r }
}

/* Bubbletea Interface Implementation
------------------------------------------------------------------------------------------------- */

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) View() string {
	return s.Doc.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleView(m),
		m.canvas.View(),
		statusView(m),
		m.standings.View(),
		m.help.View(m.keys),
	))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)
	case FrameMsg:
		return handleFrameMsg(m, msg)
	case spinner.TickMsg:
		if !m.engine.Racing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

/* Tea Mesage handlers
------------------------------------------------------------------------------------------------- */

func handleKeyMsg(m Model, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logger.Debug("received quit tea message")
		m.engine.StopRace()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		if !m.engine.StartRace() {
			return m, nil
		}
		m.status = "And they're off!"
		return m, tea.Batch(m.frames.Next(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Stop):
		if m.engine.Racing() {
			m.engine.StopRace()
			m.status = s.Stopped.Render("Race stopped")
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func handleWindowSizeMsg(m Model, msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, _ := s.Doc.GetFrameSize()
	m.width = msg.Width - h
	m.help.Width = m.width
	return m, nil
}

func handleFrameMsg(m Model, msg FrameMsg) (tea.Model, tea.Cmd) {
	if !m.frames.Fire(msg) {
		return m, nil
	}
	if m.engine.State() == race.Stopped {
		m.status = s.Stopped.Render("Race stopped")
	} else if winner, ok := m.engine.Winner(); ok && !m.engine.Racing() {
		m.status = s.Winner.Render(fmt.Sprintf("🏆 %s wins! Jockey: %s", winner.Name, winner.Jockey))
		m.standings = newStandings(m.engine.Camels())
	}
	return m, m.frames.Next()
}

/* View Helper Functions
------------------------------------------------------------------------------------------------- */

func titleView(m Model) string {
	return s.TitleBar.Width(m.canvas.Cols()).Render("🐪 Camel Derby 🐪")
}

func statusView(m Model) string {
	status := m.status
	if m.engine.Racing() {
		status = fmt.Sprintf("%s %s (tick %d)", m.spinner.View(), status, m.engine.Tick())
	}
	return s.StatusBar.Render(status)
}

/* Type Definitions
------------------------------------------------------------------------------------------------- */

type Model struct {
	engine    *race.Engine
	canvas    *termcanvas.Canvas
	frames    *FrameScheduler
	random    race.RandomSource
	logger    *slog.Logger
	ctx       context.Context
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	standings table.Model
	status    string
	width     int
}

type keyMap struct {
	Start key.Binding
	Stop  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s/enter", "start race")),
		Stop:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop race")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Stop}, {k.Help, k.Quit}}
}
