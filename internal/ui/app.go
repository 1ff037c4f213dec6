package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pullrefresh/internal/clock"
	"github.com/five82/pullrefresh/internal/config"
	"github.com/five82/pullrefresh/internal/feed"
	"github.com/five82/pullrefresh/internal/refresh"
)

// chromeRows is the status bar plus the help bar.
const chromeRows = 2

// farAway is past any content; ScrollTo clamps it to the resting limit.
const farAway = 1 << 30

// Options configures the UI.
type Options struct {
	Context context.Context
	Config  config.Config
	Source  feed.Source
	Dates   refresh.DateStore
	Clock   clock.Clock
	Logger  *slog.Logger
	// OnTheme is called with the new theme name when the user cycles it.
	OnTheme func(name string)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	s       *session
	keys    keyMap
	help    help.Model
	theme   Theme
	onTheme func(string)

	// UI state
	width    int
	height   int
	ready    bool
	showHelp bool

	// Mouse drag state
	mouseDown bool
	mouseX    int
	mouseY    int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.Config.Theme
	if themeName == "" {
		themeName = "Dracula"
	}
	return Model{
		s:       newSession(opts),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		theme:   GetTheme(themeName),
		onTheme: opts.OnTheme,
	}
}

// Attachment exposes the refresh components driving the pane.
func (m Model) Attachment() *refresh.Attachment { return m.s.attachment }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.s.spin.Tick, m.s.commands())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var quit bool
		m, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.s.pane.SetBounds(refresh.Size{
			Width:  float64(max(msg.Width, 0)),
			Height: float64(max(msg.Height-chromeRows, 0)),
		})
		m.ready = true

	case dueMsg:
		m.s.pane.RunDue()

	case pageMsg:
		m.s.applyPage(msg)

	case columnsMsg:
		m.s.applyColumns()

	case spinner.TickMsg:
		m.s.spin, cmd = m.s.spin.Update(msg)
	}

	return m, tea.Batch(cmd, m.s.commands())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. It reports whether to quit.
func (m Model) handleKey(msg tea.KeyMsg) (Model, bool) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, false
	}

	pane := m.s.pane
	a := m.s.attachment
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.onTheme != nil {
			m.onTheme(m.theme.Name)
		}

	case key.Matches(msg, m.keys.PullDown):
		pane.Drag(0, -1)
	case key.Matches(msg, m.keys.PushUp):
		pane.Drag(0, 1)
	case key.Matches(msg, m.keys.PullRight):
		pane.Drag(-1, 0)
	case key.Matches(msg, m.keys.PushLeft):
		pane.Drag(1, 0)
	case key.Matches(msg, m.keys.Release):
		pane.Release()
	case key.Matches(msg, m.keys.Top):
		pane.ScrollTo(refresh.Point{X: pane.ContentOffset().X, Y: -farAway})
	case key.Matches(msg, m.keys.Bottom):
		pane.ScrollTo(refresh.Point{X: pane.ContentOffset().X, Y: farAway})

	case key.Matches(msg, m.keys.Refresh):
		a.StartPullToRefresh()
	case key.Matches(msg, m.keys.RefreshRight):
		a.StartRightPullToRefresh()
	case key.Matches(msg, m.keys.NoMoreData):
		m.s.toggleNoMoreData()
	case key.Matches(msg, m.keys.HideFooter):
		if f := a.Footer(); f != nil {
			f.SetHidden(!f.Hidden())
		}
	}
	return m, false
}

// handleMouse turns a held left button into a drag and the wheel into
// plain scrolling.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	pane := m.s.pane
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			pane.Scroll(0, -1)
		case tea.MouseButtonWheelDown:
			pane.Scroll(0, 1)
		case tea.MouseButtonWheelLeft:
			pane.Scroll(-1, 0)
		case tea.MouseButtonWheelRight:
			pane.Scroll(1, 0)
		case tea.MouseButtonLeft:
			m.mouseDown = true
			m.mouseX, m.mouseY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if !m.mouseDown {
			return m
		}
		dx, dy := msg.X-m.mouseX, msg.Y-m.mouseY
		m.mouseX, m.mouseY = msg.X, msg.Y
		if dx != 0 || dy != 0 {
			// Content follows the pointer, so the offset moves the other way.
			pane.Drag(float64(-dx), float64(-dy))
		}
	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			pane.Release()
		}
	}
	return m
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(opts.Context),
	)
	_, err := p.Run()
	return err
}
