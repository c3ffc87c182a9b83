// ABOUTME: Top-level Bubble Tea AppModel drawing one you-draw-it chart in the terminal.
// ABOUTME: Mouse drags and cursor keys feed the chart; resizes are debounced through sequence-numbered ticks.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/youdrawit/chart"
	"github.com/2389-research/youdrawit/scale"
	"github.com/2389-research/youdrawit/series"
)

// chromeRows are the rows used by title, status bar and help.
const chromeRows = 3

// animationInterval is the frame time of the reveal animation.
const animationInterval = 50 * time.Millisecond

// CellConfig adapts engine settings to a terminal of the given chart rows:
// one cell per pixel, narrow margins and no mobile switch.
func CellConfig(cfg chart.Config, rows int) chart.Config {
	cfg.Height = float64(rows)
	cfg.Margin = chart.Margin{Top: 2, Right: 6, Bottom: 2, Left: 6}
	cfg.MobileMargin = cfg.Margin
	cfg.MobileBreakpoint = 0
	cfg.PreviewLength = 4
	cfg.DotRadius = 0
	return cfg
}

// AppModel is the Bubble Tea model for one chart.
type AppModel struct {
	orch      *chart.Orchestrator
	base      chart.Config
	key       string
	title     string
	keys      KeyMap
	help      help.Model
	statusBar StatusBarModel

	width     int
	height    int
	resizeSeq int
	drawn     bool
	animating bool
	err       error

	cursorX float64
	cursorY float64
}

// NewAppModel creates an AppModel for the dataset key.
func NewAppModel(repo *series.Repository, cfg chart.Config, key string) (AppModel, error) {
	d, err := repo.Get(key)
	if err != nil {
		return AppModel{}, err
	}
	title := d.Title
	if title == "" {
		title = key
	}
	return AppModel{
		orch:      chart.NewOrchestrator(repo, cfg),
		base:      cfg,
		key:       key,
		title:     title,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		statusBar: NewStatusBarModel(title),
	}, nil
}

// Init implements tea.Model. The first draw waits for the window size.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Close stops the orchestrator's pending timers.
func (m AppModel) Close() {
	m.orch.Close()
}

// Chart returns the live chart, if one has been drawn.
func (m AppModel) Chart() (*chart.Chart, bool) {
	return m.orch.Chart(m.key)
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case ResizeMsg:
		if msg.Seq != m.resizeSeq {
			return m, nil
		}
		m.redraw()
		return m, nil

	case TickMsg:
		return m.handleTick()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// handleWindowSize draws immediately the first time and debounces later sizes.
func (m AppModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.statusBar.SetWidth(msg.Width)
	m.help.Width = msg.Width
	m.resizeSeq++

	if !m.drawn {
		m.redraw()
		return m, nil
	}
	return m, ResizeCmd(m.resizeSeq, m.base.ResizeDebounce)
}

// redraw rebuilds the chart for the current terminal size. The drawing is lost.
func (m *AppModel) redraw() {
	rows := m.height - chromeRows
	m.orch.Reconfigure(CellConfig(m.base, rows))
	report := m.orch.Draw(float64(m.width), []chart.Placeholder{{Key: m.key, Width: float64(m.width)}})
	m.drawn = true
	m.animating = false

	if err := report.Skipped[m.key]; err != nil {
		m.err = err
		return
	}
	m.err = nil

	c, _ := m.Chart()
	sc := c.Scales()
	v, _ := c.Dataset().ValueAt(c.MedianYear())
	m.cursorX = sc.X.Map(float64(c.MedianYear()))
	m.cursorY = sc.Y.Map(v)
	m.statusBar.SetProgress(chart.StateIdle, 0)
	m.statusBar.SetRevealed(false)
	m.statusBar.SetMessage("")
}

// toChart converts a terminal cell to chart pixel space.
func (m AppModel) toChart(c *chart.Chart, col, row int) (float64, float64) {
	sc := c.Scales()
	return float64(col) - sc.Margin.Left, float64(row-1) - sc.Margin.Top
}

func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	c, ok := m.Chart()
	if !ok {
		return m, nil
	}
	px, py := m.toChart(c, msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonLeft && (msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion):
		m.cursorX, m.cursorY = px, py
		return m.capture(c, px, py)
	case msg.Action == tea.MouseActionMotion:
		c.Move(py)
	}
	return m, nil
}

func (m AppModel) capture(c *chart.Chart, px, py float64) (tea.Model, tea.Cmd) {
	res := c.Capture(px, py)
	if !res.Applied {
		return m, nil
	}
	m.statusBar.SetProgress(res.State, res.Coverage)
	if res.Completed {
		m.statusBar.SetMessage("press enter to see the result")
	}
	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	c, ok := m.Chart()
	if !ok {
		return m, nil
	}
	sc := c.Scales()
	minYear := float64(c.Series().MinYear())
	yearStep := sc.X.Map(minYear+1) - sc.X.Map(minYear)

	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursorX = scale.Clamp(0, sc.ChartW, m.cursorX-yearStep)
	case key.Matches(msg, m.keys.Right):
		m.cursorX = scale.Clamp(0, sc.ChartW, m.cursorX+yearStep)
	case key.Matches(msg, m.keys.Up):
		m.cursorY = scale.Clamp(0, sc.ChartH, m.cursorY-1)
		c.Move(m.cursorY)
	case key.Matches(msg, m.keys.Down):
		m.cursorY = scale.Clamp(0, sc.ChartH, m.cursorY+1)
		c.Move(m.cursorY)
	case key.Matches(msg, m.keys.Draw):
		return m.capture(c, m.cursorX, m.cursorY)
	case key.Matches(msg, m.keys.Reveal):
		return m.reveal(c)
	}
	return m, nil
}

func (m AppModel) reveal(c *chart.Chart) (tea.Model, tea.Cmd) {
	fired, err := c.Reveal()
	if errors.Is(err, chart.ErrNotCompleted) {
		m.statusBar.SetMessage("draw every year first")
		return m, nil
	}
	if err != nil || !fired {
		return m, nil
	}
	m.animating = true
	m.statusBar.SetRevealed(true)
	m.statusBar.SetMessage("")
	return m, TickCmd(animationInterval)
}

// handleTick advances the reveal animation until the result is shown.
func (m AppModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.animating {
		return m, nil
	}
	c, ok := m.Chart()
	if !ok || c.Scene().Result.Shown {
		m.animating = false
		return m, nil
	}
	return m, TickCmd(animationInterval)
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Can not draw %s: %v", m.key, m.err)) + "\n" + m.help.View(m.keys)
	}
	c, ok := m.Chart()
	if !ok {
		return "Initializing..."
	}

	scene := c.Scene()
	cv := Rasterize(scene)
	cv.Set(int(m.cursorX+scene.Margin.Left+0.5), int(m.cursorY+scene.Margin.Top+0.5), '+', "cursor")

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(cv.Render())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
