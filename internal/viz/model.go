package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/battleputt/internal/metrics"
	"github.com/san-kum/battleputt/internal/scene"
	"github.com/san-kum/battleputt/internal/sim"
	"github.com/san-kum/battleputt/internal/tunables"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	panelWidth      = 48
	historyCapacity = 120
)

type TickMsg time.Time

type Options struct {
	Theme    string
	Interval time.Duration

	// GIFPath is where the recording is written when it stops.
	GIFPath string
}

// Model is the terminal front end: a braille view of the course beside the
// parameter panel.
type Model struct {
	loop     *sim.Loop
	scene    *scene.Scene
	sync     *tunables.Sync
	panel    *tunables.Panel
	renderer *CanvasRenderer
	speed    *metrics.History
	recorder *Recorder

	theme    Theme
	styles   styles
	interval time.Duration
	gifPath  string
	status   string
	showHelp bool
	err      error
}

// NewModel wires a loop, whose renderer must be r, to the terminal UI. Panel
// edits go through sync.
func NewModel(loop *sim.Loop, r *CanvasRenderer, sync *tunables.Sync, opts Options) *Model {
	if opts.Interval <= 0 {
		opts.Interval = sim.DefaultInterval
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "battleputt.gif"
	}
	theme := GetTheme(opts.Theme)

	m := &Model{
		loop:     loop,
		scene:    loop.Scene,
		sync:     sync,
		renderer: r,
		speed:    metrics.SpeedHistory(historyCapacity),
		theme:    theme,
		styles:   newStyles(theme),
		interval: opts.Interval,
		gifPath:  opts.GIFPath,
	}
	m.panel = tunables.NewPanel(loop.Scene.Params, m.onEdit)
	loop.AddObserver(m.speed)
	return m
}

func (m *Model) onEdit(c tunables.Change) {
	if err := m.sync.OnEdit(c); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("%s = %s", c.Name, c.Params.Format(c.Field))
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cols := max(20, msg.Width-panelWidth-4)
		rows := max(8, msg.Height-2)
		m.renderer.Resize(cols, rows)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if err := m.loop.Frame(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.recorder != nil {
			m.recorder.Capture(m.renderer.Canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopRecording()
		return m, tea.Quit
	case " ":
		m.loop.Post(m.scene.KeyDown)
	case "r", "enter":
		m.loop.Post(m.scene.KeyUp)
	case "tab":
		m.panel.Next()
	case "shift+tab":
		m.panel.Prev()
	case "up", "k":
		m.panel.Nudge(1)
	case "down", "j":
		m.panel.Nudge(-1)
	case "d":
		m.panel.Toggle(tunables.DebugRender)
	case "t":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "g":
		if m.recorder != nil {
			m.stopRecording()
		} else {
			m.recorder = NewRecorder()
			m.status = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) stopRecording() {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.status = "gif: " + err.Error()
	} else {
		m.status = "saved " + m.gifPath
	}
	m.recorder = nil
}

// Err returns the renderer error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) View() string {
	st := m.styles
	canvasView := st.canvas.Render(m.renderer.Canvas.Styled())

	var s strings.Builder
	s.WriteString(st.title.Render("BATTLEPUTT") + "\n")

	pos, vel := m.scene.BallPosition(), m.scene.BallVelocity()
	s.WriteString(st.label.Render("Ball") + st.value.Render(m.scene.State().String()) + "\n")
	s.WriteString(st.label.Render("Position") + st.value.Render(formatVec(pos.X, pos.Y)) + "\n")
	s.WriteString(st.label.Render("Speed") + st.value.Render(fmt.Sprintf("%.1f", vel.Length())) + "\n")
	s.WriteString(st.label.Render("Trail") + st.value.Render(fmt.Sprintf("%d", m.scene.Trail.Len())) + "\n")
	s.WriteString(st.label.Render("Frame") + st.value.Render(fmt.Sprintf("%d", m.loop.Frames())) + "\n")

	if values := m.speed.Values(); len(values) > 1 {
		chart := asciigraph.Plot(values, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(st.chart.Render(chart) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	params := m.scene.Params
	for _, f := range m.panel.Fields() {
		v, _ := params.Get(f)
		line := fmt.Sprintf("%-16s %s %s", f, ParamBar(f, v), params.Format(f))
		if f == m.panel.Selected() {
			s.WriteString(st.selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.label.UnsetWidth().Render(line) + "\n")
		}
	}

	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SP:Putt R:Reset Q:Quit ?:Help\nTab:Select ↑↓:Tune D:Debug T:Theme"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  Space      putt (held keys do not repeat)
  R, Enter   release: ball back to the launch point
  Tab        next parameter (Shift+Tab previous)
  Up/K       increase parameter
  Down/J     decrease parameter
  D          toggle debug outlines
  T          cycle themes
  G          start or stop GIF recording
  Q          quit
`

// Run starts the program. When logPath is set, log output goes there so it
// does not tear the terminal UI.
func Run(m *Model, logPath string) error {
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "battleputt")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}
