package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbsim/internal/orb"
)

const (
	panelWidth      = 34
	historyCapacity = 120
	minCols         = 16
	minRows         = 6
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	labelStyle  = lipgloss.NewStyle().Width(10)
)

// canvas origin inside the view, in cells
const (
	canvasLeft = 2
	canvasTop  = 1
)

type TickMsg time.Time

// Model is the bubbletea front-end of one orb session. Update runs on the
// program's single goroutine, which is the only writer of the controller.
type Model struct {
	ctrl     *orb.Controller
	sink     *Sink
	settings orb.Settings
	canvas   *Canvas
	theme    Theme
	fps      int
	clock    func() time.Duration
	logger   *slog.Logger

	opacity  []float64
	pointer  orb.Vec2
	pressed  bool
	showHelp bool
	saveErr  error
}

type ModelOption func(*Model)

func WithTheme(t Theme) ModelOption {
	return func(m *Model) { m.theme = t }
}

func WithFPS(fps int) ModelOption {
	return func(m *Model) { m.fps = fps }
}

// WithClock replaces the wall clock used to stamp input events and ticks.
func WithClock(clock func() time.Duration) ModelOption {
	return func(m *Model) { m.clock = clock }
}

func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// NewModel wraps a controller whose appearance, light and theme are sink.
func NewModel(ctrl *orb.Controller, sink *Sink, opts ...ModelOption) Model {
	start := time.Now()
	m := Model{
		ctrl:     ctrl,
		sink:     sink,
		settings: ctrl.Settings(),
		canvas:   NewCanvas(60, 20),
		theme:    ThemeCyberpunk,
		fps:      60,
		clock:    func() time.Duration { return time.Since(start) },
		logger:   slog.New(slog.DiscardHandler),
		opacity:  make([]float64, 0, historyCapacity),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.fps <= 0 {
		m.fps = 60
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// SaveErr is the error from persisting the position on quit, if any.
func (m Model) SaveErr() error { return m.saveErr }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m.quit()
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		cols := msg.Width - panelWidth - canvasLeft*2 - 2
		rows := msg.Height - canvasTop*2
		m.canvas.Resize(max(cols, minCols), max(rows, minRows))
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		st := m.ctrl.Tick(m.clock())
		m.opacity = append(m.opacity, st.Opacity)
		if len(m.opacity) > historyCapacity {
			m.opacity = m.opacity[1:]
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	now := m.clock()
	px := float64(msg.X-canvasLeft) + 0.5
	py := float64(msg.Y-canvasTop) + 0.5
	p := orb.NormalizePointer(px, py, float64(m.canvas.Width), float64(m.canvas.Height), m.settings)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.pointer = p
		m.ctrl.PointerMove(now, p)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pointer = p
		m.pressed = true
		m.ctrl.PointerMove(now, p)
		m.ctrl.PointerDown(now)
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.ctrl.PointerUp(now)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Persist(); err != nil {
		m.saveErr = err
		m.logger.Warn("position not saved", "err", err)
	}
	return m, tea.Quit
}

// toDots maps world coordinates to canvas dots.
func (m Model) toDots(p orb.Vec2) (float64, float64) {
	x := (p.X/m.settings.WorldMaxX + 1) / 2 * float64(m.canvas.DotsX())
	y := (1 - p.Y/m.settings.WorldTopY) / 2 * float64(m.canvas.DotsY())
	return x, y
}

func (m Model) draw() {
	c := m.canvas
	c.Clear()
	cx, cy := m.toDots(m.sink.Position)
	rx := m.sink.Scale.X / (2 * m.settings.WorldMaxX) * float64(c.DotsX())
	ry := m.sink.Scale.Y / (2 * m.settings.WorldTopY) * float64(c.DotsY())
	c.FillEllipse(cx, cy, rx, ry)
	carveSeam(c, cx, cy, rx, ry, m.sink.Rotation)

	gx, gy := m.toDots(m.sink.Light().Position)
	c.Ring(gx, gy, rx*1.6, ry*1.6, 24)
}

func (m Model) View() string {
	m.draw()
	orbStyle := lipgloss.NewStyle().
		Foreground(m.sink.OrbColor(m.theme.Background)).
		Background(m.theme.Background)
	canvasView := canvasStyle.Render(orbStyle.Render(m.canvas.String()))

	text := lipgloss.NewStyle().Foreground(m.theme.Text)
	label := labelStyle.Foreground(m.theme.Muted)
	row := func(name, value string) string {
		return label.Render(name) + text.Render(value) + "\n"
	}

	st := m.ctrl.State()
	status := "ACTIVE"
	if st.Idle {
		status = "IDLE"
	}

	var s strings.Builder
	s.WriteString(GradientText("ORB", m.theme.Title, m.theme.Accent) + "  " + text.Render(status) + "\n\n")
	s.WriteString(row("time", fmt.Sprintf("%.1fs", st.Time.Seconds())))
	s.WriteString(row("position", fmt.Sprintf("%+.2f %+.2f", st.Position.X, st.Position.Y)))
	s.WriteString(row("pointer", fmt.Sprintf("%+.2f %+.2f", m.pointer.X, m.pointer.Y)))
	s.WriteString(row("scale", fmt.Sprintf("%.2f %.2f %.2f", st.Scale.X, st.Scale.Y, st.Scale.Z)))
	s.WriteString(row("hue", fmt.Sprintf("%3d°", st.ThemeHue)))
	s.WriteString(row("emissive", fmt.Sprintf("%.2f", st.EmissiveIntensity)))
	s.WriteString(row("opacity", fmt.Sprintf("%.2f", st.Opacity)))
	s.WriteString(text.Render(Sparkline(m.opacity, panelWidth-6)) + "\n")
	s.WriteString(row("theme", m.theme.Name))

	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Italic(true)
	if m.showHelp {
		s.WriteString(hint.Render("\nmove   follow pointer\nclick  stretch\nt      next theme\n?      hide help\nq      save and quit"))
	} else {
		s.WriteString(hint.Render("\nt:theme ?:help q:quit"))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.sink.BorderColor()).
		Padding(1, 2).
		Width(panelWidth).
		Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
}

// Run starts the program with mouse motion reporting and returns once the
// user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.SaveErr()
	}
	return nil
}
