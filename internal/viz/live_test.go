package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbsim/internal/orb"
)

type memStore struct {
	saved orb.Vec2
	err   error
	calls int
}

func (s *memStore) Load() (orb.Vec2, bool) { return orb.Vec2{}, false }

func (s *memStore) Save(p orb.Vec2) error {
	s.calls++
	s.saved = p
	return s.err
}

type fakeClock struct{ now time.Duration }

func (c *fakeClock) Now() time.Duration { return c.now }

func newTestModel(t *testing.T, store *memStore) (Model, *Sink, *fakeClock) {
	t.Helper()
	sink := NewSink()
	ctrl, err := orb.New(orb.DefaultSettings(), sink,
		orb.WithLight(sink.Light()), orb.WithTheme(sink), orb.WithStore(store), orb.WithSeed(1))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	clk := &fakeClock{}
	m := NewModel(ctrl, sink, WithClock(clk.Now))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model), sink, clk
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelResize(t *testing.T) {
	m, _, _ := newTestModel(t, &memStore{})
	if m.canvas.Width != 120-panelWidth-canvasLeft*2-2 || m.canvas.Height != 30-canvasTop*2 {
		t.Errorf("unexpected canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}

	m = update(m, tea.WindowSizeMsg{Width: 10, Height: 3})
	if m.canvas.Width != minCols || m.canvas.Height != minRows {
		t.Errorf("expected minimum canvas, got %dx%d", m.canvas.Width, m.canvas.Height)
	}
}

func TestModelTickPublishesToSink(t *testing.T) {
	m, sink, clk := newTestModel(t, &memStore{})
	for i := 1; i <= 5; i++ {
		clk.now = time.Duration(i) * 16 * time.Millisecond
		m = update(m, TickMsg(time.Now()))
	}

	if sink.Scale.X <= 0 {
		t.Error("expected scale published")
	}
	if sink.Light().Position != sink.Position {
		t.Errorf("light %v does not track orb %v", sink.Light().Position, sink.Position)
	}
	if len(m.opacity) != 5 {
		t.Errorf("expected 5 opacity samples, got %d", len(m.opacity))
	}
	if !strings.Contains(m.View(), "ACTIVE") {
		t.Error("expected active status in view")
	}
}

func TestModelMouseDrivesController(t *testing.T) {
	m, _, clk := newTestModel(t, &memStore{})

	clk.now = 10 * time.Millisecond
	m = update(m, tea.MouseMsg{X: canvasLeft, Y: canvasTop, Action: tea.MouseActionMotion})
	s := m.settings
	if m.pointer.X > -s.WorldMaxX*0.9 || m.pointer.Y < s.WorldTopY*0.9 {
		t.Errorf("expected pointer near top left, got %v", m.pointer)
	}
	if m.ctrl.Trail().Len() != 1 {
		t.Errorf("expected one trail sample, got %d", m.ctrl.Trail().Len())
	}

	m = update(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.pressed {
		t.Error("right button must not press")
	}
	m = update(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.pressed {
		t.Error("expected pressed")
	}
	m = update(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease})
	if m.pressed {
		t.Error("expected released")
	}
}

func TestModelQuitPersists(t *testing.T) {
	store := &memStore{}
	m, _, _ := newTestModel(t, store)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if store.calls != 1 {
		t.Errorf("expected one save, got %d", store.calls)
	}
	if next.(Model).SaveErr() != nil {
		t.Errorf("unexpected save error: %v", next.(Model).SaveErr())
	}
}

func TestModelQuitSaveFailure(t *testing.T) {
	diskFull := errors.New("disk full")
	m, _, _ := newTestModel(t, &memStore{err: diskFull})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit despite save failure")
	}
	if !errors.Is(next.(Model).SaveErr(), diskFull) {
		t.Errorf("expected disk full, got %v", next.(Model).SaveErr())
	}
}

func TestThemeCycle(t *testing.T) {
	names := ThemeNames()
	m, _, _ := newTestModel(t, &memStore{})
	for i := 1; i <= len(names); i++ {
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
		if want := names[i%len(names)]; m.theme.Name != want {
			t.Fatalf("step %d: expected %s, got %s", i, want, m.theme.Name)
		}
	}

	if _, ok := GetTheme("nope"); ok {
		t.Error("expected unknown theme to report false")
	}
}

func TestOrbColorBlendsByOpacity(t *testing.T) {
	s := NewSink()
	s.SetColor(0, 1, 0.5)
	bg := lipgloss.Color("#000000")

	s.SetOpacity(0)
	if got := s.OrbColor(bg); got != bg {
		t.Errorf("transparent orb should match background, got %s", got)
	}
	s.SetOpacity(1)
	if got := s.OrbColor(bg); got != lipgloss.Color("#ff0000") {
		t.Errorf("expected pure red, got %s", got)
	}
}

func TestBorderColorFollowsHue(t *testing.T) {
	s := NewSink()
	s.SetHue(0)
	red := s.BorderColor()
	s.SetHue(120)
	if s.BorderColor() == red {
		t.Error("expected border to change with hue")
	}
}
