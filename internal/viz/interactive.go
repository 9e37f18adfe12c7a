package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	pickSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pickCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	pickActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	pickKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	pickErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// StartFunc builds a live session for the named preset.
type StartFunc func(preset string) (Model, error)

// Picker is a preset menu that hands over to a live Model once one is
// chosen.
type Picker struct {
	presets []string
	cursor  int
	start   StartFunc
	live    *Model
	size    *tea.WindowSizeMsg
	err     error
}

func NewPicker(presets []string, start StartFunc) Picker {
	return Picker{presets: presets, start: start}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		m := next.(Model)
		p.live = &m
		return p, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.size = &msg
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.presets)-1 {
				p.cursor++
			}
		case "enter", " ":
			return p.launch()
		}
	}
	return p, nil
}

func (p Picker) launch() (tea.Model, tea.Cmd) {
	if len(p.presets) == 0 {
		return p, nil
	}
	m, err := p.start(p.presets[p.cursor])
	if err != nil {
		p.err = err
		return p, nil
	}
	if p.size != nil {
		next, _ := m.Update(*p.size)
		m = next.(Model)
	}
	p.live = &m
	return p, m.Init()
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + pickTitle.Render("ORBSIM") + "\n    " + pickSub.Render("choose a preset") + "\n    " + pickSub.Render("───────────────") + "\n\n")
	for i, name := range p.presets {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", pickCursor.Render("▸"), pickActive.Render(name)))
		} else {
			b.WriteString(fmt.Sprintf("      %s\n", pickIdle.Render(name)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + pickErr.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + pickKey.Render("j/k") + pickIdle.Render(" navigate  ") + pickKey.Render("enter") + pickIdle.Render(" start  ") + pickKey.Render("q") + pickIdle.Render(" quit") + "\n")
	return b.String()
}

// RunPicker runs the preset menu and the chosen session in one program.
func RunPicker(p Picker) error {
	final, err := tea.NewProgram(p, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return err
	}
	if fp, ok := final.(Picker); ok && fp.live != nil {
		return fp.live.SaveErr()
	}
	return nil
}
