package main

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxTranscript bounds how many evaluated entries the REPL keeps on screen.
const maxTranscript = 50

type entry struct {
	input  string
	output string
	result string
	err    bool
}

type interactiveModel struct {
	session *session
	input   textinput.Model
	out     *bytes.Buffer
	entries []entry
	history []string
	histIdx int
	engine  string
	verbose bool
}

func newInteractiveModel(s *session, out *bytes.Buffer, verbose bool) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render("> ")
	ti.Placeholder = "1 + 2"
	ti.Width = 72
	ti.Focus()

	return &interactiveModel{
		session: s,
		input:   ti,
		out:     out,
		engine:  s.group.API().Name(),
		verbose: verbose,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit

		case "enter":
			src := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if src == "" {
				return m, nil
			}
			if src == ".exit" {
				return m, tea.Quit
			}
			if src == ".clear" {
				m.entries = nil
				return m, nil
			}
			m.evaluate(src)
			return m, nil

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.Reset()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate runs src on the model's goroutine. The context is not safe for
// concurrent use, so evaluation never happens inside a tea.Cmd.
func (m *interactiveModel) evaluate(src string) {
	m.history = append(m.history, src)
	m.histIdx = len(m.history)

	m.out.Reset()
	e := entry{input: src}
	v, err := m.session.eval("<repl>", src)
	if err != nil {
		e.result = describe(err, m.verbose)
		e.err = true
		m.session.log.Debug("repl evaluation failed", zap.Error(err))
	} else {
		e.result = v.String()
	}
	e.output = strings.TrimRight(m.out.String(), "\n")

	m.entries = append(m.entries, e)
	if len(m.entries) > maxTranscript {
		m.entries = m.entries[len(m.entries)-maxTranscript:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("JS Runner"))
	b.WriteString(" ")
	b.WriteString(m.engine)
	b.WriteString("\n\n")

	for _, e := range m.entries {
		b.WriteString(promptStyle.Render("> "))
		b.WriteString(e.input)
		b.WriteString("\n")
		if e.output != "" {
			b.WriteString(outputStyle.Render(e.output))
			b.WriteString("\n")
		}
		if e.err {
			b.WriteString(errorStyle.Render(e.result))
		} else {
			b.WriteString(resultStyle.Render(e.result))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter evaluate • ↑/↓ history • .clear • .exit • ctrl+c quit"))
	return b.String()
}

func runInteractive(cfg runtime.Config, preload []string, verbose bool) error {
	var out bytes.Buffer
	s, err := newSession(cfg, &out, &out)
	if err != nil {
		return err
	}
	defer s.close()
	if err := s.preload(preload); err != nil {
		return err
	}

	p := tea.NewProgram(newInteractiveModel(s, &out, verbose), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
