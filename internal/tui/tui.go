// Package tui runs the portfolio terminal widget as a full-screen terminal
// program.
package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/terminal-portfolio/internal/terminal"
)

// chrome is the number of rows used by everything except the history.
const chrome = 4

// Model is the Bubbletea model wrapping one terminal widget.
type Model struct {
	term     *terminal.Terminal
	input    textinput.Model
	history  viewport.Model
	width    int
	height   int
	quitting bool
}

// New opens t and wraps it.
func New(t *terminal.Terminal) Model {
	t.Open()

	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(t.Prompt()) + " "
	ti.CharLimit = 200
	ti.Focus()

	m := Model{
		term:    t,
		input:   ti,
		history: viewport.New(80, 20),
	}
	m.refresh()
	return m
}

// Terminal returns the wrapped widget.
func (m Model) Terminal() *terminal.Terminal { return m.term }

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.Width = msg.Width
		m.history.Height = max(msg.Height-chrome, 1)
		m.input.Width = max(msg.Width-len(m.term.Prompt())-2, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.term.Close()
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.term.SetInput(m.input.Value())
	m.input.Reset()

	res, ok := m.term.Submit()
	if !ok {
		return m, nil
	}
	m.refresh()
	if res.Kind == terminal.KindExit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) refresh() {
	m.history.SetContent(m.render())
	m.history.GotoBottom()
}

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(DimmedStyle.Render(terminal.WelcomeText))
	b.WriteString("\n")
	b.WriteString(DimmedStyle.Render(terminal.HintText))
	b.WriteString("\n")
	for _, e := range m.term.History() {
		b.WriteString(PromptStyle.Render(m.term.Prompt()))
		b.WriteString(" ")
		b.WriteString(e.Command)
		b.WriteString("\n")
		b.WriteString(OutputStyle.Render(e.Output))
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("~/portfolio"))
	b.WriteString("\n")
	b.WriteString(m.history.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: run • pgup/pgdn: scroll • esc: quit"))
	return b.String()
}

// Run drives t until the user exits or ctx ends.
func Run(ctx context.Context, t *terminal.Terminal, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(t),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
