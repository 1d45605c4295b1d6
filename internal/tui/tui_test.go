package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/terminal-portfolio/internal/content"
	"github.com/Zachkp/terminal-portfolio/internal/terminal"
)

func typeLine(t *testing.T, m tea.Model, line string) (tea.Model, tea.Cmd) {
	t.Helper()
	if line != "" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	}
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func testContent() *content.Content {
	return &content.Content{
		Hero:   content.Hero{Name: "Ada Lovelace"},
		About:  content.About{Content: "Notes on the engine."},
		Skills: []string{"Go", "Maths"},
	}
}

func TestModel_RunsCommands(t *testing.T) {
	var m tea.Model = New(terminal.New(testContent()))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m, cmd := typeLine(t, m, "help")
	assert.Nil(t, cmd)
	m, _ = typeLine(t, m, "skills")

	term := m.(Model).Terminal()
	assert.Equal(t, []string{"help", "skills"}, term.Commands())
	assert.Equal(t, []string{terminal.HelpText, "Go\nMaths"}, term.Outputs())
	assert.Contains(t, m.View(), "ada@portfolio:~$")
	assert.Contains(t, m.View(), "Maths")
}

func TestModel_BlankLineIgnored(t *testing.T) {
	var m tea.Model = New(terminal.New(testContent()))
	m, cmd := typeLine(t, m, "")
	assert.Nil(t, cmd)
	assert.Empty(t, m.(Model).Terminal().Commands())
}

func TestModel_ClearEmptiesHistory(t *testing.T) {
	var m tea.Model = New(terminal.New(testContent()))
	m, _ = typeLine(t, m, "about")
	m, _ = typeLine(t, m, "clear")

	assert.Empty(t, m.(Model).Terminal().History())
	assert.NotContains(t, m.View(), "Notes on the engine.")
}

func TestModel_ExitQuits(t *testing.T) {
	var m tea.Model = New(terminal.New(testContent()))
	m, cmd := typeLine(t, m, "exit")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	term := m.(Model).Terminal()
	assert.False(t, term.IsOpen())
	assert.Equal(t, []string{terminal.ClosedText}, term.Outputs())
	assert.Empty(t, m.View())
}

func TestModel_EscapeQuits(t *testing.T) {
	var m tea.Model = New(terminal.New(nil))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.(Model).Terminal().IsOpen())
}

func TestModel_WithoutContent(t *testing.T) {
	var m tea.Model = New(terminal.New(nil))
	m, _ = typeLine(t, m, "about")

	assert.Equal(t, []string{terminal.LoadingText}, m.(Model).Terminal().Outputs())
}
