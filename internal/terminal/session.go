package terminal

import (
	"strings"

	"github.com/Zachkp/terminal-portfolio/internal/content"
)

// Entry is one executed command and what it printed.
type Entry struct {
	Command string
	Output  string
}

// Terminal is the state of one open widget: visibility, the paired
// command and output histories, and the line being typed.
type Terminal struct {
	content *content.Content

	open     bool
	commands []string
	outputs  []string
	input    string
}

// New creates a closed terminal answering from c. c may be nil.
func New(c *content.Content) *Terminal {
	return &Terminal{content: c}
}

func (t *Terminal) IsOpen() bool  { return t.open }
func (t *Terminal) Open()         { t.open = true }
func (t *Terminal) Close()        { t.open = false }
func (t *Terminal) Input() string { return t.input }

// SetContent swaps the document commands answer from.
func (t *Terminal) SetContent(c *content.Content) { t.content = c }

// Prompt returns the prompt for the current content.
func (t *Terminal) Prompt() string { return Prompt(t.content) }

// SetInput replaces the line being typed.
func (t *Terminal) SetInput(s string) { t.input = s }

// Submit runs the line being typed and clears it.
func (t *Terminal) Submit() (Result, bool) {
	line := t.input
	t.input = ""
	return t.Execute(line)
}

// Execute runs one line. Blank lines are ignored and report false.
// "clear" empties both histories and records nothing; "exit" closes the
// widget and records its farewell. Everything else is appended to the
// history as typed, paired with its output.
func (t *Terminal) Execute(line string) (Result, bool) {
	if strings.TrimSpace(line) == "" {
		return Result{}, false
	}

	res := Resolve(line, t.content)
	switch res.Kind {
	case KindClear:
		t.commands = nil
		t.outputs = nil
		return res, true
	case KindExit:
		t.open = false
	}
	t.commands = append(t.commands, line)
	t.outputs = append(t.outputs, res.Output)
	return res, true
}

// Commands returns the command history.
func (t *Terminal) Commands() []string { return append([]string(nil), t.commands...) }

// Outputs returns the output history.
func (t *Terminal) Outputs() []string { return append([]string(nil), t.outputs...) }

// History pairs commands with their outputs in order.
func (t *Terminal) History() []Entry {
	entries := make([]Entry, len(t.commands))
	for i := range t.commands {
		entries[i] = Entry{Command: t.commands[i], Output: t.outputs[i]}
	}
	return entries
}
