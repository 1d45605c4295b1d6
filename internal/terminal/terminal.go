// Package terminal implements the toy command-line widget: a fixed table
// from a command word to either a text answer built from the portfolio
// content or an effect on the widget itself.
//
// It is a lookup, not a parser: no arguments, no pipes, no scripting.
package terminal

import (
	"fmt"
	"strings"

	"github.com/Zachkp/terminal-portfolio/internal/content"
)

// Kind tags what a command does.
type Kind int

const (
	KindText Kind = iota
	KindClear
	KindExit
	KindUnknown
)

// Result is the outcome of resolving one command.
type Result struct {
	Kind   Kind
	Output string
}

const (
	HelpText       = "Available commands: help, about, skills, projects, contact, clear, exit"
	LoadingText    = "Loading..."
	ClosedText     = "Terminal closed"
	WelcomeText    = "Welcome to the interactive terminal!"
	HintText       = "Type 'help' to see available commands."
	notFoundFormat = "Command not found: %s. Type 'help' for available commands."
)

type command struct {
	kind Kind
	text func(c *content.Content) string
}

var commands = map[string]command{
	"help":     {kind: KindText, text: func(*content.Content) string { return HelpText }},
	"about":    {kind: KindText, text: about},
	"skills":   {kind: KindText, text: skills},
	"projects": {kind: KindText, text: projects},
	"contact":  {kind: KindText, text: contact},
	"clear":    {kind: KindClear},
	"exit":     {kind: KindExit, text: func(*content.Content) string { return ClosedText }},
}

// Normalize lower-cases and trims a raw input line.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}

// Resolve looks a command up. c may be nil while content is still
// loading, in which case content-backed commands answer LoadingText.
func Resolve(line string, c *content.Content) Result {
	name := Normalize(line)
	cmd, ok := commands[name]
	if !ok {
		return Result{Kind: KindUnknown, Output: fmt.Sprintf(notFoundFormat, name)}
	}
	if cmd.text == nil {
		return Result{Kind: cmd.kind}
	}
	return Result{Kind: cmd.kind, Output: cmd.text(c)}
}

func about(c *content.Content) string {
	if c == nil || c.About.Content == "" {
		return LoadingText
	}
	return c.About.Content
}

func skills(c *content.Content) string {
	if c == nil || len(c.Skills) == 0 {
		return LoadingText
	}
	return strings.Join(c.Skills, "\n")
}

func projects(c *content.Content) string {
	if c == nil || len(c.Projects) == 0 {
		return LoadingText
	}
	lines := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		lines = append(lines, p.Name+": "+p.Description)
	}
	return strings.Join(lines, "\n\n")
}

func contact(c *content.Content) string {
	if c == nil {
		return LoadingText
	}
	ct := c.Contact
	return fmt.Sprintf("Email: %s\nGitHub: %s\nLinkedIn: %s\nPhone: %s\nMedium: %s\nLocation: %s",
		ct.Email, ct.GitHub, ct.LinkedIn, ct.Phone, ct.Medium, ct.Location)
}

// Prompt is the shell prompt shown before every command, built from the
// first word of the hero name.
func Prompt(c *content.Content) string {
	user := "guest"
	if c != nil {
		if fields := strings.Fields(c.Hero.Name); len(fields) > 0 {
			user = strings.ToLower(fields[0])
		}
	}
	return user + "@portfolio:~$"
}
