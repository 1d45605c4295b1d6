package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/content"
	"github.com/Zachkp/terminal-portfolio/internal/session"
	"github.com/Zachkp/terminal-portfolio/internal/terminal"
)

type terminalView struct {
	Open    bool
	Prompt  string
	History []terminal.Entry
	Welcome string
	Hint    string
}

func viewTerminal(t *terminal.Terminal) terminalView {
	if t == nil || !t.IsOpen() {
		return terminalView{}
	}
	return terminalView{
		Open:    true,
		Prompt:  t.Prompt(),
		History: t.History(),
		Welcome: terminal.WelcomeText,
		Hint:    terminal.HintText,
	}
}

// terminalOpen opens the widget, mounting it on first use. Content is read
// once per mount; if that fails the content commands answer "Loading...".
func (s *Server) terminalOpen(c *gin.Context) {
	sess := currentSession(c)

	var mounted bool
	sess.Do(func(st *session.State) { mounted = st.Terminal != nil })

	var doc *content.Content
	if !mounted {
		var err error
		if doc, err = s.content.Load(c.Request.Context()); err != nil {
			s.logger.Warn("terminal content unavailable", zap.Error(err))
		}
	}

	var view terminalView
	sess.Do(func(st *session.State) {
		if st.Terminal == nil {
			st.Terminal = terminal.New(doc)
		}
		st.Terminal.Open()
		view = viewTerminal(st.Terminal)
	})
	c.HTML(http.StatusOK, "terminal.html", view)
}

func (s *Server) terminalClose(c *gin.Context) {
	var view terminalView
	currentSession(c).Do(func(st *session.State) {
		if st.Terminal != nil {
			st.Terminal.Close()
		}
		view = viewTerminal(st.Terminal)
	})
	c.HTML(http.StatusOK, "terminal.html", view)
}

// terminalCommand runs one submitted line. Commands sent to a closed
// widget are dropped.
func (s *Server) terminalCommand(c *gin.Context) {
	line := c.PostForm("command")

	var view terminalView
	currentSession(c).Do(func(st *session.State) {
		if st.Terminal != nil && st.Terminal.IsOpen() {
			st.Terminal.Execute(line)
		}
		view = viewTerminal(st.Terminal)
	})
	c.HTML(http.StatusOK, "terminal.html", view)
}
