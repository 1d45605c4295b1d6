package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/effects"
)

// defaultGlitchFrequency is used when the stream is opened without one.
const defaultGlitchFrequency = 0.02

type sendFunc func(event string, data any)

// stream serves a server-sent event stream driven by run. The stream and
// whatever timer run starts end when the client goes away.
func (s *Server) stream(c *gin.Context, name string, run func(ctx context.Context, send sendFunc) error) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	send := func(event string, data any) {
		c.SSEvent(event, data)
		c.Writer.Flush()
	}
	if err := run(c.Request.Context(), send); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("event stream ended", zap.String("stream", name), zap.Error(err))
	}
}

func (s *Server) clockEvents(c *gin.Context) {
	s.stream(c, "clock", func(ctx context.Context, send sendFunc) error {
		return s.effects.Clock.Run(ctx, func(now string) { send("tick", now) })
	})
}

// typewriterEvents types the whoami line for the loaded hero name, then
// sends "done" and ends the stream.
func (s *Server) typewriterEvents(c *gin.Context) {
	doc, err := s.content.Load(c.Request.Context())
	if err != nil {
		s.logger.Warn("typewriter content unavailable", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}

	tw := effects.Typewriter{
		Text:  "> " + doc.Hero.Name + "@portfolio:~$ whoami",
		Speed: s.effects.TypewriterSpeed,
		Delay: s.effects.TypewriterDelay,
	}
	s.stream(c, "typewriter", func(ctx context.Context, send sendFunc) error {
		if err := tw.Run(ctx, func(frame string) { send("frame", frame) }); err != nil {
			return err
		}
		send("done", "")
		return nil
	})
}

// glitchEvents sends a "glitch" event each time a glitch fires. The
// probability per check comes from the frequency query parameter.
func (s *Server) glitchEvents(c *gin.Context) {
	freq := defaultGlitchFrequency
	if raw := c.Query("frequency"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || f > 1 {
			c.String(http.StatusBadRequest, "frequency must be between 0 and 1")
			return
		}
		freq = f
	}

	g := effects.NewGlitch(freq)
	g.Interval = s.effects.GlitchInterval
	s.stream(c, "glitch", func(ctx context.Context, send sendFunc) error {
		return g.Run(ctx, func() { send("glitch", "") })
	})
}
