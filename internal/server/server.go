// Package server is the portfolio web server: page and fragment routes,
// per-visitor gallery and terminal actions, and the effect event streams.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/config"
	"github.com/Zachkp/terminal-portfolio/internal/content"
	"github.com/Zachkp/terminal-portfolio/internal/effects"
	"github.com/Zachkp/terminal-portfolio/internal/feed"
	"github.com/Zachkp/terminal-portfolio/internal/gallery"
	"github.com/Zachkp/terminal-portfolio/internal/session"
	"github.com/Zachkp/terminal-portfolio/internal/visitors"
)

const shutdownTimeout = 10 * time.Second

// Effects are the schedules behind the event streams.
type Effects struct {
	Clock           effects.Clock
	TypewriterSpeed time.Duration
	TypewriterDelay time.Duration
	GlitchInterval  time.Duration
}

// DefaultEffects matches the timings of the hero animations.
func DefaultEffects() Effects {
	return Effects{
		Clock:           effects.NewClock(),
		TypewriterSpeed: 100 * time.Millisecond,
		TypewriterDelay: 500 * time.Millisecond,
		GlitchInterval:  100 * time.Millisecond,
	}
}

// Deps are the collaborators the server is built from. Tracker may be nil
// when stats are disabled.
type Deps struct {
	Content  *content.Store
	Feed     feed.Source
	Sessions *session.Store
	Tracker  *visitors.Tracker
	Logger   *zap.Logger
	Effects  Effects
}

// Server serves the portfolio.
type Server struct {
	cfg       *config.Config
	content   *content.Store
	feed      feed.Source
	sessions  *session.Store
	tracker   *visitors.Tracker
	logger    *zap.Logger
	effects   Effects
	templates *templateRenderer
	engine    *gin.Engine
}

// New builds the server and its routes. Templates are parsed here, so a
// broken template fails startup.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Effects.Clock.Interval == 0 {
		deps.Effects = DefaultEffects()
	}

	templates, err := newTemplateRenderer(filepath.Join(cfg.Server.Templates, "*.html"), logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		content:   deps.Content,
		feed:      deps.Feed,
		sessions:  deps.Sessions,
		tracker:   deps.Tracker,
		logger:    logger,
		effects:   deps.Effects,
		templates: templates,
	}
	s.engine = s.routes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.HTMLRender = s.templates
	r.Use(gin.Recovery(), requestLogger(s.logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/events/"})))
	if s.tracker != nil {
		r.Use(s.tracker.Middleware())
	}

	r.Static("/static", s.cfg.Server.Static)
	r.Static("/diagrams", s.cfg.Content.DiagramsDir)
	if content.IsURL(s.cfg.Content.Source) {
		r.GET("/content.json", func(c *gin.Context) {
			c.Redirect(http.StatusFound, s.cfg.Content.Source)
		})
	} else {
		r.StaticFile("/content.json", s.cfg.Content.Source)
	}
	r.StaticFile("/resume/resume.pdf", s.cfg.Content.Resume)

	site := r.Group("/", s.sessionMiddleware())
	site.GET("/", s.page("index.html", "home"))
	site.GET("/architectures", s.page("architectures.html", "architectures"))
	site.GET("/medium", s.page("medium.html", "medium"))
	site.GET("/resume", s.resumePage)

	sections := site.Group("/sections")
	sections.GET("/home", s.homeSection)
	sections.GET("/gallery", s.gallerySection)
	sections.GET("/feed", s.feedSection)

	// Ending actions skip the limiter so a gesture or widget always closes.
	ends := site.Group("/")
	ends.POST("/gallery/close", s.galleryAction(simple((*gallery.Controller).Close)))
	ends.POST("/gallery/drag-end", s.galleryAction(simple((*gallery.Controller).DragEnd)))
	ends.POST("/gallery/touch-end", s.galleryAction(atPoint((*gallery.Controller).TouchEnd)))
	ends.POST("/terminal/close", s.terminalClose)

	actions := site.Group("/", s.rateLimit())
	g := actions.Group("/gallery")
	g.POST("/open", s.galleryAction(openAt))
	g.POST("/next", s.galleryAction(simple(func(ctrl *gallery.Controller) { ctrl.Next() })))
	g.POST("/prev", s.galleryAction(simple(func(ctrl *gallery.Controller) { ctrl.Prev() })))
	g.POST("/zoom-in", s.galleryAction(simple((*gallery.Controller).ZoomIn)))
	g.POST("/zoom-out", s.galleryAction(simple((*gallery.Controller).ZoomOut)))
	g.POST("/reset", s.galleryAction(simple((*gallery.Controller).ResetView)))
	g.POST("/wheel", s.galleryAction(wheel))
	g.POST("/drag-start", s.galleryAction(atPoint((*gallery.Controller).DragStart)))
	g.POST("/drag-move", s.galleryAction(atPoint((*gallery.Controller).DragMove)))
	g.POST("/touch-start", s.galleryAction(atPoint((*gallery.Controller).TouchStart)))
	g.POST("/touch-move", s.galleryAction(atPoint((*gallery.Controller).TouchMove)))
	g.POST("/key", s.galleryAction(key))

	t := actions.Group("/terminal")
	t.POST("/open", s.terminalOpen)
	t.POST("/command", s.terminalCommand)

	events := r.Group("/events")
	events.GET("/clock", s.clockEvents)
	events.GET("/typewriter", s.typewriterEvents)
	events.GET("/glitch", s.glitchEvents)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"Title": "Not found", "Path": c.Request.URL.Path})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. Template
// watching and the stats retention sweep share the same lifetime.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.cfg.Server.Watch {
		stop, err := s.templates.Watch(s.cfg.Server.Templates)
		if err != nil {
			return err
		}
		defer stop()
	}

	if s.tracker != nil {
		retention := make(chan struct{})
		go func() {
			defer close(retention)
			s.tracker.RunRetention(ctx, visitors.RetentionInterval)
		}()
		defer func() {
			cancel()
			<-retention
		}()
	}

	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
