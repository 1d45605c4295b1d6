package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/content"
	"github.com/Zachkp/terminal-portfolio/internal/feed"
	"github.com/Zachkp/terminal-portfolio/internal/gallery"
	"github.com/Zachkp/terminal-portfolio/internal/session"
)

// Messages rendered when a section's document can't be read.
const (
	MessageContentFailed  = "Failed to load content."
	MessageDiagramsFailed = "Failed to load diagrams."
)

var pageTitles = map[string]string{
	"home":          "Portfolio",
	"architectures": "Architecture Diagrams",
	"medium":        "Medium Articles",
	"resume":        "Resume",
}

// page renders a page shell whose section loads through its own fragment
// request. Rendering a page remounts the terminal, closed and empty.
func (s *Server) page(tmpl, active string) gin.HandlerFunc {
	return func(c *gin.Context) {
		remountTerminal(currentSession(c))
		c.HTML(http.StatusOK, tmpl, gin.H{
			"Title":  pageTitles[active],
			"Active": active,
		})
	}
}

func remountTerminal(sess *session.Session) {
	sess.Do(func(st *session.State) { st.Terminal = nil })
}

func (s *Server) resumePage(c *gin.Context) {
	remountTerminal(currentSession(c))

	doc, err := s.content.Load(c.Request.Context())
	if err != nil {
		s.logger.Warn("resume content unavailable, using fallback", zap.Error(err))
	}
	c.HTML(http.StatusOK, "resume.html", gin.H{
		"Title":  pageTitles["resume"],
		"Active": "resume",
		"Resume": content.ResumeFrom(doc),
	})
}

func (s *Server) homeSection(c *gin.Context) {
	doc, err := s.content.Load(c.Request.Context())
	if err != nil {
		s.logger.Warn("content load failed", zap.Error(err))
		c.HTML(http.StatusOK, "section-home.html", gin.H{"Error": MessageContentFailed})
		return
	}
	c.HTML(http.StatusOK, "section-home.html", gin.H{"Content": doc})
}

// gallerySection loads the manifest and mounts a fresh, closed gallery for
// the visitor.
func (s *Server) gallerySection(c *gin.Context) {
	manifest, err := s.content.LoadManifest(c.Request.Context())
	if err != nil {
		s.logger.Warn("diagram manifest load failed", zap.Error(err))
		c.HTML(http.StatusOK, "section-gallery.html", gin.H{"Error": MessageDiagramsFailed})
		return
	}
	images := manifest.Paths()
	currentSession(c).Do(func(st *session.State) {
		st.Gallery = gallery.New(images)
	})
	c.HTML(http.StatusOK, "section-gallery.html", gin.H{"Images": images})
}

func (s *Server) feedSection(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Feed.Timeout)
	defer cancel()

	res := feed.Load(ctx, s.feed)
	if res.Err != nil {
		s.logger.Warn("feed load failed", zap.Error(res.Err), zap.String("state", res.State.String()))
	}
	c.HTML(http.StatusOK, "section-feed.html", gin.H{
		"Result": res,
		"Cards":  feed.Cards(res.Posts),
	})
}
