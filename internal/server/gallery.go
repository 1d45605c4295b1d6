package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/terminal-portfolio/internal/gallery"
	"github.com/Zachkp/terminal-portfolio/internal/session"
)

// galleryOp applies one visitor action to their gallery. Input is
// validated before the controller is touched.
type galleryOp func(c *gin.Context, ctrl *gallery.Controller) error

func simple(fn func(*gallery.Controller)) galleryOp {
	return func(_ *gin.Context, ctrl *gallery.Controller) error {
		fn(ctrl)
		return nil
	}
}

func atPoint(fn func(*gallery.Controller, gallery.Point)) galleryOp {
	return func(c *gin.Context, ctrl *gallery.Controller) error {
		x, err := formFloat(c, "x")
		if err != nil {
			return err
		}
		y, err := formFloat(c, "y")
		if err != nil {
			return err
		}
		fn(ctrl, gallery.Point{X: x, Y: y})
		return nil
	}
}

func openAt(c *gin.Context, ctrl *gallery.Controller) error {
	i, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	ctrl.Open(i)
	return nil
}

func wheel(c *gin.Context, ctrl *gallery.Controller) error {
	dy, err := formFloat(c, "deltaY")
	if err != nil {
		return err
	}
	ctrl.Wheel(dy)
	return nil
}

func key(c *gin.Context, ctrl *gallery.Controller) error {
	ctrl.Key(c.PostForm("key"))
	return nil
}

func formFloat(c *gin.Context, name string) (float64, error) {
	v, err := strconv.ParseFloat(c.PostForm(name), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: not a finite number", name)
	}
	return v, nil
}

// galleryAction runs op against the visitor's gallery and renders the
// modal. A visitor whose gallery section never loaded gets the empty
// modal.
func (s *Server) galleryAction(op galleryOp) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			view gallery.View
			err  error
		)
		currentSession(c).Do(func(st *session.State) {
			if st.Gallery == nil {
				return
			}
			if err = op(c, st.Gallery); err != nil {
				return
			}
			view = st.Gallery.View()
		})
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.HTML(http.StatusOK, "gallery-modal.html", view)
	}
}
