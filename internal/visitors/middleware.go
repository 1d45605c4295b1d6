package visitors

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/effects"
)

// RetentionInterval is how often old views are swept.
const RetentionInterval = 24 * time.Hour

var skippedPrefixes = []string{
	"/static/",
	"/diagrams/",
	"/events/",
	"/resume/",
	"/favicon",
}

// Trackable reports whether a request counts as a page view. Asset,
// event stream and fragment requests do not, and neither does anyone
// sending DNT: 1.
func Trackable(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.Header.Get("DNT") == "1" {
		return false
	}
	if r.Header.Get("HX-Request") == "true" {
		return false
	}
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

// Middleware records every trackable request that was served successfully.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !Trackable(c.Request) || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		// The view is recorded even if the client has already gone.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
		defer cancel()
		if err := t.Record(ctx, c.ClientIP(), c.Request.UserAgent(), c.Request.URL.Path); err != nil {
			t.logger.Warn("recording page view failed", zap.Error(err))
		}
	}
}

// RunRetention sweeps immediately and then every interval until ctx ends.
func (t *Tracker) RunRetention(ctx context.Context, interval time.Duration) error {
	if _, err := t.Cleanup(ctx); err != nil {
		t.logger.Warn("privacy cleanup failed", zap.Error(err))
	}
	return effects.Every(ctx, interval, func(time.Time) {
		if _, err := t.Cleanup(ctx); err != nil {
			t.logger.Warn("privacy cleanup failed", zap.Error(err))
		}
	})
}
