package server

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// css marks a value built by the server as a safe style value.
		"css":  func(s string) template.CSS { return template.CSS(s) },
		"join": strings.Join,
		"year": func() int { return time.Now().Year() },
	}
}

// templateRenderer is a gin HTML renderer whose template set can be
// swapped while requests are being served.
type templateRenderer struct {
	pattern string
	logger  *zap.Logger
	current atomic.Pointer[template.Template]
}

func newTemplateRenderer(pattern string, logger *zap.Logger) (*templateRenderer, error) {
	r := &templateRenderer{pattern: pattern, logger: logger}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *templateRenderer) reload() error {
	t, err := template.New("").Funcs(templateFuncs()).ParseGlob(r.pattern)
	if err != nil {
		return fmt.Errorf("parse templates %s: %w", r.pattern, err)
	}
	r.current.Store(t)
	return nil
}

// Instance implements render.HTMLRender.
func (r *templateRenderer) Instance(name string, data any) render.Render {
	return render.HTML{Template: r.current.Load(), Name: name, Data: data}
}

// Watch reparses the templates whenever an .html file in dir changes. A
// set that fails to parse is logged and the previous one stays in use.
// The returned func stops watching.
func (r *templateRenderer) Watch(dir string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create template watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != ".html" || event.Has(fsnotify.Chmod) {
					continue
				}
				if err := r.reload(); err != nil {
					r.logger.Warn("template reload failed", zap.Error(err))
					continue
				}
				r.logger.Info("templates reloaded", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("template watcher error", zap.Error(err))
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
	}, nil
}
