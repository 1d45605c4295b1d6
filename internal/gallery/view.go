package gallery

import "fmt"

// View is a snapshot of the controller for rendering.
type View struct {
	Open     bool
	Index    int
	Total    int
	Src      string
	Zoom     float64
	Pan      Point
	Dragging bool
	HasPrev  bool
	HasNext  bool
}

// View snapshots the current state. Pan is reported as zero unless the
// image is zoomed in, since it has no visible effect otherwise.
func (c *Controller) View() View {
	v := View{
		Open:     c.IsOpen(),
		Index:    c.index,
		Total:    len(c.images),
		Src:      c.Current(),
		Zoom:     c.zoom,
		Dragging: c.dragging,
		HasPrev:  c.HasPrev(),
		HasNext:  c.HasNext(),
	}
	if c.zoom > 1 {
		v.Pan = c.pan
	}
	return v
}

// Position is the 1-based index shown in the counter.
func (v View) Position() int { return v.Index + 1 }

// ZoomPercent is the zoom level as a whole percentage.
func (v View) ZoomPercent() int { return int(v.Zoom*100 + 0.5) }

// Transform is the CSS transform applied to the open image.
func (v View) Transform() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g)", v.Pan.X, v.Pan.Y, v.Zoom)
}
