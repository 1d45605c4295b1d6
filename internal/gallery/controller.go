// Package gallery implements the full-screen image viewer: selection,
// zoom, pan, keyboard and swipe navigation over a fixed ordered list.
//
// The controller is either closed or open on one index. Navigation past
// either end is a no-op, never a wraparound, and closing always resets
// zoom and pan so the next open starts fresh.
package gallery

import "math"

const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 0.25
	// SwipeThreshold is the horizontal travel, in pixels, a touch must
	// cover to count as a swipe.
	SwipeThreshold = 50.0
)

// Point is a screen position or offset in pixels.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Controller holds the view state of one visitor's gallery.
type Controller struct {
	images []string

	index int // -1 while closed
	zoom  float64
	pan   Point

	dragging   bool
	dragOrigin Point
	panOrigin  Point

	touching    bool
	touchOrigin Point
}

// New returns a closed controller over images. The slice is copied.
func New(images []string) *Controller {
	c := &Controller{images: append([]string(nil), images...)}
	c.reset()
	c.index = -1
	return c
}

func (c *Controller) reset() {
	c.zoom = 1
	c.pan = Point{}
	c.dragging = false
	c.touching = false
}

func (c *Controller) Len() int         { return len(c.images) }
func (c *Controller) Images() []string { return append([]string(nil), c.images...) }
func (c *Controller) IsOpen() bool     { return c.index >= 0 }
func (c *Controller) Index() int       { return c.index }
func (c *Controller) Zoom() float64    { return c.zoom }
func (c *Controller) Pan() Point       { return c.pan }
func (c *Controller) IsDragging() bool { return c.dragging }
func (c *Controller) HasNext() bool    { return c.IsOpen() && c.index+1 < len(c.images) }
func (c *Controller) HasPrev() bool    { return c.IsOpen() && c.index > 0 }

// Current returns the selected image, or "" while closed.
func (c *Controller) Current() string {
	if !c.IsOpen() {
		return ""
	}
	return c.images[c.index]
}

// Open selects image i with zoom 1 and no pan. An index outside the list
// is ignored.
func (c *Controller) Open(i int) bool {
	if i < 0 || i >= len(c.images) {
		return false
	}
	c.reset()
	c.index = i
	return true
}

// Close hides the modal and forgets zoom and pan.
func (c *Controller) Close() {
	c.reset()
	c.index = -1
}

// Next moves one image forward; a no-op on the last image.
func (c *Controller) Next() bool {
	if !c.HasNext() {
		return false
	}
	c.reset()
	c.index++
	return true
}

// Prev moves one image back; a no-op on the first image.
func (c *Controller) Prev() bool {
	if !c.HasPrev() {
		return false
	}
	c.reset()
	c.index--
	return true
}

func (c *Controller) ZoomIn()  { c.setZoom(c.zoom + ZoomStep) }
func (c *Controller) ZoomOut() { c.setZoom(c.zoom - ZoomStep) }

// Wheel zooms in on upward scroll (deltaY < 0) and out on downward
// scroll, with the same step and bounds as the buttons.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.ZoomIn()
	case deltaY > 0:
		c.ZoomOut()
	}
}

// setZoom clamps to [MinZoom, MaxZoom]. Pan is left as is.
func (c *Controller) setZoom(z float64) {
	if !c.IsOpen() {
		return
	}
	c.zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

// ResetView is the double-click action: zoom 1, no pan.
func (c *Controller) ResetView() {
	if !c.IsOpen() {
		return
	}
	c.zoom = 1
	c.pan = Point{}
	c.dragging = false
}

// DragStart begins a pan. Only a zoomed-in image can be panned.
func (c *Controller) DragStart(p Point) {
	if !c.IsOpen() || c.zoom <= 1 {
		return
	}
	c.dragging = true
	c.dragOrigin = p
	c.panOrigin = c.pan
}

// DragMove sets pan to the pan at drag start plus the pointer travel.
func (c *Controller) DragMove(p Point) {
	if !c.dragging || c.zoom <= 1 {
		return
	}
	c.pan = c.panOrigin.add(p.sub(c.dragOrigin))
}

func (c *Controller) DragEnd() {
	c.dragging = false
}

// TouchStart handles a single-finger touch: a pan when zoomed in, a
// potential swipe otherwise.
func (c *Controller) TouchStart(p Point) {
	if !c.IsOpen() {
		return
	}
	if c.zoom > 1 {
		c.DragStart(p)
		return
	}
	c.touching = true
	c.touchOrigin = p
}

func (c *Controller) TouchMove(p Point) {
	if c.dragging {
		c.DragMove(p)
	}
}

// TouchEnd finishes a touch. A swipe fires when zoom is 1, no pan was in
// progress, and the horizontal travel beats both the threshold and the
// vertical travel. Leftward travel goes to the next image.
func (c *Controller) TouchEnd(p Point) {
	if c.dragging {
		c.DragEnd()
		return
	}
	if !c.touching {
		return
	}
	c.touching = false
	if c.zoom != 1 {
		return
	}

	d := p.sub(c.touchOrigin)
	if math.Abs(d.X) <= SwipeThreshold || math.Abs(d.X) <= math.Abs(d.Y) {
		return
	}
	if d.X < 0 {
		c.Next()
	} else {
		c.Prev()
	}
}

// Keys understood by Key.
const (
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyEscape = "Escape"
)

// Key maps ArrowLeft, ArrowRight and Escape to Prev, Next and Close. Keys
// are ignored while closed. It reports whether the key was handled.
func (c *Controller) Key(key string) bool {
	if !c.IsOpen() {
		return false
	}
	switch key {
	case KeyLeft:
		c.Prev()
	case KeyRight:
		c.Next()
	case KeyEscape:
		c.Close()
	default:
		return false
	}
	return true
}
