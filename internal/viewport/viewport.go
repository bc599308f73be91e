// Package viewport holds the pan/zoom state of a garden view.
//
// The transform is screen = zoom*scene + pan. Zoom scales from the scene
// origin; it never recenters.
package viewport

import (
	"math"

	"github.com/paulmach/orb"
)

// Zoom limits and step.
const (
	MinZoom     = 0.5
	MaxZoom     = 2.5
	ZoomStep    = 0.2
	DefaultZoom = 1.0
)

// State is a snapshot of the interaction state.
type State struct {
	Zoom     float64
	Pan      orb.Point
	Dragging bool
}

// Controller owns zoom, pan and drag state for one rendering surface. It is
// not safe for concurrent use.
type Controller struct {
	zoom     float64
	pan      orb.Point
	dragging bool
	last     orb.Point
}

// New returns a controller at zoom 1 with no pan.
func New() *Controller {
	return &Controller{zoom: DefaultZoom}
}

// Restore returns a controller at the given zoom and pan. Zoom is rounded to
// tenths and clamped; non-finite values fall back to the defaults.
func Restore(zoom float64, pan orb.Point) *Controller {
	c := New()
	if finite(zoom) {
		c.zoom = clamp(roundStep(zoom))
	}
	if finite(pan.X()) && finite(pan.Y()) {
		c.pan = pan
	}
	return c
}

// Project maps a scene point to the screen under this state.
func (s State) Project(p orb.Point) orb.Point {
	return orb.Point{s.Zoom*p.X() + s.Pan.X(), s.Zoom*p.Y() + s.Pan.Y()}
}

// OrDefault returns s, or the initial state when s is the zero value.
func (s State) OrDefault() State {
	if s.Zoom == 0 {
		return State{Zoom: DefaultZoom}
	}
	return s
}

// State returns the current state.
func (c *Controller) State() State {
	return State{Zoom: c.zoom, Pan: c.pan, Dragging: c.dragging}
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 { return c.zoom }

// Pan returns the current pan offset in screen units.
func (c *Controller) Pan() orb.Point { return c.pan }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// ZoomPercent returns the zoom as a whole percentage.
func (c *Controller) ZoomPercent() int {
	return int(math.Round(c.zoom * 100))
}

// PointerDown starts a drag anchored at p.
func (c *Controller) PointerDown(p orb.Point) {
	c.dragging = true
	c.last = p
}

// PointerMove adds the movement since the last pointer position to the pan
// and moves the anchor. It does nothing unless a drag is in progress.
func (c *Controller) PointerMove(p orb.Point) {
	if !c.dragging {
		return
	}
	c.pan = orb.Point{c.pan.X() + p.X() - c.last.X(), c.pan.Y() + p.Y() - c.last.Y()}
	c.last = p
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	c.dragging = false
	c.last = orb.Point{}
}

// PointerLeave ends a drag when the pointer leaves the surface.
func (c *Controller) PointerLeave() {
	c.PointerUp()
}

// PanBy shifts the view by a screen-space offset. Keyboard surfaces use it
// in place of a drag.
func (c *Controller) PanBy(dx, dy float64) {
	c.pan = orb.Point{c.pan.X() + dx, c.pan.Y() + dy}
}

// ZoomIn raises zoom by one step, up to MaxZoom.
func (c *Controller) ZoomIn() {
	c.zoom = clamp(roundStep(c.zoom + ZoomStep))
}

// ZoomOut lowers zoom by one step, down to MinZoom.
func (c *Controller) ZoomOut() {
	c.zoom = clamp(roundStep(c.zoom - ZoomStep))
}

// Reset restores zoom 1 and no pan. A drag in progress is ended.
func (c *Controller) Reset() {
	c.zoom = DefaultZoom
	c.pan = orb.Point{}
	c.dragging = false
	c.last = orb.Point{}
}

// Project maps a scene point to the screen.
func (c *Controller) Project(p orb.Point) orb.Point {
	return c.State().Project(p)
}

// Unproject maps a screen point back to the scene.
func (c *Controller) Unproject(p orb.Point) orb.Point {
	return orb.Point{(p.X() - c.pan.X()) / c.zoom, (p.Y() - c.pan.Y()) / c.zoom}
}

// Visible returns the scene-space region shown in a screen of the given size.
func (c *Controller) Visible(width, height float64) orb.Bound {
	return orb.Bound{
		Min: c.Unproject(orb.Point{0, 0}),
		Max: c.Unproject(orb.Point{width, height}),
	}
}

// roundStep keeps repeated steps on tenths so 1+0.2*n does not drift.
func roundStep(z float64) float64 {
	return math.Round(z*10) / 10
}

func clamp(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
