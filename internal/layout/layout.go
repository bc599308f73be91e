// Package layout maps garden space (feet) onto canvas pixel space.
//
// Bed positions are top-left corners in garden space; planting positions are
// relative to their bed. Dimensions are always read as feet, whatever unit
// the document declares.
package layout

import (
	"github.com/fentz26/gardenview/internal/models"
	"github.com/paulmach/orb"
)

// Canvas geometry in logical pixels.
const (
	Scale          = 36.0 // pixels per foot
	CanvasWidth    = 1200.0
	CanvasHeight   = 900.0
	ViewportWidth  = 700.0
	ViewportHeight = 440.0

	MarkerSize   = 32.0
	MarkerRadius = 10.0
	BedRadius    = 18.0
	BedStroke    = 4.0

	// GridMinor and GridMajor are the spacings of the fixed background grid.
	GridMinor = Scale
	GridMajor = Scale * 2
)

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bound returns the rectangle as an orb bound.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{r.X, r.Y}, Max: orb.Point{r.X + r.Width, r.Y + r.Height}}
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() orb.Point {
	return orb.Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// PlantingMark is a planting placed on the canvas.
type PlantingMark struct {
	Planting models.Planting
	Center   orb.Point
	Marker   Rect
	Style    StyleToken
}

// BedShape is a placed bed with its plantings.
type BedShape struct {
	// Index is the bed's position in the document's bed list, including
	// unplaced beds.
	Index     int
	Bed       models.Bed
	Rect      Rect
	Style     BedStyleToken
	Label     orb.Point
	SoilLabel orb.Point
	Plantings []PlantingMark
}

// Scene is the canvas geometry of one garden.
type Scene struct {
	Beds []BedShape
	// Unplaced lists beds without a position. They are not drawn.
	Unplaced []models.Bed
}

// BedRect converts a placed bed to its pixel rectangle.
func BedRect(b models.Bed) (Rect, bool) {
	if b.Position == nil {
		return Rect{}, false
	}
	return Rect{
		X:      b.Position.X() * Scale,
		Y:      b.Position.Y() * Scale,
		Width:  b.Dimensions.Width * Scale,
		Height: b.Dimensions.Length * Scale,
	}, true
}

// PlantingCenter returns the canvas point of a planting inside a bed
// rectangle.
func PlantingCenter(bed Rect, p models.Planting) orb.Point {
	return orb.Point{bed.X + p.Position.X()*Scale, bed.Y + p.Position.Y()*Scale}
}

// MarkerRect returns the square marker drawn around a planting center.
func MarkerRect(center orb.Point) Rect {
	return Rect{
		X:      center.X() - MarkerSize/2,
		Y:      center.Y() - MarkerSize/2,
		Width:  MarkerSize,
		Height: MarkerSize,
	}
}

// Build lays out every placed bed of the garden in document order.
func Build(g *models.Garden) *Scene {
	s := &Scene{}
	if g == nil {
		return s
	}
	for idx, bed := range g.Beds {
		rect, ok := BedRect(bed)
		if !ok {
			s.Unplaced = append(s.Unplaced, bed)
			continue
		}

		shape := BedShape{
			Index:     idx,
			Bed:       bed,
			Rect:      rect,
			Style:     BedStyle(idx),
			Label:     orb.Point{rect.X + rect.Width/2, rect.Y - 14},
			SoilLabel: orb.Point{rect.X + rect.Width - 10, rect.Y + 18},
		}
		for _, p := range bed.Plantings {
			center := PlantingCenter(rect, p)
			shape.Plantings = append(shape.Plantings, PlantingMark{
				Planting: p,
				Center:   center,
				Marker:   MarkerRect(center),
				Style:    SpeciesStyle(p.Species),
			})
		}
		s.Beds = append(s.Beds, shape)
	}
	return s
}

// Extent returns the bound of everything drawn. An empty scene reports the
// canvas bound. Content may extend past the canvas.
func (s *Scene) Extent() orb.Bound {
	canvas := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{CanvasWidth, CanvasHeight}}
	if len(s.Beds) == 0 {
		return canvas
	}
	b := s.Beds[0].Rect.Bound()
	for _, shape := range s.Beds {
		b = b.Union(shape.Rect.Bound())
		for _, m := range shape.Plantings {
			b = b.Union(m.Marker.Bound())
		}
	}
	return b
}

// Hit is the result of a hit test. Planting is nil when the point is on the
// bed but not on a marker.
type Hit struct {
	Bed      *BedShape
	Planting *PlantingMark
}

// HitTest finds what is drawn at a scene point. Later shapes are drawn on top
// and win.
func (s *Scene) HitTest(p orb.Point) (Hit, bool) {
	for i := len(s.Beds) - 1; i >= 0; i-- {
		shape := &s.Beds[i]
		for j := len(shape.Plantings) - 1; j >= 0; j-- {
			if shape.Plantings[j].Marker.Bound().Contains(p) {
				return Hit{Bed: shape, Planting: &shape.Plantings[j]}, true
			}
		}
	}
	for i := len(s.Beds) - 1; i >= 0; i-- {
		if s.Beds[i].Rect.Bound().Contains(p) {
			return Hit{Bed: &s.Beds[i]}, true
		}
	}
	return Hit{}, false
}
