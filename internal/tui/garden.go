package tui

import (
	"fmt"
	"strings"

	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/render"
	"github.com/fentz26/gardenview/internal/viewport"
	"github.com/paulmach/orb"
)

// gardenCanvas is the garden screen's raster plus the scene it was drawn
// from, for hit testing.
type gardenCanvas struct {
	scene  *layout.Scene
	raster *render.Raster
}

func drawGarden(s *Session, cols, rows int) gardenCanvas {
	scene := layout.Build(s.Garden)
	return gardenCanvas{
		scene:  scene,
		raster: render.Rasterize(scene, s.Viewport.State(), cols, rows),
	}
}

// View renders the raster with colors, merging runs of equally styled cells.
func (g gardenCanvas) View() string {
	var b strings.Builder
	for row := 0; row < g.raster.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runCell render.Cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(cellStyle(g.scene, runCell).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < g.raster.Cols; col++ {
			c, _ := g.raster.At(col, row)
			if run.Len() > 0 && !sameStyle(runCell, c) {
				flush()
			}
			if run.Len() == 0 {
				runCell = c
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return b.String()
}

func sameStyle(a, b render.Cell) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case render.CellPlanting:
		return a.Species == b.Species
	case render.CellBedBorder, render.CellBedLabel:
		return a.Bed == b.Bed
	}
	return true
}

// describe returns what sits under a terminal cell, for the message bar.
func (g gardenCanvas) describe(vp *viewport.Controller, col, row int) string {
	hit, ok := g.scene.HitTest(vp.Unproject(g.raster.CellToScreen(col, row)))
	if !ok {
		return ""
	}
	if hit.Planting != nil {
		return strings.Join(render.Tooltip(*hit.Planting), " · ")
	}
	bed := hit.Bed.Bed
	text := fmt.Sprintf("%s  %gx%g", bed.Name, bed.Dimensions.Width, bed.Dimensions.Length)
	if bed.SoilType != "" {
		text += "  " + bed.SoilType
	}
	return text
}

// screenPoint converts a terminal cell to a canvas screen point.
func (g gardenCanvas) screenPoint(col, row int) orb.Point {
	return g.raster.CellToScreen(col, row)
}

func renderLegend() string {
	var parts []string
	for _, item := range render.Legend() {
		parts = append(parts, speciesStyle(item.Style.Key).Render(string(item.Style.Glyph))+" "+item.Species)
	}
	return strings.Join(parts, "  ")
}

func renderUnplaced(scene *layout.Scene) string {
	if len(scene.Unplaced) == 0 {
		return ""
	}
	names := make([]string, 0, len(scene.Unplaced))
	for _, b := range scene.Unplaced {
		names = append(names, b.Name)
	}
	return mutedStyle.Render("Not placed: " + strings.Join(names, ", "))
}
