package render

import (
	"math"
	"strings"

	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/viewport"
	"github.com/paulmach/orb"
)

// CellKind says what a raster cell shows.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellGrid
	CellBedFill
	CellBedBorder
	CellBedLabel
	CellSoilLabel
	CellPlanting
)

// Cell is one character of a raster.
type Cell struct {
	Rune rune
	Kind CellKind
	// Bed is the scene index of the bed drawn here, or -1.
	Bed int
	// Species is the style key of the planting drawn here.
	Species string
}

// Raster is the canvas drawn onto a grid of terminal cells. Each cell covers
// CanvasWidth/Cols by CanvasHeight/Rows screen units.
type Raster struct {
	Cols  int
	Rows  int
	Cells [][]Cell
}

// String returns the raster as plain text, one line per row.
func (r *Raster) String() string {
	var sb strings.Builder
	for i, row := range r.Cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

// At returns the cell at a column and row.
func (r *Raster) At(col, row int) (Cell, bool) {
	if row < 0 || row >= r.Rows || col < 0 || col >= r.Cols {
		return Cell{}, false
	}
	return r.Cells[row][col], true
}

// CellToScreen returns the screen point at the centre of a cell.
func (r *Raster) CellToScreen(col, row int) orb.Point {
	cw, ch := r.cellSize()
	return orb.Point{(float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch}
}

// ScreenDelta converts a movement in cells to screen units.
func (r *Raster) ScreenDelta(dCols, dRows int) (float64, float64) {
	cw, ch := r.cellSize()
	return float64(dCols) * cw, float64(dRows) * ch
}

func (r *Raster) cellSize() (float64, float64) {
	return layout.CanvasWidth / float64(r.Cols), layout.CanvasHeight / float64(r.Rows)
}

func (r *Raster) toCell(screen orb.Point) (int, int) {
	cw, ch := r.cellSize()
	return cellIndex(screen.X() / cw), cellIndex(screen.Y() / ch)
}

// maxCellIndex bounds cell coordinates of far off-screen geometry so they
// stay representable as int.
const maxCellIndex = 1 << 30

func cellIndex(f float64) int {
	f = math.Floor(f)
	switch {
	case math.IsNaN(f):
		return -maxCellIndex
	case f > maxCellIndex:
		return maxCellIndex
	case f < -maxCellIndex:
		return -maxCellIndex
	}
	return int(f)
}

func (r *Raster) set(col, row int, c Cell) {
	if row < 0 || row >= r.Rows || col < 0 || col >= r.Cols {
		return
	}
	r.Cells[row][col] = c
}

// Rasterize draws the scene into a cols by rows grid under the viewport
// state. The grid dots stay fixed while beds and plantings move with pan and
// zoom.
func Rasterize(scene *layout.Scene, state viewport.State, cols, rows int) *Raster {
	cols = max(cols, 1)
	rows = max(rows, 1)
	r := &Raster{Cols: cols, Rows: rows, Cells: make([][]Cell, rows)}

	cw, ch := r.cellSize()
	for row := range rows {
		r.Cells[row] = make([]Cell, cols)
		for col := range cols {
			c := Cell{Rune: ' ', Kind: CellEmpty, Bed: -1}
			if crossesLine(float64(col)*cw, cw, layout.GridMajor) && crossesLine(float64(row)*ch, ch, layout.GridMajor) {
				c.Rune, c.Kind = '·', CellGrid
			}
			r.Cells[row][col] = c
		}
	}
	if scene == nil {
		return r
	}

	state = state.OrDefault()
	for i, shape := range scene.Beds {
		r.drawBed(state, i, shape)
	}
	return r
}

// crossesLine reports whether [start, start+size) contains a multiple of step.
func crossesLine(start, size, step float64) bool {
	return math.Floor((start+size-1e-9)/step) != math.Floor((start-1e-9)/step)
}

func (r *Raster) drawBed(vp viewport.State, idx int, shape layout.BedShape) {
	b := shape.Rect.Bound()
	c0, r0 := r.toCell(vp.Project(b.Min))
	c1, r1 := r.toCell(vp.Project(b.Max))
	c1 = max(c1, c0+1)
	r1 = max(r1, r0+1)

	// Only visible cells are visited; border placement still uses the
	// unclipped corners.
	for row := max(r0, 0); row <= min(r1, r.Rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, r.Cols-1); col++ {
			cell := Cell{Rune: ' ', Kind: CellBedFill, Bed: idx}
			top, bottom := row == r0, row == r1
			left, right := col == c0, col == c1
			switch {
			case top && left:
				cell.Rune, cell.Kind = '╭', CellBedBorder
			case top && right:
				cell.Rune, cell.Kind = '╮', CellBedBorder
			case bottom && left:
				cell.Rune, cell.Kind = '╰', CellBedBorder
			case bottom && right:
				cell.Rune, cell.Kind = '╯', CellBedBorder
			case top || bottom:
				cell.Rune, cell.Kind = '─', CellBedBorder
			case left || right:
				cell.Rune, cell.Kind = '│', CellBedBorder
			}
			r.set(col, row, cell)
		}
	}

	if shape.Bed.SoilType != "" && r1-r0 >= 2 {
		soil := []rune(shape.Bed.SoilType)
		start := max(c1-len(soil), c0+1)
		r.writeLabel(soil, start, c1-1, r0+1, CellSoilLabel, idx)
	}

	name := []rune(shape.Bed.Name)
	mid := (c0 + c1) / 2
	start := mid - len(name)/2
	r.writeLabel(name, start, start+len(name)-1, r0-1, CellBedLabel, idx)

	for _, m := range shape.Plantings {
		col, row := r.toCell(vp.Project(m.Center))
		r.set(col, row, Cell{Rune: m.Style.Glyph, Kind: CellPlanting, Bed: idx, Species: m.Style.Key})
	}
}

// writeLabel writes text from column start, stopping after column last and
// skipping columns outside the grid.
func (r *Raster) writeLabel(text []rune, start, last, row int, kind CellKind, bed int) {
	if row < 0 || row >= r.Rows {
		return
	}
	from := max(start, 0)
	to := min(last, r.Cols-1, start+len(text)-1)
	for col := from; col <= to; col++ {
		r.set(col, row, Cell{Rune: text[col-start], Kind: kind, Bed: bed})
	}
}
