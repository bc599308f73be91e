// Package render draws a laid-out garden scene as SVG or as a terminal cell
// grid.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/viewport"
)

// Options controls SVG output.
type Options struct {
	// Width and Height are the displayed size. The canvas is scaled to fit.
	Width      int
	Height     int
	FontFamily string
	// Compass draws the north marker in the top-left corner.
	Compass bool
}

// DefaultOptions returns the viewer's standard SVG options.
func DefaultOptions() *Options {
	return &Options{
		Width:      int(layout.ViewportWidth),
		Height:     int(layout.ViewportHeight),
		FontFamily: "sans-serif",
		Compass:    true,
	}
}

// GenerateSVG returns an SVG document for the scene under the given viewport
// state. The background grid is fixed to the canvas; beds and plantings sit
// in a group carrying the pan/zoom transform.
func GenerateSVG(scene *layout.Scene, state viewport.State, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	if scene == nil {
		scene = &layout.Scene{}
	}
	state = state.OrDefault()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%d" height="%d" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="Garden Visualization">`+"\n",
		opts.Width, opts.Height, num(layout.CanvasWidth), num(layout.CanvasHeight))
	fmt.Fprintf(&sb, `  <style>.bed-name{font-family:%s;font-size:18px;font-weight:bold;fill:#166534;paint-order:stroke fill;stroke:white;stroke-width:2}.soil{font-family:%s;font-size:12px;fill:#6d28d9;paint-order:stroke fill;stroke:white;stroke-width:1}.compass{font-family:%s;font-size:12px;font-weight:bold;fill:#6b7280}</style>`+"\n",
		opts.FontFamily, opts.FontFamily, opts.FontFamily)

	writeDefs(&sb, scene)

	fmt.Fprintf(&sb, `  <rect width="%s" height="%s" fill="url(#grid)"/>`+"\n", num(layout.CanvasWidth), num(layout.CanvasHeight))

	fmt.Fprintf(&sb, `  <g class="scene" transform="translate(%s %s) scale(%s)">`+"\n",
		num(state.Pan.X()), num(state.Pan.Y()), num(state.Zoom))
	for _, shape := range scene.Beds {
		writeBed(&sb, shape)
	}
	sb.WriteString("  </g>\n")

	if opts.Compass {
		sb.WriteString(`  <g class="compass"><circle cx="30" cy="30" r="18" fill="white" fill-opacity="0.9" stroke="#cbd5e1"/><path d="M 30 16 L 36 34 L 30 30 L 24 34 Z" fill="#334155"/><text x="30" y="62" text-anchor="middle" class="compass">N</text></g>` + "\n")
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func writeDefs(sb *strings.Builder, scene *layout.Scene) {
	minor := num(layout.GridMinor)
	major := num(layout.GridMajor)

	sb.WriteString("  <defs>\n")
	fmt.Fprintf(sb, `    <pattern id="smallGrid" width="%s" height="%s" patternUnits="userSpaceOnUse"><path d="M %s 0 L 0 0 0 %s" fill="none" stroke="#e5e7eb" stroke-width="1"/></pattern>`+"\n",
		minor, minor, minor, minor)
	fmt.Fprintf(sb, `    <pattern id="grid" width="%s" height="%s" patternUnits="userSpaceOnUse"><rect width="%s" height="%s" fill="url(#smallGrid)"/><path d="M %s 0 L 0 0 0 %s" fill="none" stroke="#b6e3b5" stroke-width="2"/></pattern>`+"\n",
		major, major, major, major, major, major)
	for _, shape := range scene.Beds {
		fmt.Fprintf(sb, `    <linearGradient id="%s" x1="0" y1="0" x2="1" y2="1"><stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient>`+"\n",
			shape.Style.GradientID, shape.Style.From, shape.Style.To)
	}
	sb.WriteString("  </defs>\n")
}

func writeBed(sb *strings.Builder, shape layout.BedShape) {
	r := shape.Rect
	fmt.Fprintf(sb, `    <g class="bed" data-bed-id="%s">`+"\n", html.EscapeString(shape.Bed.ID))
	fmt.Fprintf(sb, `      <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="url(#%s)" stroke="%s" stroke-width="%s"/>`+"\n",
		num(r.X), num(r.Y), num(r.Width), num(r.Height), num(layout.BedRadius), shape.Style.GradientID, shape.Style.Stroke, num(layout.BedStroke))
	fmt.Fprintf(sb, `      <text x="%s" y="%s" text-anchor="middle" class="bed-name">%s</text>`+"\n",
		num(shape.Label.X()), num(shape.Label.Y()), html.EscapeString(shape.Bed.Name))
	if shape.Bed.SoilType != "" {
		fmt.Fprintf(sb, `      <text x="%s" y="%s" text-anchor="end" class="soil">%s</text>`+"\n",
			num(shape.SoilLabel.X()), num(shape.SoilLabel.Y()), html.EscapeString(shape.Bed.SoilType))
	}

	for _, m := range shape.Plantings {
		fmt.Fprintf(sb, `      <g class="planting" data-planting-id="%s" data-species="%s">`+"\n",
			html.EscapeString(m.Planting.ID), m.Style.Key)
		fmt.Fprintf(sb, `        <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s"/>`+"\n",
			num(m.Marker.X), num(m.Marker.Y), num(m.Marker.Width), num(m.Marker.Height), num(layout.MarkerRadius), m.Style.Fill, m.Style.Stroke)
		fmt.Fprintf(sb, `        <circle cx="%s" cy="%s" r="9" fill="%s"/>`+"\n",
			num(m.Center.X()), num(m.Center.Y()), m.Style.Icon)
		fmt.Fprintf(sb, `        <title>%s</title>`+"\n", html.EscapeString(strings.Join(Tooltip(m), "\n")))
		sb.WriteString("      </g>\n")
	}
	sb.WriteString("    </g>\n")
}

// Tooltip returns the lines shown when hovering a planting.
func Tooltip(m layout.PlantingMark) []string {
	p := m.Planting
	lines := []string{p.Label()}
	if p.Spacing != nil && *p.Spacing != 0 {
		lines = append(lines, "Spacing: "+num(*p.Spacing)+"ft")
	}
	if p.Notes != "" {
		lines = append(lines, p.Notes)
	}
	if p.PlantedOn != "" {
		lines = append(lines, "Planted: "+p.PlantedOn)
	}
	if p.ExpectedHarvest != "" {
		lines = append(lines, "Harvest: "+p.ExpectedHarvest)
	}
	return lines
}

// LegendItem is one entry of the species legend.
type LegendItem struct {
	Species string
	Style   layout.StyleToken
}

// Legend returns the recognised species with their styles.
func Legend() []LegendItem {
	items := make([]LegendItem, 0, len(layout.LegendSpecies))
	for _, s := range layout.LegendSpecies {
		items = append(items, LegendItem{Species: s, Style: layout.SpeciesStyle(s)})
	}
	return items
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
