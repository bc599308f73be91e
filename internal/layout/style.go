package layout

import (
	"strconv"
	"strings"
)

// StyleToken is the visual treatment of a planting marker.
type StyleToken struct {
	Key    string
	Fill   string
	Stroke string
	Icon   string
	// Glyph is the single-cell symbol used on terminal surfaces.
	Glyph rune
}

var defaultStyle = StyleToken{Key: "default", Fill: "#f3f4f6", Stroke: "#d1d5db", Icon: "#9ca3af", Glyph: '*'}

var speciesStyles = map[string]StyleToken{
	"tomato":  {Key: "tomato", Fill: "#fee2e2", Stroke: "#f87171", Icon: "#dc2626", Glyph: 'T'},
	"basil":   {Key: "basil", Fill: "#dcfce7", Stroke: "#4ade80", Icon: "#15803d", Glyph: 'B'},
	"carrot":  {Key: "carrot", Fill: "#ffedd5", Stroke: "#fb923c", Icon: "#f97316", Glyph: 'C'},
	"lettuce": {Key: "lettuce", Fill: "#f0fdf4", Stroke: "#86efac", Icon: "#22c55e", Glyph: 'L'},
	"flower":  {Key: "flower", Fill: "#fce7f3", Stroke: "#f472b6", Icon: "#f472b6", Glyph: 'F'},
}

// LegendSpecies lists the recognised species in legend order.
var LegendSpecies = []string{"Tomato", "Basil", "Carrot", "Lettuce", "Flower"}

// SpeciesStyle looks up the style for a species, ignoring case. Unknown
// species get the default style.
func SpeciesStyle(species string) StyleToken {
	if s, ok := speciesStyles[strings.ToLower(species)]; ok {
		return s
	}
	return defaultStyle
}

// BedStyleToken is the visual treatment of a bed.
type BedStyleToken struct {
	GradientID string
	From       string
	To         string
	Stroke     string
}

var bedGradients = [][2]string{
	{"#bef264", "#5eead4"},
	{"#d9f99d", "#6ee7b7"},
	{"#fde68a", "#a3e635"},
	{"#bbf7d0", "#67e8f9"},
}

// BedStyle derives a bed's style from its index in the bed list.
func BedStyle(index int) BedStyleToken {
	if index < 0 {
		index = -index
	}
	g := bedGradients[index%len(bedGradients)]
	return BedStyleToken{
		GradientID: "bed" + strconv.Itoa(index),
		From:       g[0],
		To:         g[1],
		Stroke:     "#15803d",
	}
}
