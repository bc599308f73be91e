package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/render"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#16A34A")
	accentColor  = lipgloss.Color("#0D9488")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")
	gridColor    = lipgloss.Color("#374151")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	gardenNameStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#BBF7D0")).
			Foreground(lipgloss.Color("#14532D")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	monthStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E40AF"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	doneStyle = lipgloss.NewStyle().
			Foreground(successColor)

	issueStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	gridStyle = lipgloss.NewStyle().
			Foreground(gridColor)

	soilStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	bedLabelStyle = lipgloss.NewStyle().
			Bold(true)
)

// speciesStyle colors a planting glyph with its species icon color.
func speciesStyle(key string) lipgloss.Style {
	token := layout.SpeciesStyle(key)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(token.Icon)).
		Bold(true)
}

// cellStyle picks the style for one raster cell.
func cellStyle(scene *layout.Scene, c render.Cell) lipgloss.Style {
	switch c.Kind {
	case render.CellGrid:
		return gridStyle
	case render.CellSoilLabel:
		return soilStyle
	case render.CellPlanting:
		return speciesStyle(c.Species)
	case render.CellBedBorder, render.CellBedLabel:
		if scene != nil && c.Bed >= 0 && c.Bed < len(scene.Beds) {
			style := scene.Beds[c.Bed].Style
			if c.Kind == render.CellBedLabel {
				return bedLabelStyle.Foreground(lipgloss.Color(style.To))
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color(style.From))
		}
	}
	return lipgloss.NewStyle()
}
