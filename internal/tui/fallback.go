package tui

import (
	"strings"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
)

// renderFallback renders the full-screen screen shown when no document is
// loaded.
func (a *App) renderFallback() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("🌱 Garden Viewer") + "\n\n")

	msg := document.MsgNoDocument
	if a.session.Err != nil {
		msg = document.UserMessage(a.session.Err)
	}
	b.WriteString("  " + errorStyle.Render(msg) + "\n\n")

	b.WriteString("  This viewer expects a compressed garden definition in the " +
		headingStyle.Render("?"+codec.QueryParam+"=") + " link parameter.\n")
	b.WriteString("  " + document.MsgGetALink + "\n")
	b.WriteString("  " + mutedStyle.Render(`(Tip: try asking "Show me a link to view this garden.")`) + "\n\n")
	b.WriteString(inputBoxStyle.Width(max(a.width-4, 20)).Render(a.input.View()) + "\n")
	return b.String()
}
