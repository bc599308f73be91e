package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/gardenview/internal/checks"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/views"
)

// renderInsights renders the agent plan, the document's validation issues and
// the locally computed plan checks.
func renderInsights(g *models.Garden, width int) string {
	in := views.BuildInsights(g)
	panelWidth := max(width-4, 20)

	var b strings.Builder

	plan := headingStyle.Render("Agent Insights") + "\n" + in.Plan
	if !in.PlanProvided {
		plan += "\n" + mutedStyle.Render("(no plan attached to this garden)")
	}
	b.WriteString(panelStyle.Width(panelWidth).Render(plan) + "\n")

	validation := headingStyle.Render("Validation") + "\n"
	if in.Clear() {
		validation += doneStyle.Render(in.ValidationText())
	} else {
		for _, issue := range in.Issues {
			validation += issueStyle.Render("• "+issue) + "\n"
		}
		validation = strings.TrimSuffix(validation, "\n")
	}
	b.WriteString(panelStyle.Width(panelWidth).Render(validation) + "\n")

	b.WriteString(panelStyle.Width(panelWidth).Render(renderChecks(checks.Run(g))) + "\n")
	b.WriteString(" " + renderLegend() + "\n")
	return b.String()
}

func renderChecks(issues []checks.Issue) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Plan Checks") + "\n")
	if len(issues) == 0 {
		b.WriteString(doneStyle.Render("No spacing, boundary or date problems found."))
		return b.String()
	}
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		tag := lipgloss.NewStyle().Foreground(warningColor).Bold(true).Render(string(issue.Type))
		lines = append(lines, tag+" "+issue.Message)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
