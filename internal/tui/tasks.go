package tui

import (
	"fmt"
	"strings"

	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/views"
)

// renderTasks renders the timeline followed by the task list.
func renderTasks(g *models.Garden) string {
	entries := views.Timeline(g.Tasks, g.Beds)
	if len(entries) == 0 {
		return "\n  No tasks scheduled.\n"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Task Timeline") + "\n")
	for _, group := range views.GroupByMonth(entries) {
		b.WriteString("\n" + monthStyle.Render(group.Title) + "\n")
		for _, e := range group.Entries {
			b.WriteString("  │ " + timelineLine(e) + "\n")
		}
	}

	b.WriteString("\n" + headingStyle.Render("Tasks") + "\n")
	for _, e := range entries {
		b.WriteString(listItem(e))
	}
	return b.String()
}

func timelineLine(e views.TaskEntry) string {
	line := "● " + dateStyle.Render(e.Due) + "  " + e.Task.Title
	if e.BedName != "" {
		line += mutedStyle.Render(" (" + e.BedName + ")")
	}
	if e.Done {
		line += " " + doneStyle.Render("Completed")
	}
	return line
}

func listItem(e views.TaskEntry) string {
	mark := "○"
	if e.Done {
		mark = doneStyle.Render("✓")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s\n", mark, bedLabelStyle.Render(e.Task.Title))
	if e.Task.Description != "" {
		fmt.Fprintf(&b, "    %s\n", e.Task.Description)
	}

	meta := "Due: " + e.Due
	if e.BedName != "" {
		meta += "  (" + e.BedName + ")"
	}
	if e.PlantingLabel != "" {
		meta += "  " + e.PlantingLabel
	}
	b.WriteString("    " + mutedStyle.Render(meta))
	if e.Done {
		b.WriteString("  " + doneStyle.Render("Completed: "+e.CompletedOn))
	}
	b.WriteString("\n")
	return b.String()
}
