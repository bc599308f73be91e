// Package views projects a garden's tasks and metadata into the orderings
// and labels shown by the viewers. Every function recomputes from its
// inputs; nothing is cached.
package views

import (
	"slices"
	"strings"
	"time"

	"github.com/fentz26/gardenview/internal/models"
)

// TimelineOrder returns a copy of tasks sorted by target date. Dates are
// compared as plain strings, so they must be zero-padded YYYY-MM-DD to sort
// by calendar. Tasks with equal dates keep their document order.
func TimelineOrder(tasks []models.GardenTask) []models.GardenTask {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b models.GardenTask) int {
		return strings.Compare(a.TargetDate, b.TargetDate)
	})
	return sorted
}

// ResolveBedName returns the name of the bed with the given ID. An empty ID
// or no match reports false.
func ResolveBedName(bedID string, beds []models.Bed) (string, bool) {
	if bedID == "" {
		return "", false
	}
	for _, b := range beds {
		if b.ID == bedID {
			return b.Name, true
		}
	}
	return "", false
}

// ResolvePlanting returns the planting with the given ID and the bed that
// holds it.
func ResolvePlanting(plantingID string, beds []models.Bed) (models.Planting, models.Bed, bool) {
	if plantingID == "" {
		return models.Planting{}, models.Bed{}, false
	}
	for _, b := range beds {
		for _, p := range b.Plantings {
			if p.ID == plantingID {
				return p, b, true
			}
		}
	}
	return models.Planting{}, models.Bed{}, false
}

// TaskEntry is a task with its references resolved for display.
type TaskEntry struct {
	Task models.GardenTask
	// BedName is empty when the task has no bed or the bed does not resolve.
	BedName string
	// PlantingLabel is empty when the planting does not resolve.
	PlantingLabel string
	Due           string
	CompletedOn   string
	Done          bool
	// Status is completed whenever Done. Unknown values read as pending.
	Status models.TaskStatus
}

// Timeline orders tasks and resolves their bed and planting labels.
func Timeline(tasks []models.GardenTask, beds []models.Bed) []TaskEntry {
	ordered := TimelineOrder(tasks)
	entries := make([]TaskEntry, 0, len(ordered))
	for _, t := range ordered {
		e := TaskEntry{
			Task: t,
			Due:  FormatDate(t.TargetDate),
			Done: t.Completed(),
		}
		if name, ok := ResolveBedName(t.RelatedBedID, beds); ok {
			e.BedName = name
		}
		if p, _, ok := ResolvePlanting(t.RelatedPlantingID, beds); ok {
			e.PlantingLabel = p.Label()
		}
		e.Status = models.TaskStatusPending
		if t.Status.Valid() {
			e.Status = t.Status
		}
		if e.Done {
			e.CompletedOn = FormatDate(t.CompletedOn)
			e.Status = models.TaskStatusCompleted
		}
		entries = append(entries, e)
	}
	return entries
}

// MonthGroup is a run of timeline entries sharing a target month.
type MonthGroup struct {
	// Key is YYYY-MM, or the raw date when it has no month.
	Key     string
	Title   string
	Entries []TaskEntry
}

// GroupByMonth splits ordered entries into consecutive month groups.
func GroupByMonth(entries []TaskEntry) []MonthGroup {
	var groups []MonthGroup
	for _, e := range entries {
		key, title := monthOf(e.Task.TargetDate)
		if n := len(groups); n > 0 && groups[n-1].Key == key {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, MonthGroup{Key: key, Title: title, Entries: []TaskEntry{e}})
	}
	return groups
}

func monthOf(date string) (string, string) {
	if t, ok := parseDate(date); ok {
		return t.Format("2006-01"), t.Format("January 2006")
	}
	return date, date
}

// FormatDate renders a date as "Jan 2, 2006". Strings that are not dates are
// returned unchanged.
func FormatDate(s string) string {
	if t, ok := parseDate(s); ok {
		return t.Format("Jan 2, 2006")
	}
	return s
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
