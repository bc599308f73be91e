// Package checks inspects a garden plan for spacing, boundary and scheduling
// problems. It only reads the document.
package checks

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fentz26/gardenview/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// IssueType classifies a plan issue.
type IssueType string

const (
	TypeSpacingConflict IssueType = "spacing_conflict"
	TypeBedBoundary     IssueType = "bed_boundary"
	TypeTaskDate        IssueType = "task_date"
)

// Issue is one problem found in a plan.
type Issue struct {
	Type        IssueType `json:"type"`
	Message     string    `json:"message"`
	BedName     string    `json:"bed_name,omitempty"`
	Planting1ID string    `json:"planting1_id,omitempty"`
	Planting2ID string    `json:"planting2_id,omitempty"`
	TaskID      string    `json:"task_id,omitempty"`
}

// Run returns every issue in the garden: spacing conflicts first, then
// boundary violations, then task dates.
func Run(g *models.Garden) []Issue {
	if g == nil {
		return nil
	}
	var issues []Issue
	issues = append(issues, SpacingConflicts(g)...)
	issues = append(issues, BoundaryViolations(g)...)
	issues = append(issues, TaskDateIssues(g)...)
	return issues
}

// SpacingConflicts reports pairs of plantings in the same bed that sit closer
// than the larger of their spacings. A missing spacing counts as zero.
func SpacingConflicts(g *models.Garden) []Issue {
	var issues []Issue
	for _, bed := range g.Beds {
		for i, p1 := range bed.Plantings {
			for _, p2 := range bed.Plantings[i+1:] {
				minDistance := max(spacing(p1), spacing(p2))
				if planar.Distance(p1.Position, p2.Position) >= minDistance {
					continue
				}
				issues = append(issues, Issue{
					Type:        TypeSpacingConflict,
					Message:     fmt.Sprintf("Plantings %s and %s are too close together in bed '%s'.", p1.Species, p2.Species, bed.Name),
					BedName:     bed.Name,
					Planting1ID: p1.ID,
					Planting2ID: p2.ID,
				})
			}
		}
	}
	return issues
}

// BoundaryViolations reports plantings whose position falls outside
// [0,width]x[0,length] of their bed.
func BoundaryViolations(g *models.Garden) []Issue {
	var issues []Issue
	for _, bed := range g.Beds {
		bounds := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{bed.Dimensions.Width, bed.Dimensions.Length}}
		for _, p := range bed.Plantings {
			if bounds.Contains(p.Position) {
				continue
			}
			issues = append(issues, Issue{
				Type:        TypeBedBoundary,
				Message:     fmt.Sprintf("Planting %s at position %s is outside the boundaries of bed '%s'.", p.Species, formatPoint(p.Position), bed.Name),
				BedName:     bed.Name,
				Planting1ID: p.ID,
			})
		}
	}
	return issues
}

// TaskDateIssues reports tasks scheduled before their planting went in, or,
// for tasks without a planting, before the garden was created. Dates that do
// not parse are skipped.
func TaskDateIssues(g *models.Garden) []Issue {
	plantings := make(map[string]models.Planting)
	for _, bed := range g.Beds {
		for _, p := range bed.Plantings {
			plantings[p.ID] = p
		}
	}
	created, createdOK := ParseDate(g.CreatedAt)

	var issues []Issue
	for _, task := range g.Tasks {
		target, ok := ParseDate(task.TargetDate)
		if !ok {
			continue
		}

		if task.RelatedPlantingID != "" {
			p, found := plantings[task.RelatedPlantingID]
			if !found {
				continue
			}
			planted, ok := ParseDate(p.PlantedOn)
			if !ok || !target.Before(planted) {
				continue
			}
			issues = append(issues, Issue{
				Type:        TypeTaskDate,
				Message:     fmt.Sprintf("Task '%s' is scheduled before planting date.", task.Title),
				TaskID:      task.ID,
				Planting1ID: task.RelatedPlantingID,
			})
			continue
		}

		if createdOK && target.Before(created) {
			issues = append(issues, Issue{
				Type:    TypeTaskDate,
				Message: fmt.Sprintf("Task '%s' is scheduled before garden creation.", task.Title),
				TaskID:  task.ID,
			})
		}
	}
	return issues
}

// ParseDate reads a calendar date from either a YYYY-MM-DD string or an
// RFC 3339 timestamp. Timestamps are truncated to their date.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	if len(s) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func spacing(p models.Planting) float64 {
	if p.Spacing == nil {
		return 0
	}
	return *p.Spacing
}

func formatPoint(p orb.Point) string {
	return "(" + strconv.FormatFloat(p.X(), 'g', -1, 64) + ", " + strconv.FormatFloat(p.Y(), 'g', -1, 64) + ")"
}
