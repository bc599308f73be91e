package checks

import (
	"strings"
	"testing"

	"github.com/fentz26/gardenview/internal/models"
	"github.com/paulmach/orb"
)

func ptr(f float64) *float64 { return &f }

func testBed(plantings ...models.Planting) models.Bed {
	origin := orb.Point{0, 0}
	return models.Bed{
		ID:         "bed",
		Name:       "Test Bed",
		Position:   &origin,
		Dimensions: models.Dimensions{Width: 1, Length: 1},
		Plantings:  plantings,
	}
}

func TestSpacingConflicts(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		g := &models.Garden{Beds: []models.Bed{testBed(
			models.Planting{ID: "p1", Species: "Lettuce", Position: orb.Point{0.1, 0.1}, Spacing: ptr(0.1)},
			models.Planting{ID: "p2", Species: "Carrot", Position: orb.Point{0.8, 0.8}, Spacing: ptr(0.1)},
		)}}
		if issues := SpacingConflicts(g); len(issues) != 0 {
			t.Errorf("Expected no conflicts, got %v", issues)
		}
	})

	t.Run("overlap", func(t *testing.T) {
		g := &models.Garden{Beds: []models.Bed{
			testBed(
				models.Planting{ID: "p1", Species: "Lettuce", Position: orb.Point{0.1, 0.1}, Spacing: ptr(0.2)},
				models.Planting{ID: "p2", Species: "Carrot", Position: orb.Point{0.25, 0.15}, Spacing: ptr(0.2)},
			),
			testBed(),
		}}
		issues := SpacingConflicts(g)
		if len(issues) != 1 {
			t.Fatalf("Expected 1 conflict, got %d", len(issues))
		}
		got := issues[0]
		if got.Type != TypeSpacingConflict || got.Planting1ID != "p1" || got.Planting2ID != "p2" || got.BedName != "Test Bed" {
			t.Errorf("Unexpected issue %+v", got)
		}
		want := "Plantings Lettuce and Carrot are too close together in bed 'Test Bed'."
		if got.Message != want {
			t.Errorf("Expected message %q, got %q", want, got.Message)
		}
	})

	t.Run("missing spacing counts as zero", func(t *testing.T) {
		g := &models.Garden{Beds: []models.Bed{testBed(
			models.Planting{ID: "p1", Species: "A", Position: orb.Point{0.5, 0.5}},
			models.Planting{ID: "p2", Species: "B", Position: orb.Point{0.5, 0.5}},
		)}}
		if issues := SpacingConflicts(g); len(issues) != 0 {
			t.Errorf("Zero spacing should never conflict, got %v", issues)
		}
	})
}

func TestBoundaryViolations(t *testing.T) {
	g := &models.Garden{Beds: []models.Bed{testBed(
		models.Planting{ID: "in", Species: "Bean", Position: orb.Point{0.9, 0.8}},
		models.Planting{ID: "edge", Species: "Pea", Position: orb.Point{1, 1}},
		models.Planting{ID: "right", Species: "Bean", Position: orb.Point{1.1, 0.5}},
		models.Planting{ID: "left", Species: "Corn", Position: orb.Point{-0.2, 0.3}},
	)}}

	issues := BoundaryViolations(g)
	if len(issues) != 2 {
		t.Fatalf("Expected 2 violations, got %d: %v", len(issues), issues)
	}
	if issues[0].Planting1ID != "right" || issues[1].Planting1ID != "left" {
		t.Errorf("Unexpected violations %v", issues)
	}
	want := "Planting Bean at position (1.1, 0.5) is outside the boundaries of bed 'Test Bed'."
	if issues[0].Message != want {
		t.Errorf("Expected %q, got %q", want, issues[0].Message)
	}
}

func TestTaskDateIssues(t *testing.T) {
	planting := models.Planting{ID: "lettuce", Species: "Lettuce", Position: orb.Point{0.5, 0.5}, PlantedOn: "2025-05-10"}

	tests := []struct {
		name    string
		task    models.GardenTask
		created string
		wantMsg string
	}{
		{
			name:    "after planting",
			task:    models.GardenTask{ID: "t", Title: "Thin seedlings", TargetDate: "2025-05-13", RelatedPlantingID: "lettuce"},
			created: "2025-04-01T00:00:00Z",
		},
		{
			name:    "before planting",
			task:    models.GardenTask{ID: "t", Title: "Thin seedlings", TargetDate: "2025-05-05", RelatedPlantingID: "lettuce"},
			created: "2025-04-01T00:00:00Z",
			wantMsg: "Task 'Thin seedlings' is scheduled before planting date.",
		},
		{
			name:    "before creation",
			task:    models.GardenTask{ID: "t", Title: "General Task", TargetDate: "2025-04-20"},
			created: "2025-05-01T00:00:00Z",
			wantMsg: "Task 'General Task' is scheduled before garden creation.",
		},
		{
			name:    "same day as creation",
			task:    models.GardenTask{ID: "t", Title: "General Task", TargetDate: "2025-05-01"},
			created: "2025-05-01T18:30:00Z",
		},
		{
			name:    "dangling planting",
			task:    models.GardenTask{ID: "t", Title: "Ghost", TargetDate: "2020-01-01", RelatedPlantingID: "nope"},
			created: "2025-05-01T00:00:00Z",
		},
		{
			name:    "unparseable target",
			task:    models.GardenTask{ID: "t", Title: "Someday", TargetDate: "soon"},
			created: "2025-05-01T00:00:00Z",
		},
		{
			name:    "unparseable creation",
			task:    models.GardenTask{ID: "t", Title: "Early", TargetDate: "2020-01-01"},
			created: "yesterday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &models.Garden{
				Beds:      []models.Bed{testBed(planting)},
				Tasks:     []models.GardenTask{tt.task},
				CreatedAt: tt.created,
			}
			issues := TaskDateIssues(g)
			if tt.wantMsg == "" {
				if len(issues) != 0 {
					t.Errorf("Expected no issues, got %v", issues)
				}
				return
			}
			if len(issues) != 1 {
				t.Fatalf("Expected 1 issue, got %d", len(issues))
			}
			if issues[0].Message != tt.wantMsg || issues[0].TaskID != "t" {
				t.Errorf("Unexpected issue %+v", issues[0])
			}
		})
	}
}

func TestRunOrder(t *testing.T) {
	g := &models.Garden{
		Beds: []models.Bed{testBed(
			models.Planting{ID: "a", Species: "A", Position: orb.Point{0.5, 0.5}, Spacing: ptr(1)},
			models.Planting{ID: "b", Species: "B", Position: orb.Point{0.6, 0.5}, Spacing: ptr(1)},
			models.Planting{ID: "c", Species: "C", Position: orb.Point{5, 5}},
		)},
		Tasks:     []models.GardenTask{{ID: "t", Title: "Early", TargetDate: "2020-01-01"}},
		CreatedAt: "2024-01-01",
	}

	issues := Run(g)
	var types []string
	for _, is := range issues {
		types = append(types, string(is.Type))
	}
	got := strings.Join(types, ",")
	want := "spacing_conflict,bed_boundary,task_date"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if Run(nil) != nil {
		t.Error("Run(nil) should return nil")
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-03-01", "2024-03-01T23:59:00-08:00", "2024-03-01T10:00:00.123456"} {
		d, ok := ParseDate(s)
		if !ok || d.Format("2006-01-02") != "2024-03-01" {
			t.Errorf("ParseDate(%q) = %v, %v", s, d, ok)
		}
	}
	if _, ok := ParseDate("March 1"); ok {
		t.Error("Expected failure for free text")
	}
}
