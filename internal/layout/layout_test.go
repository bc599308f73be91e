package layout

import (
	"testing"

	"github.com/fentz26/gardenview/internal/models"
	"github.com/paulmach/orb"
)

func placed(x, y float64) *orb.Point {
	p := orb.Point{x, y}
	return &p
}

func TestBedRect(t *testing.T) {
	bed := models.Bed{ID: "b", Position: placed(2, 3), Dimensions: models.Dimensions{Width: 4, Length: 5}}
	got, ok := BedRect(bed)
	if !ok {
		t.Fatal("Expected placed bed")
	}
	want := Rect{X: 72, Y: 108, Width: 144, Height: 180}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestBedRectIgnoresUnit(t *testing.T) {
	bed := models.Bed{Position: placed(1, 1), Dimensions: models.Dimensions{Width: 2, Length: 2, Unit: models.UnitMeters}}
	got, _ := BedRect(bed)
	if got.Width != 72 {
		t.Errorf("Unit should not be consulted, got width %v", got.Width)
	}
}

func TestBuild(t *testing.T) {
	g := &models.Garden{
		Name: "G",
		Beds: []models.Bed{
			{ID: "loose", Name: "Loose", Dimensions: models.Dimensions{Width: 1, Length: 1}},
			{
				ID:         "b",
				Name:       "Herbs",
				Position:   placed(2, 3),
				Dimensions: models.Dimensions{Width: 4, Length: 5},
				Plantings: []models.Planting{
					{ID: "p1", Species: "BASIL", Position: orb.Point{1, 2}},
					{ID: "p2", Species: "Okra", Position: orb.Point{0, 0}},
				},
			},
		},
	}

	s := Build(g)
	if len(s.Beds) != 1 || len(s.Unplaced) != 1 {
		t.Fatalf("Expected 1 placed and 1 unplaced bed, got %d and %d", len(s.Beds), len(s.Unplaced))
	}

	shape := s.Beds[0]
	if shape.Index != 1 || shape.Style.GradientID != "bed1" {
		t.Errorf("Style should follow the list index, got %d %s", shape.Index, shape.Style.GradientID)
	}
	if shape.Label != (orb.Point{144, 94}) {
		t.Errorf("Unexpected label anchor %v", shape.Label)
	}

	m := shape.Plantings[0]
	if m.Center != (orb.Point{108, 180}) {
		t.Errorf("Expected center (108,180), got %v", m.Center)
	}
	if m.Marker != (Rect{X: 92, Y: 164, Width: 32, Height: 32}) {
		t.Errorf("Unexpected marker %+v", m.Marker)
	}
	if m.Style.Key != "basil" {
		t.Errorf("Expected basil style, got %s", m.Style.Key)
	}
	if shape.Plantings[1].Style.Key != "default" {
		t.Errorf("Unknown species should use default, got %s", shape.Plantings[1].Style.Key)
	}

	if empty := Build(nil); len(empty.Beds) != 0 {
		t.Error("nil garden should build an empty scene")
	}
}

func TestSpeciesStyle(t *testing.T) {
	tests := []struct {
		species string
		key     string
		fill    string
	}{
		{"Tomato", "tomato", "#fee2e2"},
		{"basil", "basil", "#dcfce7"},
		{"CARROT", "carrot", "#ffedd5"},
		{"Lettuce", "lettuce", "#f0fdf4"},
		{"flower", "flower", "#fce7f3"},
		{"", "default", "#f3f4f6"},
		{"Cherry tomato", "default", "#f3f4f6"},
	}
	for _, tt := range tests {
		got := SpeciesStyle(tt.species)
		if got.Key != tt.key || got.Fill != tt.fill {
			t.Errorf("SpeciesStyle(%q) = %+v, want key %s fill %s", tt.species, got, tt.key, tt.fill)
		}
	}
	for _, s := range LegendSpecies {
		if SpeciesStyle(s).Key == "default" {
			t.Errorf("Legend species %s has no style", s)
		}
	}
}

func TestBedStyleIsDeterministic(t *testing.T) {
	if BedStyle(0) != BedStyle(0) {
		t.Error("BedStyle should be stable")
	}
	if BedStyle(0).From != "#bef264" || BedStyle(0).To != "#5eead4" {
		t.Errorf("Unexpected first gradient %+v", BedStyle(0))
	}
	if BedStyle(4).From != BedStyle(0).From || BedStyle(4).GradientID != "bed4" {
		t.Errorf("Palette should cycle but ids stay unique: %+v", BedStyle(4))
	}
}

func TestExtentAndHitTest(t *testing.T) {
	g := &models.Garden{Beds: []models.Bed{
		{ID: "a", Position: placed(0, 0), Dimensions: models.Dimensions{Width: 2, Length: 2},
			Plantings: []models.Planting{{ID: "p", Species: "Tomato", Position: orb.Point{1, 1}}}},
		{ID: "far", Position: placed(40, 30), Dimensions: models.Dimensions{Width: 2, Length: 1}},
	}}
	s := Build(g)

	ext := s.Extent()
	if ext.Max.X() != 42*Scale || ext.Max.Y() != 31*Scale {
		t.Errorf("Extent should reach past the canvas, got %v", ext)
	}
	if (&Scene{}).Extent().Max != (orb.Point{CanvasWidth, CanvasHeight}) {
		t.Error("Empty scene extent should be the canvas")
	}

	hit, ok := s.HitTest(orb.Point{36, 36})
	if !ok || hit.Planting == nil || hit.Planting.Planting.ID != "p" {
		t.Errorf("Expected planting hit, got %+v", hit)
	}
	hit, ok = s.HitTest(orb.Point{70, 5})
	if !ok || hit.Planting != nil || hit.Bed.Bed.ID != "a" {
		t.Errorf("Expected bed hit, got %+v", hit)
	}
	if _, ok := s.HitTest(orb.Point{500, 500}); ok {
		t.Error("Expected a miss")
	}
}
