package tui

import (
	"errors"
	"testing"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/paulmach/orb"
)

func testGarden() *models.Garden {
	pos := orb.Point{2, 3}
	return &models.Garden{
		ID:   "g1",
		Name: "Backyard",
		Beds: []models.Bed{
			{
				ID:         "b1",
				Name:       "Salad",
				Position:   &pos,
				Dimensions: models.Dimensions{Width: 4, Length: 5},
				SoilType:   "loam",
				Plantings: []models.Planting{
					{ID: "p1", Species: "Tomato", Position: orb.Point{1, 1}},
				},
			},
			{ID: "b2", Name: "Spare", Dimensions: models.Dimensions{Width: 2, Length: 2}},
		},
		Tasks: []models.GardenTask{
			{ID: "t2", Title: "Harvest", TargetDate: "2024-07-01", RelatedPlantingID: "p1"},
			{ID: "t1", Title: "Sow", TargetDate: "2024-04-01", RelatedBedID: "b1", CompletedOn: "2024-04-02"},
		},
		CreatedAt: "2024-03-01",
	}
}

func testLink(t *testing.T, g *models.Garden) string {
	t.Helper()
	payload, err := codec.Encode(g)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	link, err := codec.Link("http://127.0.0.1:7467/", payload)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	return link
}

func TestNewSessionStartsInFallback(t *testing.T) {
	s := NewSession()
	if s.Mode != ModeFallback {
		t.Errorf("Expected fallback mode, got %s", s.Mode)
	}
	if s.HasDocument() {
		t.Error("New session should have no document")
	}
	s.NextMode()
	if s.Mode != ModeFallback {
		t.Error("NextMode without a document should stay on fallback")
	}
}

func TestSessionOpen(t *testing.T) {
	s := NewSession()
	if err := s.Open(testLink(t, testGarden()), nil); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Mode != ModeGarden {
		t.Errorf("Expected garden mode, got %s", s.Mode)
	}
	if s.Garden.Name != "Backyard" {
		t.Errorf("Expected Backyard, got %q", s.Garden.Name)
	}
	if s.Payload == "" || s.Err != nil {
		t.Errorf("Unexpected session %+v", s)
	}
}

func TestSessionOpenFailureDropsDocument(t *testing.T) {
	s := NewSession()
	if err := s.Open(testLink(t, testGarden()), nil); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Viewport.ZoomIn()

	err := s.Open(testLink(t, &models.Garden{ID: "x"}), nil)
	if !errors.Is(err, document.ErrMissingName) {
		t.Fatalf("Expected ErrMissingName, got %v", err)
	}
	if s.HasDocument() || s.Mode != ModeFallback {
		t.Errorf("Failed open should fall back with no document, got mode %s", s.Mode)
	}
	if document.UserMessage(s.Err) != document.MsgNoDocument {
		t.Errorf("Unexpected user message %q", document.UserMessage(s.Err))
	}

	if err := s.Open("https://garden.example/?other=1", nil); !errors.Is(err, codec.ErrNoDocument) {
		t.Errorf("Expected ErrNoDocument for a link without data, got %v", err)
	}
}

func TestSessionShowResetsViewport(t *testing.T) {
	s := NewSession()
	s.Show(testGarden(), "p")
	s.Viewport.ZoomIn()
	s.Viewport.PanBy(10, 10)

	s.Show(testGarden(), "q")
	if s.Viewport.Zoom() != 1 || s.Viewport.Pan() != (orb.Point{0, 0}) {
		t.Errorf("Show should reset the viewport, got zoom %v pan %v", s.Viewport.Zoom(), s.Viewport.Pan())
	}
}

func TestSessionModeCycle(t *testing.T) {
	s := NewSession()
	s.Show(testGarden(), "p")

	want := []Mode{ModeTasks, ModeInsights, ModeGarden}
	for _, m := range want {
		s.NextMode()
		if s.Mode != m {
			t.Fatalf("Expected %s, got %s", m, s.Mode)
		}
	}

	s.PrevMode()
	if s.Mode != ModeInsights {
		t.Errorf("PrevMode from garden should go to insights, got %s", s.Mode)
	}

	s.Fallback()
	if !s.Resume() || s.Mode != ModeGarden {
		t.Errorf("Resume should return to the garden, got %s", s.Mode)
	}
	if NewSession().Resume() {
		t.Error("Resume without a document should fail")
	}
}
