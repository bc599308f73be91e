package viewport

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestZoomInClamp(t *testing.T) {
	c := New()
	for i := 0; i < 6; i++ {
		c.ZoomIn()
	}
	if c.Zoom() != 2.2 {
		t.Errorf("Six steps from 1 should reach 2.2, got %v", c.Zoom())
	}

	c.ZoomIn()
	c.ZoomIn()
	if c.Zoom() != MaxZoom {
		t.Errorf("Expected clamp at %v, got %v", MaxZoom, c.Zoom())
	}
	c.ZoomIn()
	if c.Zoom() != MaxZoom {
		t.Errorf("Zoom should stay at %v, got %v", MaxZoom, c.Zoom())
	}
}

func TestZoomOutClamp(t *testing.T) {
	c := New()
	want := []float64{0.8, 0.6, 0.5, 0.5}
	for i, w := range want {
		c.ZoomOut()
		if c.Zoom() != w {
			t.Errorf("Step %d: expected %v, got %v", i+1, w, c.Zoom())
		}
	}
	c.ZoomIn()
	if c.Zoom() != 0.7 {
		t.Errorf("Expected 0.7 after zooming back in, got %v", c.Zoom())
	}
}

func TestResetAfterDrag(t *testing.T) {
	c := New()
	c.ZoomIn()
	c.PointerDown(orb.Point{10, 10})
	c.PointerMove(orb.Point{40, 25})
	c.PointerMove(orb.Point{50, 5})

	c.Reset()
	s := c.State()
	if s.Zoom != 1 || s.Pan != (orb.Point{0, 0}) || s.Dragging {
		t.Errorf("Expected reset state, got %+v", s)
	}
}

func TestPanAccumulatesIncrementally(t *testing.T) {
	c := New()
	c.PointerMove(orb.Point{100, 100})
	if c.Pan() != (orb.Point{0, 0}) {
		t.Fatalf("Move without drag should not pan, got %v", c.Pan())
	}

	c.PointerDown(orb.Point{10, 10})
	if !c.Dragging() {
		t.Fatal("Expected dragging after pointer down")
	}
	c.PointerMove(orb.Point{15, 12})
	c.PointerMove(orb.Point{20, 20})
	if c.Pan() != (orb.Point{10, 10}) {
		t.Errorf("Expected pan (10,10), got %v", c.Pan())
	}

	c.PointerLeave()
	c.PointerMove(orb.Point{500, 500})
	if c.Pan() != (orb.Point{10, 10}) || c.Dragging() {
		t.Errorf("Leaving should end the drag, got %+v", c.State())
	}

	c.PointerDown(orb.Point{0, 0})
	c.PointerMove(orb.Point{-5, 0})
	c.PointerUp()
	if c.Pan() != (orb.Point{5, 10}) {
		t.Errorf("Second drag should add to the first, got %v", c.Pan())
	}
}

func TestZoomDoesNotMovePan(t *testing.T) {
	c := New()
	c.PanBy(30, -20)
	c.ZoomIn()
	c.ZoomOut()
	c.ZoomOut()
	if c.Pan() != (orb.Point{30, -20}) {
		t.Errorf("Zoom should not change pan, got %v", c.Pan())
	}
}

func TestProjectUnproject(t *testing.T) {
	c := Restore(2, orb.Point{10, -5})
	got := c.Project(orb.Point{72, 108})
	if got != (orb.Point{154, 211}) {
		t.Errorf("Expected (154,211), got %v", got)
	}
	back := c.Unproject(got)
	if back != (orb.Point{72, 108}) {
		t.Errorf("Expected round trip to (72,108), got %v", back)
	}

	vis := c.Visible(700, 440)
	if vis.Min != (orb.Point{-5, 2.5}) || vis.Max != (orb.Point{345, 222.5}) {
		t.Errorf("Unexpected visible region %v", vis)
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		zoom     float64
		pan      orb.Point
		wantZoom float64
		wantPan  orb.Point
	}{
		{1.4, orb.Point{3, 4}, 1.4, orb.Point{3, 4}},
		{9, orb.Point{}, MaxZoom, orb.Point{}},
		{0.1, orb.Point{}, MinZoom, orb.Point{}},
		{math.NaN(), orb.Point{math.Inf(1), 0}, 1, orb.Point{}},
	}
	for _, tt := range tests {
		c := Restore(tt.zoom, tt.pan)
		if c.Zoom() != tt.wantZoom || c.Pan() != tt.wantPan {
			t.Errorf("Restore(%v, %v) = %v %v", tt.zoom, tt.pan, c.Zoom(), c.Pan())
		}
	}
	if New().ZoomPercent() != 100 || Restore(1.8, orb.Point{}).ZoomPercent() != 180 {
		t.Error("Unexpected zoom percent")
	}
}
