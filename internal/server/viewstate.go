package server

import (
	"net/url"
	"strconv"

	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/viewport"
	"github.com/paulmach/orb"
)

// Viewer screens selected with the view query parameter.
const (
	viewGarden = "garden"
	viewTasks  = "tasks"
)

// panStep is how far one pan button moves the scene.
const panStep = layout.GridMajor

// viewState is the viewer state carried in a page URL.
type viewState struct {
	payload string
	view    string
	vp      *viewport.Controller
}

func parseViewState(q url.Values) viewState {
	view := q.Get("view")
	if view != viewTasks {
		view = viewGarden
	}
	return viewState{
		payload: q.Get("data"),
		view:    view,
		vp: viewport.Restore(
			parseFloat(q.Get("zoom"), viewport.DefaultZoom),
			orb.Point{parseFloat(q.Get("x"), 0), parseFloat(q.Get("y"), 0)},
		),
	}
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// url returns the page URL for this state. Default values are left out.
func (v viewState) url(path string) string {
	q := url.Values{}
	if v.payload != "" {
		q.Set("data", v.payload)
	}
	if v.view != viewGarden {
		q.Set("view", v.view)
	}
	st := viewport.State{Zoom: viewport.DefaultZoom}
	if v.vp != nil {
		st = v.vp.State()
	}
	if st.Zoom != viewport.DefaultZoom {
		q.Set("zoom", formatFloat(st.Zoom))
	}
	if st.Pan.X() != 0 {
		q.Set("x", formatFloat(st.Pan.X()))
	}
	if st.Pan.Y() != 0 {
		q.Set("y", formatFloat(st.Pan.Y()))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// with returns a copy of the state after applying one controller action.
func (v viewState) with(action func(*viewport.Controller)) viewState {
	st := v.vp.State()
	next := v
	next.vp = viewport.Restore(st.Zoom, st.Pan)
	action(next.vp)
	return next
}

// withView returns a copy showing another screen. Viewport state is kept.
func (v viewState) withView(view string) viewState {
	next := v
	next.view = view
	return next
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// control is one viewport button on the garden page.
type control struct {
	Label string
	Title string
	Href  string
}

func (v viewState) controls() []control {
	return []control{
		{"−", "Zoom out", v.with((*viewport.Controller).ZoomOut).url("/")},
		{"+", "Zoom in", v.with((*viewport.Controller).ZoomIn).url("/")},
		{"⟲", "Reset view", v.with((*viewport.Controller).Reset).url("/")},
		{"←", "Pan left", v.with(pan(-panStep, 0)).url("/")},
		{"→", "Pan right", v.with(pan(panStep, 0)).url("/")},
		{"↑", "Pan up", v.with(pan(0, -panStep)).url("/")},
		{"↓", "Pan down", v.with(pan(0, panStep)).url("/")},
	}
}

func pan(dx, dy float64) func(*viewport.Controller) {
	return func(c *viewport.Controller) {
		c.PanBy(dx, dy)
	}
}
