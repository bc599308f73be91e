package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/viewport"
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
				Plantings: []models.Planting{
					{ID: "p1", Species: "Basil", Position: orb.Point{1, 1}},
				},
			},
			{ID: "b2", Name: "Spare", Dimensions: models.Dimensions{Width: 2, Length: 2}},
		},
		Tasks: []models.GardenTask{
			{ID: "t2", Title: "Harvest", TargetDate: "2024-07-01", RelatedPlantingID: "p1"},
			{ID: "t1", Title: "Sow", TargetDate: "2024-04-01", RelatedBedID: "b1"},
		},
		CreatedAt: "2024-03-01",
	}
}

func testPayload(t *testing.T) string {
	t.Helper()
	payload, err := codec.Encode(testGarden())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return payload
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Options{
		Addr:           "127.0.0.1:0",
		BaseURL:        "http://gardens.test/",
		AllowedOrigins: []string{"https://planner.example"},
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version:        "test",
	})
}

func get(t *testing.T, s *Server, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w.Result()
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return string(b)
}

func TestHealthEndpoint_OK(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !health.OK {
		t.Error("Expected health.OK to be true")
	}
	if health.Version != "test" {
		t.Errorf("Expected version 'test', got '%s'", health.Version)
	}
	if health.Time == "" {
		t.Error("Expected time to be set")
	}
}

func TestViewerFallback(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, "/")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	html := body(t, resp)
	for _, want := range []string{document.MsgNoDocument, `name="link"`, document.MsgGetALink} {
		if !strings.Contains(html, want) {
			t.Errorf("Fallback page missing %q", want)
		}
	}

	resp = get(t, s, "/?data=not-a-garden")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
	html = body(t, resp)
	if !strings.Contains(html, document.MsgNoDocument) {
		t.Error("Rejected payload should show the no-document message")
	}
	if strings.Contains(html, "<svg") {
		t.Error("A rejected document must not be rendered")
	}
}

func TestViewerGarden(t *testing.T) {
	s := newTestServer(t)
	payload := testPayload(t)

	resp := get(t, s, "/?data="+payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML, got %s", ct)
	}
	html := body(t, resp)
	for _, want := range []string{
		"Backyard",
		"<svg",
		`transform="translate(0 0) scale(1)"`,
		"All clear, no conflicts or errors detected.",
		"zoom=1.2",
		"zoom=0.8",
		"Not placed: Spare",
		"Agent Insights",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Garden page missing %q", want)
		}
	}
}

func TestViewerZoomClampsInLinks(t *testing.T) {
	s := newTestServer(t)
	payload := testPayload(t)

	html := body(t, get(t, s, "/?data="+payload+"&zoom=2.4&x=72"))
	if !strings.Contains(html, `transform="translate(72 0) scale(2.4)"`) {
		t.Error("Viewport state should come from the query")
	}
	if !strings.Contains(html, "zoom=2.5") {
		t.Error("Zoom in from 2.4 should link to 2.5")
	}

	html = body(t, get(t, s, "/?data="+payload+"&zoom=9"))
	if !strings.Contains(html, "scale(2.5)") {
		t.Error("Out of range zoom should clamp to 2.5")
	}
}

func TestViewerTasks(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, "/?view=tasks&data="+testPayload(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	html := body(t, resp)
	for _, want := range []string{"Task Timeline", "April 2024", "Apr 1, 2024", "(Salad)", "Basil"} {
		if !strings.Contains(html, want) {
			t.Errorf("Tasks page missing %q", want)
		}
	}
	if strings.Index(html, "Sow") > strings.Index(html, "Harvest") {
		t.Error("Timeline should be ordered by target date")
	}
	if strings.Contains(html, "<svg") {
		t.Error("Tasks view should not draw the garden")
	}
}

func TestViewerPastedLinkRedirects(t *testing.T) {
	s := newTestServer(t)
	payload := testPayload(t)
	link, _ := codec.Link("https://elsewhere.example/view", payload)

	resp := get(t, s, "/?link="+url.QueryEscape(link))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/?data="+payload {
		t.Errorf("Unexpected redirect %s", loc)
	}

	resp = get(t, s, "/?link="+url.QueryEscape("https://elsewhere.example/view"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Link without data should be 400, got %d", resp.StatusCode)
	}
	if html := body(t, resp); !strings.Contains(html, document.MsgNoDocument) {
		t.Error("Link without data should show the no-document message")
	}
}

func TestGardenSVG(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, "/garden.svg?data="+testPayload(t)+"&y=-36")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Expected image/svg+xml, got %s", ct)
	}
	svg := body(t, resp)
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "translate(0 -36)") {
		t.Errorf("Unexpected svg %s", svg)
	}

	resp = get(t, s, "/garden.svg")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Missing data should be 400, got %d", resp.StatusCode)
	}
}

func TestGardenAPI(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, "/api/garden?data="+testPayload(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var got GardenResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Garden.Name != "Backyard" {
		t.Errorf("Expected Backyard, got %q", got.Garden.Name)
	}
	if len(got.Layout) != 1 {
		t.Fatalf("Expected 1 placed bed, got %d", len(got.Layout))
	}
	want := layout.Rect{X: 72, Y: 108, Width: 144, Height: 180}
	if got.Layout[0].Rect != want {
		t.Errorf("Expected rect %+v, got %+v", want, got.Layout[0].Rect)
	}
	if p := got.Layout[0].Plantings[0]; p.Style != "basil" || p.Center != [2]float64{108, 144} {
		t.Errorf("Unexpected planting layout %+v", p)
	}
	if len(got.Unplaced) != 1 || got.Unplaced[0] != "b2" {
		t.Errorf("Expected b2 unplaced, got %v", got.Unplaced)
	}
	if len(got.Timeline) != 2 || got.Timeline[0].ID != "t1" || got.Timeline[0].Bed != "Salad" {
		t.Errorf("Unexpected timeline %+v", got.Timeline)
	}
	if got.Timeline[1].Planting != "Basil" {
		t.Errorf("Expected planting label Basil, got %q", got.Timeline[1].Planting)
	}
	if !got.Insights.AllClear || got.Insights.PlanProvided {
		t.Errorf("Unexpected insights %+v", got.Insights)
	}
}

func TestGardenAPIRejects(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/api/garden", "/api/garden?data=%2F%2F%2F"} {
		resp := get(t, s, target)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, resp.StatusCode)
		}
		var e map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
			t.Fatalf("Failed to decode error: %v", err)
		}
		if e["error"] != document.MsgNoDocument {
			t.Errorf("%s: unexpected error %q", target, e["error"])
		}
	}
}

func TestCreateLink(t *testing.T) {
	s := newTestServer(t)
	doc, _ := json.Marshal(testGarden())

	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(string(doc)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}
	var got LinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !strings.HasPrefix(got.Link, "http://gardens.test/?data=") {
		t.Errorf("Unexpected link %s", got.Link)
	}
	g, err := document.LoadLink(got.Link, nil)
	if err != nil {
		t.Fatalf("Created link does not load: %v", err)
	}
	if g.Name != "Backyard" || got.Name != "Backyard" {
		t.Errorf("Unexpected garden %q", g.Name)
	}
}

func TestCreateLinkRejects(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", "{", http.StatusBadRequest},
		{"not an object", "[1,2]", http.StatusUnprocessableEntity},
		{"missing name", `{"id":"g1","beds":[]}`, http.StatusUnprocessableEntity},
		{"empty name", `{"name":""}`, http.StatusUnprocessableEntity},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestCreateLinkTooLarge(t *testing.T) {
	s := NewServer(Options{
		Decoder: codec.NewDecoder(64),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	big := `{"name":"` + strings.Repeat("a", 200) + `"}`

	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(big))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	req.Header.Set("Origin", "https://planner.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://planner.example" {
		t.Errorf("Expected allowed origin, got %q", got)
	}
}

func TestMCPMount(t *testing.T) {
	var hit string
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	})
	s := NewServer(Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		MCP:    mcpHandler,
	})

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusAccepted || hit != "/mcp" {
		t.Errorf("Expected MCP handler to serve /mcp, got status %d path %q", w.Code, hit)
	}

	req = httptest.NewRequest(http.MethodPost, "/mcp", nil)
	w = httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(w, req)
	if w.Code != http.StatusNotFound && w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected /mcp to be unrouted without a handler, got %d", w.Code)
	}
}

func TestViewStateURL(t *testing.T) {
	st := parseViewState(url.Values{"data": {"abc"}, "zoom": {"1.2"}, "x": {"-36"}, "view": {"bogus"}})
	if st.view != viewGarden {
		t.Errorf("Unknown view should fall back to garden, got %s", st.view)
	}
	if got := st.url("/"); got != "/?data=abc&x=-36&zoom=1.2" {
		t.Errorf("Unexpected url %s", got)
	}

	reset := st.with((*viewport.Controller).Reset)
	if got := reset.url("/"); got != "/?data=abc" {
		t.Errorf("Reset should drop viewport parameters, got %s", got)
	}
	if st.vp.Zoom() != 1.2 {
		t.Error("with must not change the original state")
	}
}
