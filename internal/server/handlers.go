package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fentz26/gardenview/internal/checks"
	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/render"
	"github.com/fentz26/gardenview/internal/views"
)

// errNoData is returned when a request carries no payload at all.
var errNoData = errors.New("no data parameter")

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		Version: s.opts.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// load decodes and validates the payload of a request. Failures are logged
// with their stage; callers only show document.UserMessage.
func (s *Server) load(r *http.Request, payload string) (*models.Garden, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, errNoData
	}
	g, err := document.Load(payload, s.opts.Decoder)
	if err != nil {
		s.logger.Warn("garden rejected",
			"stage", document.Stage(err),
			"error", err,
			"request_id", requestID(r),
		)
		return nil, err
	}
	return g, nil
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// The fallback page submits a pasted link; turn it into a viewer URL.
	if link := strings.TrimSpace(q.Get("link")); link != "" {
		if payload := codec.PayloadFromLink(link); payload != "" {
			http.Redirect(w, r, viewState{payload: payload, view: viewGarden}.url("/"), http.StatusSeeOther)
			return
		}
		s.renderFallback(w, http.StatusBadRequest, document.MsgNoDocument)
		return
	}

	state := parseViewState(q)
	g, err := s.load(r, state.payload)
	switch {
	case errors.Is(err, errNoData):
		s.renderFallback(w, http.StatusOK, document.MsgNoDocument)
		return
	case err != nil:
		s.renderFallback(w, http.StatusBadRequest, document.UserMessage(err))
		return
	}

	s.renderViewer(w, g, state)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	state := parseViewState(r.URL.Query())
	g, err := s.load(r, state.payload)
	if err != nil {
		http.Error(w, document.UserMessage(orNoDocument(err)), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	io.WriteString(w, render.GenerateSVG(layout.Build(g), state.vp.State(), render.DefaultOptions()))
}

// GardenResponse is returned by GET /api/garden.
type GardenResponse struct {
	Garden   *models.Garden  `json:"garden"`
	Layout   []BedLayout     `json:"layout"`
	Unplaced []string        `json:"unplaced"`
	Timeline []TimelineEntry `json:"timeline"`
	Insights InsightsPayload `json:"insights"`
	Issues   []checks.Issue  `json:"issues"`
}

// BedLayout is a bed's canvas geometry.
type BedLayout struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Rect      layout.Rect      `json:"rect"`
	Gradient  [2]string        `json:"gradient"`
	Plantings []PlantingLayout `json:"plantings"`
}

// PlantingLayout is a planting's canvas position and style.
type PlantingLayout struct {
	ID      string     `json:"id"`
	Species string     `json:"species"`
	Style   string     `json:"style"`
	Center  [2]float64 `json:"center"`
	Tooltip []string   `json:"tooltip"`
}

// TimelineEntry is a task with its references resolved.
type TimelineEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	TargetDate  string `json:"target_date"`
	Due         string `json:"due"`
	Bed         string `json:"bed,omitempty"`
	Planting    string `json:"planting,omitempty"`
	Completed   bool   `json:"completed"`
	CompletedOn string `json:"completed_on,omitempty"`
	Status      string `json:"status"`
}

// InsightsPayload is the agent panel of a garden.
type InsightsPayload struct {
	Plan         string   `json:"plan"`
	PlanProvided bool     `json:"plan_provided"`
	Issues       []string `json:"validation_issues"`
	AllClear     bool     `json:"all_clear"`
}

func (s *Server) handleGarden(w http.ResponseWriter, r *http.Request) {
	g, err := s.load(r, r.URL.Query().Get("data"))
	if err != nil {
		writeError(w, http.StatusBadRequest, document.UserMessage(orNoDocument(err)))
		return
	}
	writeJSON(w, http.StatusOK, buildGardenResponse(g))
}

func buildGardenResponse(g *models.Garden) GardenResponse {
	scene := layout.Build(g)
	resp := GardenResponse{
		Garden:   g,
		Layout:   []BedLayout{},
		Unplaced: []string{},
		Timeline: []TimelineEntry{},
		Issues:   checks.Run(g),
	}
	for _, shape := range scene.Beds {
		bl := BedLayout{
			ID:        shape.Bed.ID,
			Name:      shape.Bed.Name,
			Rect:      shape.Rect,
			Gradient:  [2]string{shape.Style.From, shape.Style.To},
			Plantings: []PlantingLayout{},
		}
		for _, m := range shape.Plantings {
			bl.Plantings = append(bl.Plantings, PlantingLayout{
				ID:      m.Planting.ID,
				Species: m.Planting.Species,
				Style:   m.Style.Key,
				Center:  [2]float64{m.Center.X(), m.Center.Y()},
				Tooltip: render.Tooltip(m),
			})
		}
		resp.Layout = append(resp.Layout, bl)
	}
	for _, b := range scene.Unplaced {
		resp.Unplaced = append(resp.Unplaced, b.ID)
	}
	for _, e := range views.Timeline(g.Tasks, g.Beds) {
		resp.Timeline = append(resp.Timeline, TimelineEntry{
			ID:          e.Task.ID,
			Title:       e.Task.Title,
			TargetDate:  e.Task.TargetDate,
			Due:         e.Due,
			Bed:         e.BedName,
			Planting:    e.PlantingLabel,
			Completed:   e.Done,
			CompletedOn: e.CompletedOn,
			Status:      string(e.Status),
		})
	}
	in := views.BuildInsights(g)
	resp.Insights = InsightsPayload{
		Plan:         in.Plan,
		PlanProvided: in.PlanProvided,
		Issues:       in.Issues,
		AllClear:     in.Clear(),
	}
	if resp.Insights.Issues == nil {
		resp.Insights.Issues = []string{}
	}
	if resp.Issues == nil {
		resp.Issues = []checks.Issue{}
	}
	return resp
}

// LinkResponse is returned by POST /api/links.
type LinkResponse struct {
	Link    string `json:"link"`
	Payload string `json:"payload"`
	Name    string `json:"name"`
}

// handleCreateLink encodes a garden document from the request body into a
// viewer link. The document must pass the same gate as a decoded one.
func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.Decoder.Limit()))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "document too large")
			return
		}
		writeError(w, http.StatusBadRequest, "read body failed")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	g, err := document.Validate(body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	payload, err := codec.Encode(json.RawMessage(body))
	if err != nil {
		s.logger.Error("encode failed", "error", err, "request_id", requestID(r))
		writeError(w, http.StatusInternalServerError, document.MsgUnexpected)
		return
	}
	link, err := codec.Link(s.opts.BaseURL, payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, LinkResponse{Link: link, Payload: payload, Name: g.Name})
}

// orNoDocument maps a missing payload to the decode failure users see.
func orNoDocument(err error) error {
	if errors.Is(err, errNoData) {
		return codec.ErrNoDocument
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
