package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/fentz26/gardenview/internal/checks"
	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/render"
	"github.com/fentz26/gardenview/internal/views"
)

//go:embed viewer.html.tmpl
var viewerTemplate string

var pageTemplate = template.Must(template.New("viewer").Parse(viewerTemplate))

// pageData feeds viewer.html.tmpl. Garden is nil on the fallback page.
type pageData struct {
	Garden  *models.Garden
	View    string
	Message string
	Hint    string
	Param   string

	GardenHref string
	TasksHref  string

	SVG         template.HTML
	SVGHref     string
	ZoomPercent int
	Controls    []control
	Legend      []render.LegendItem
	Unplaced    []models.Bed

	Groups   []views.MonthGroup
	Entries  []views.TaskEntry
	Insights views.Insights
	Issues   []checks.Issue
}

func (s *Server) renderViewer(w http.ResponseWriter, g *models.Garden, state viewState) {
	data := pageData{
		Garden:     g,
		View:       state.view,
		GardenHref: state.withView(viewGarden).url("/"),
		TasksHref:  state.withView(viewTasks).url("/"),
		Insights:   views.BuildInsights(g),
		Issues:     checks.Run(g),
	}

	switch state.view {
	case viewTasks:
		data.Entries = views.Timeline(g.Tasks, g.Beds)
		data.Groups = views.GroupByMonth(data.Entries)
	default:
		scene := layout.Build(g)
		data.SVG = template.HTML(render.GenerateSVG(scene, state.vp.State(), render.DefaultOptions()))
		data.SVGHref = state.url("/garden.svg")
		data.ZoomPercent = state.vp.ZoomPercent()
		data.Controls = state.controls()
		data.Legend = render.Legend()
		data.Unplaced = scene.Unplaced
	}

	s.writePage(w, http.StatusOK, data)
}

func (s *Server) renderFallback(w http.ResponseWriter, status int, message string) {
	s.writePage(w, status, pageData{
		Message: message,
		Hint:    document.MsgGetALink,
		Param:   codec.QueryParam,
	})
}

func (s *Server) writePage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, document.MsgUnexpected, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
