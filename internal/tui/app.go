// Package tui provides the interactive terminal viewer for garden links.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	scroll "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/layout"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/store"
)

// Screen rows used around the content area.
const (
	headerRows = 2 // title line and separator
	footerRows = 3 // legend, message and status bar
	panStep    = 4 // columns per pan key press
)

// Recorder remembers opened documents.
type Recorder interface {
	Record(payload string, g *models.Garden) (*store.View, error)
}

// Options configures an App.
type Options struct {
	Decoder  *codec.Decoder
	Recorder Recorder
	Logger   *slog.Logger
}

// App is the main TUI application model.
type App struct {
	session  *Session
	decoder  *codec.Decoder
	recorder Recorder
	logger   *slog.Logger
	input    textinput.Model
	scroll   scroll.Model
	help     help.Model
	width    int
	height   int
	message  string
}

// New creates the viewer and opens link when it is not empty.
func New(link string, opts Options) *App {
	ti := textinput.New()
	ti.Placeholder = "Paste a garden viewer link and press Enter"
	ti.CharLimit = 0
	ti.Width = 80

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a := &App{
		session:  NewSession(),
		decoder:  opts.Decoder,
		recorder: opts.Recorder,
		logger:   logger,
		input:    ti,
		scroll:   scroll.New(80, 20),
		help:     help.New(),
		width:    80,
		height:   24,
	}
	if strings.TrimSpace(link) != "" {
		a.open(link)
	}
	a.syncFocus()
	return a
}

// Session returns the viewing session.
func (a *App) Session() *Session {
	return a.session
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(msg.Width-8, 10)
		a.help.Width = msg.Width
		a.scroll.Width = msg.Width
		a.scroll.Height = a.contentRows()
		a.refreshContent()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.session.Mode == ModeFallback {
			return a, a.updateFallback(msg)
		}
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.MouseMsg:
		if a.session.Mode == ModeGarden {
			a.handleMouse(msg)
			return a, nil
		}
	}

	if a.session.Mode == ModeTasks || a.session.Mode == ModeInsights {
		var cmd tea.Cmd
		a.scroll, cmd = a.scroll.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) updateFallback(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Submit):
		link := strings.TrimSpace(a.input.Value())
		if link == "" {
			return nil
		}
		a.input.SetValue("")
		a.open(link)
		a.syncFocus()
		return nil
	case key.Matches(msg, keys.Back):
		if a.session.Resume() {
			a.message = ""
			a.syncFocus()
		}
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

// handleKey applies a key press on a document screen.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	vp := a.session.Viewport
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, keys.NextView):
		a.session.NextMode()
		a.refreshContent()
	case key.Matches(msg, keys.PrevView):
		a.session.PrevMode()
		a.refreshContent()
	case key.Matches(msg, keys.Open):
		a.session.Fallback()
		a.syncFocus()
	case key.Matches(msg, keys.Back):
		if a.session.Mode != ModeGarden {
			a.session.Mode = ModeGarden
		}
	case a.session.Mode != ModeGarden:
		return nil, false
	case key.Matches(msg, keys.ZoomIn):
		vp.ZoomIn()
	case key.Matches(msg, keys.ZoomOut):
		vp.ZoomOut()
	case key.Matches(msg, keys.Reset):
		vp.Reset()
		a.message = ""
	case key.Matches(msg, keys.PanUp):
		a.panCells(0, -panStep/2)
	case key.Matches(msg, keys.PanDown):
		a.panCells(0, panStep/2)
	case key.Matches(msg, keys.PanLeft):
		a.panCells(-panStep, 0)
	case key.Matches(msg, keys.PanRight):
		a.panCells(panStep, 0)
	default:
		return nil, false
	}
	return nil, true
}

// panCells pans by whole cells. A step that would leave none of the garden
// on screen is not taken.
func (a *App) panCells(cols, rows int) {
	canvas := a.canvas()
	dx, dy := canvas.raster.ScreenDelta(cols, rows)
	vp := a.session.Viewport
	vp.PanBy(dx, dy)
	if !vp.Visible(layout.CanvasWidth, layout.CanvasHeight).Intersects(canvas.scene.Extent()) {
		vp.PanBy(-dx, -dy)
	}
}

// handleMouse maps terminal mouse events onto the viewport state machine.
func (a *App) handleMouse(msg tea.MouseMsg) {
	vp := a.session.Viewport
	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			vp.ZoomIn()
		case tea.MouseButtonWheelDown:
			vp.ZoomOut()
		}
		return
	}

	canvas := a.canvas()
	col, row := msg.X, msg.Y-headerRows
	inside := col >= 0 && col < canvas.raster.Cols && row >= 0 && row < canvas.raster.Rows

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		vp.PointerDown(canvas.screenPoint(col, row))
		a.message = canvas.describe(vp, col, row)
	case tea.MouseActionMotion:
		if !vp.Dragging() {
			return
		}
		if !inside {
			vp.PointerLeave()
			return
		}
		vp.PointerMove(canvas.screenPoint(col, row))
	case tea.MouseActionRelease:
		vp.PointerUp()
	}
}

// open loads a link into the session, recording it when history is on.
func (a *App) open(link string) {
	if err := a.session.Open(link, a.decoder); err != nil {
		a.logLoadError(err)
		a.message = ""
		return
	}
	g := a.session.Garden
	a.logger.Info("garden opened", "name", g.Name, "beds", len(g.Beds), "tasks", len(g.Tasks))
	a.message = fmt.Sprintf("✓ Opened %s", g.Name)
	if a.recorder != nil {
		if _, err := a.recorder.Record(a.session.Payload, g); err != nil {
			a.logger.Warn("record history failed", "error", err)
		}
	}
	a.refreshContent()
}

func (a *App) logLoadError(err error) {
	a.logger.Warn("garden rejected", "stage", document.Stage(err), "error", err)
}

func (a *App) syncFocus() {
	if a.session.Mode == ModeFallback {
		a.input.Focus()
		return
	}
	a.input.Blur()
}

// refreshContent rebuilds the scrollable content of the text screens.
func (a *App) refreshContent() {
	if !a.session.HasDocument() {
		return
	}
	switch a.session.Mode {
	case ModeTasks:
		a.scroll.SetContent(renderTasks(a.session.Garden))
		a.scroll.GotoTop()
	case ModeInsights:
		a.scroll.SetContent(renderInsights(a.session.Garden, a.width))
		a.scroll.GotoTop()
	}
}

func (a *App) contentRows() int {
	return max(a.height-headerRows-footerRows, 5)
}

func (a *App) canvas() gardenCanvas {
	return drawGarden(a.session, max(a.width, 10), a.contentRows())
}

// View implements tea.Model
func (a *App) View() string {
	if a.session.Mode == ModeFallback {
		return a.renderFallback() + "\n" + statusBarStyle.Width(a.width).Render(a.fallbackStatus())
	}

	var b strings.Builder
	b.WriteString(a.renderHeader() + "\n")
	b.WriteString(strings.Repeat("─", max(a.width, 1)) + "\n")

	switch a.session.Mode {
	case ModeGarden:
		canvas := a.canvas()
		b.WriteString(canvas.View() + "\n")
		footer := renderLegend()
		if unplaced := renderUnplaced(canvas.scene); unplaced != "" {
			footer += "   " + unplaced
		}
		b.WriteString(footer + "\n")
	default:
		b.WriteString(a.scroll.View() + "\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %3.f%%", a.scroll.ScrollPercent()*100)) + "\n")
	}

	// Message bar
	if a.message != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(successColor).Render(a.message))
	}
	b.WriteString("\n")

	b.WriteString(statusBarStyle.Width(a.width).Render(a.help.View(keys)))
	return b.String()
}

func (a *App) renderHeader() string {
	header := titleStyle.Render("🌱 gardenview")
	header += " " + gardenNameStyle.Render(a.session.Garden.Name) + " "
	for _, m := range documentModes {
		if m == a.session.Mode {
			header += activeTabStyle.Render(m.String())
		} else {
			header += tabStyle.Render(m.String())
		}
	}
	if a.session.Mode == ModeGarden {
		vp := a.session.Viewport
		state := "idle"
		if vp.Dragging() {
			state = "dragging"
		}
		header += mutedStyle.Render(fmt.Sprintf("  zoom %d%%  pan %.0f,%.0f  %s",
			vp.ZoomPercent(), vp.Pan().X(), vp.Pan().Y(), state))
	}
	return header
}

func (a *App) fallbackStatus() string {
	if a.session.HasDocument() {
		return " Enter:open | Esc:back to garden | Ctrl+C:quit"
	}
	return " Enter:open | Ctrl+C:quit"
}
