package tui

import (
	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/viewport"
)

// Mode is the screen a session is showing.
type Mode int

const (
	ModeFallback Mode = iota
	ModeGarden
	ModeTasks
	ModeInsights
)

func (m Mode) String() string {
	switch m {
	case ModeGarden:
		return "Garden"
	case ModeTasks:
		return "Tasks"
	case ModeInsights:
		return "Insights"
	default:
		return "Open link"
	}
}

// documentModes are the screens reachable while a document is loaded, in tab
// order.
var documentModes = []Mode{ModeGarden, ModeTasks, ModeInsights}

// Session is the state of one viewing session. The garden is read-only once
// loaded; only the viewport and the mode change.
type Session struct {
	Mode     Mode
	Garden   *models.Garden
	Payload  string
	Viewport *viewport.Controller
	// Err is the last load failure. It is kept for logging; users only see
	// document.UserMessage(Err).
	Err error
}

// NewSession returns a session with no document, on the fallback screen.
func NewSession() *Session {
	return &Session{Mode: ModeFallback, Viewport: viewport.New()}
}

// Open loads a link or bare payload. On failure the previous document is
// dropped and the session falls back; a broken document is never shown.
func (s *Session) Open(link string, dec *codec.Decoder) error {
	g, err := document.LoadLink(link, dec)
	if err != nil {
		s.Garden = nil
		s.Payload = ""
		s.Err = err
		s.Mode = ModeFallback
		return err
	}
	s.Show(g, codec.PayloadFromLink(link))
	return nil
}

// Show installs an already validated document and resets the viewport.
func (s *Session) Show(g *models.Garden, payload string) {
	s.Garden = g
	s.Payload = payload
	s.Err = nil
	s.Viewport = viewport.New()
	s.Mode = ModeGarden
}

// HasDocument reports whether a garden is loaded.
func (s *Session) HasDocument() bool {
	return s.Garden != nil
}

// NextMode cycles through the document screens. It does nothing without a
// document.
func (s *Session) NextMode() {
	if !s.HasDocument() {
		return
	}
	for i, m := range documentModes {
		if m == s.Mode {
			s.Mode = documentModes[(i+1)%len(documentModes)]
			return
		}
	}
	s.Mode = ModeGarden
}

// PrevMode cycles backwards through the document screens.
func (s *Session) PrevMode() {
	if !s.HasDocument() {
		return
	}
	for i, m := range documentModes {
		if m == s.Mode {
			s.Mode = documentModes[(i+len(documentModes)-1)%len(documentModes)]
			return
		}
	}
	s.Mode = ModeGarden
}

// Fallback switches to the link input screen without dropping the document.
func (s *Session) Fallback() {
	s.Mode = ModeFallback
}

// Resume leaves the fallback screen if a document is loaded.
func (s *Session) Resume() bool {
	if !s.HasDocument() {
		return false
	}
	s.Mode = ModeGarden
	return true
}
