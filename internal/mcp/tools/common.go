// Package tools implements the gardenview MCP tools. Every tool is read-only:
// documents come in with the call and links go out, nothing is stored.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/models"
)

// Handler provides the dependencies needed by tool handlers.
type Handler struct {
	Decoder *codec.Decoder
	// BaseURL is the viewer address used when a call does not name one.
	BaseURL string
	Logger  *slog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(dec *codec.Decoder, baseURL string, logger *slog.Logger) *Handler {
	if dec == nil {
		dec = codec.NewDecoder(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Decoder: dec,
		BaseURL: baseURL,
		Logger:  logger,
	}
}

// validateDocument runs a tool's garden argument through the same gate a
// viewer applies, returning the canonical JSON alongside the typed document.
func validateDocument(doc map[string]any) (json.RawMessage, *models.Garden, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("garden document is required")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal garden: %w", err)
	}
	g, err := document.Validate(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid garden document: %w", err)
	}
	return raw, g, nil
}

// loadLink decodes a viewer link or bare payload. The failing stage is logged
// and the caller only sees the generic rejection.
func (h *Handler) loadLink(tool, link string) (*models.Garden, error) {
	g, err := document.LoadLink(link, h.Decoder)
	if err != nil {
		h.Logger.Warn(tool+" rejected link", "stage", document.Stage(err), "error", err)
		return nil, errors.New(document.MsgNoDocument)
	}
	return g, nil
}
