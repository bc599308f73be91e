package tools

import (
	"context"
	"fmt"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateLinkInput defines the input for the create_view_link tool.
type CreateLinkInput struct {
	Garden  map[string]any `json:"garden" jsonschema:"The garden document. Must be a JSON object with a non-empty name; beds, tasks and metadata are optional"`
	BaseURL string         `json:"base_url,omitempty" jsonschema:"Viewer address to link to (defaults to the configured base URL)"`
}

// CreateLinkOutput defines the output for the create_view_link tool.
type CreateLinkOutput struct {
	Link      string `json:"link"`
	Payload   string `json:"payload"`
	Name      string `json:"name"`
	Beds      int    `json:"beds"`
	Plantings int    `json:"plantings"`
	Tasks     int    `json:"tasks"`
}

// CreateLinkTool returns the tool definition for create_view_link.
func CreateLinkTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_view_link",
		Description: "Turn a garden document into a shareable viewer link. The document is validated, compressed and carried in the link's data parameter; nothing is stored. Returns: link, payload, name, and bed, planting and task counts.",
	}
}

// HandleCreateLink handles the create_view_link tool call.
func (h *Handler) HandleCreateLink(ctx context.Context, req *mcp.CallToolRequest, input CreateLinkInput) (*mcp.CallToolResult, CreateLinkOutput, error) {
	h.Logger.Info("create_view_link", "has_base_url", input.BaseURL != "")

	raw, g, err := validateDocument(input.Garden)
	if err != nil {
		h.Logger.Warn("create_view_link rejected document", "error", err)
		return nil, CreateLinkOutput{}, err
	}

	payload, err := codec.Encode(raw)
	if err != nil {
		h.Logger.Error("create_view_link encode failed", "error", err)
		return nil, CreateLinkOutput{}, fmt.Errorf("failed to encode garden: %w", err)
	}

	base := input.BaseURL
	if base == "" {
		base = h.BaseURL
	}
	link, err := codec.Link(base, payload)
	if err != nil {
		return nil, CreateLinkOutput{}, fmt.Errorf("failed to build link: %w", err)
	}

	output := CreateLinkOutput{
		Link:      link,
		Payload:   payload,
		Name:      g.Name,
		Beds:      len(g.Beds),
		Plantings: g.PlantingCount(),
		Tasks:     len(g.Tasks),
	}

	h.Logger.Info("create_view_link complete", "name", g.Name, "payload_len", len(payload))
	return nil, output, nil
}
