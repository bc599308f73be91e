package tools

import (
	"context"
	"fmt"

	"github.com/fentz26/gardenview/internal/checks"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CheckInput defines the input for the check_garden tool.
type CheckInput struct {
	Link   string         `json:"link,omitempty" jsonschema:"A garden viewer link or bare payload to check"`
	Garden map[string]any `json:"garden,omitempty" jsonschema:"A garden document to check, instead of a link"`
}

// CheckOutput defines the output for the check_garden tool.
type CheckOutput struct {
	Name   string         `json:"name"`
	Clear  bool           `json:"clear"`
	Issues []checks.Issue `json:"issues"`
}

// CheckTool returns the tool definition for check_garden.
func CheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_garden",
		Description: "Check a garden plan for spacing conflicts between plantings, plantings outside their bed, and tasks dated before their planting or the garden's creation. Pass either link or garden. Returns: name, clear (true when no issues), and issues with type (spacing_conflict|bed_boundary|task_date), message and the ids involved.",
	}
}

// HandleCheck handles the check_garden tool call.
func (h *Handler) HandleCheck(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, CheckOutput, error) {
	h.Logger.Info("check_garden", "from_link", input.Link != "")

	var g *models.Garden
	var err error
	switch {
	case input.Link != "" && input.Garden != nil:
		return nil, CheckOutput{}, fmt.Errorf("pass either link or garden, not both")
	case input.Link != "":
		g, err = h.loadLink("check_garden", input.Link)
	case input.Garden != nil:
		_, g, err = validateDocument(input.Garden)
	default:
		return nil, CheckOutput{}, fmt.Errorf("link or garden is required")
	}
	if err != nil {
		return nil, CheckOutput{}, err
	}

	issues := checks.Run(g)
	if issues == nil {
		issues = []checks.Issue{}
	}

	h.Logger.Info("check_garden complete", "name", g.Name, "issues", len(issues))
	return nil, CheckOutput{Name: g.Name, Clear: len(issues) == 0, Issues: issues}, nil
}
