package tools

import (
	"context"

	"github.com/fentz26/gardenview/internal/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReadLinkInput defines the input for the read_view_link tool.
type ReadLinkInput struct {
	Link string `json:"link" jsonschema:"A garden viewer link, or the bare payload from its data parameter"`
}

// BedSummary contains summary info about a bed.
type BedSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Width     float64  `json:"width"`
	Length    float64  `json:"length"`
	Unit      string   `json:"unit"`
	Placed    bool     `json:"placed"`
	Plantings []string `json:"plantings,omitempty"`
}

// TaskSummary is one timeline entry.
type TaskSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Due         string `json:"due"`
	Bed         string `json:"bed,omitempty"`
	Planting    string `json:"planting,omitempty"`
	CompletedOn string `json:"completed_on,omitempty"`
}

// ReadLinkOutput defines the output for the read_view_link tool.
type ReadLinkOutput struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	CreatedAt        string        `json:"created_at"`
	Beds             []BedSummary  `json:"beds"`
	Timeline         []TaskSummary `json:"timeline"`
	AgentPlan        string        `json:"agent_plan"`
	ValidationIssues []string      `json:"validation_issues,omitempty"`
}

// ReadLinkTool returns the tool definition for read_view_link.
func ReadLinkTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "read_view_link",
		Description: "Decode a garden viewer link and summarize what the viewer shows. Returns: id, name, created_at, beds (id, name, width, length, unit, placed, planting labels), the task timeline ordered by target date with resolved bed and planting names, the agent plan text and any attached validation issues.",
	}
}

// HandleReadLink handles the read_view_link tool call.
func (h *Handler) HandleReadLink(ctx context.Context, req *mcp.CallToolRequest, input ReadLinkInput) (*mcp.CallToolResult, ReadLinkOutput, error) {
	h.Logger.Info("read_view_link", "link_len", len(input.Link))

	g, err := h.loadLink("read_view_link", input.Link)
	if err != nil {
		return nil, ReadLinkOutput{}, err
	}

	insights := views.BuildInsights(g)
	output := ReadLinkOutput{
		ID:               g.ID,
		Name:             g.Name,
		CreatedAt:        g.CreatedAt,
		Beds:             make([]BedSummary, 0, len(g.Beds)),
		Timeline:         []TaskSummary{},
		AgentPlan:        insights.Plan,
		ValidationIssues: insights.Issues,
	}

	for _, b := range g.Beds {
		s := BedSummary{
			ID:     b.ID,
			Name:   b.Name,
			Width:  b.Dimensions.Width,
			Length: b.Dimensions.Length,
			Unit:   string(b.Dimensions.EffectiveUnit()),
			Placed: b.Placed(),
		}
		for _, p := range b.Plantings {
			s.Plantings = append(s.Plantings, p.Label())
		}
		output.Beds = append(output.Beds, s)
	}

	for _, e := range views.Timeline(g.Tasks, g.Beds) {
		output.Timeline = append(output.Timeline, TaskSummary{
			ID:          e.Task.ID,
			Title:       e.Task.Title,
			Due:         e.Due,
			Bed:         e.BedName,
			Planting:    e.PlantingLabel,
			CompletedOn: e.CompletedOn,
		})
	}

	h.Logger.Info("read_view_link complete", "name", g.Name, "beds", len(output.Beds), "tasks", len(output.Timeline))
	return nil, output, nil
}
