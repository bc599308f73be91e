package views

import "github.com/fentz26/gardenview/internal/models"

// DefaultAgentPlan is shown when a garden carries no agent plan.
const DefaultAgentPlan = "This plan optimizes sunlight and companion planting. Tomatoes and basil are paired; salad greens and roots are in separate beds for soil health. Spacing is chosen to avoid crowding."

// AllClear is shown when there are no validation issues.
const AllClear = "All clear, no conflicts or errors detected."

// Insights is the agent panel of a garden.
type Insights struct {
	Plan string
	// PlanProvided is false when Plan is DefaultAgentPlan.
	PlanProvided bool
	Issues       []string
}

// Clear reports whether there are no validation issues.
func (i Insights) Clear() bool {
	return len(i.Issues) == 0
}

// ValidationText returns AllClear or nothing; issues are listed separately.
func (i Insights) ValidationText() string {
	if i.Clear() {
		return AllClear
	}
	return ""
}

// BuildInsights reads the agent plan and validation issues from metadata.
func BuildInsights(g *models.Garden) Insights {
	in := Insights{Plan: DefaultAgentPlan}
	if g == nil {
		return in
	}
	if plan, ok := g.AgentPlan(); ok {
		in.Plan = plan
		in.PlanProvided = true
	}
	in.Issues = g.ValidationIssues()
	return in
}
