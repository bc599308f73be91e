package models

// Well-known metadata keys. Any key may be absent.
const (
	MetaAgentPlan        = "agent_plan"
	MetaValidationIssues = "validation_issues"
)

// AgentPlan returns the agent's narrative plan from the document metadata.
// A missing key, a non-string value or an empty string all report false.
func (g *Garden) AgentPlan() (string, bool) {
	v, ok := g.Metadata[MetaAgentPlan]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// ValidationIssues returns the issue strings an agent attached to the
// document. Entries that are not strings are skipped.
func (g *Garden) ValidationIssues() []string {
	v, ok := g.Metadata[MetaValidationIssues]
	if !ok {
		return nil
	}

	var issues []string
	switch list := v.(type) {
	case []string:
		issues = append(issues, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				issues = append(issues, s)
			}
		}
	}
	return issues
}
