package model

// PrivacyGraph is the node/link representation of persona linkage produced
// for external rendering. The analyzer only builds the structure; styling
// and layout belong to the consumer.
type PrivacyGraph struct {
	// Nodes contains one node per persona.
	Nodes []GraphNode `json:"nodes"`

	// Links contains one link per unordered persona pair named together in
	// a warning. Parallel links from distinct warnings are preserved.
	Links []GraphLink `json:"links"`
}

// GraphNode is one persona in the privacy graph.
type GraphNode struct {
	// ID is the persona id.
	ID string `json:"id"`

	// Accounts is the persona's connected account count.
	Accounts int `json:"accounts"`

	// Label is a short display label: the first 8 characters of the id,
	// or the whole id when it is shorter.
	Label string `json:"label"`
}

// GraphLink connects two personas named together in a warning.
type GraphLink struct {
	// Source is the persona id on one end of the link.
	Source string `json:"source"`

	// Target is the persona id on the other end.
	Target string `json:"target"`

	// Type is the warning type that produced this link.
	Type WarningType `json:"type"`

	// Severity is the warning's fixed severity tier.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`
}

// NodeLabel derives the display label for a persona id.
// Truncation is purely cosmetic; ids shorter than 8 characters are
// returned whole.
func NodeLabel(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
