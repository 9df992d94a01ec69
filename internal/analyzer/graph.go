package analyzer

import (
	"github.com/nao1215/personaguard/internal/model"
)

// Graph transforms personas and warnings into a node/link representation
// for external rendering.
//
// One node is emitted per persona, in input order. For each warning, one
// link is emitted per unordered pair within its affected persona list: a
// warning naming three personas yields three links, not a star. Parallel
// links across distinct warnings are preserved so the consumer can render
// multiple leak classes between the same pair.
//
// Pure function: no styling concerns, no deduplication beyond what the
// detectors already performed.
func Graph(personas []model.Persona, warnings []model.PrivacyWarning) model.PrivacyGraph {
	nodes := make([]model.GraphNode, 0, len(personas))
	for _, p := range personas {
		nodes = append(nodes, model.GraphNode{
			ID:       p.ID,
			Accounts: p.AccountCount(),
			Label:    model.NodeLabel(p.ID),
		})
	}

	links := make([]model.GraphLink, 0)
	for _, w := range warnings {
		affected := w.AffectedPersonas
		for i := 0; i < len(affected); i++ {
			for j := i + 1; j < len(affected); j++ {
				links = append(links, model.GraphLink{
					Source:       affected[i],
					Target:       affected[j],
					Type:         w.Type,
					Severity:     w.Severity,
					SeverityText: w.SeverityText,
				})
			}
		}
	}

	return model.PrivacyGraph{
		Nodes: nodes,
		Links: links,
	}
}
