package graphstore

import "github.com/weftdb/weftgraph/pkg/domain"

// ProposedNode is a validated node submission ready to merge: the node
// id plus the lattice fields proposed for it.
type ProposedNode struct {
	ID           string
	NodeType     domain.NodeType
	Label        string
	Hypothetical bool
	Provenance   []domain.Provenance
}

// ProposedEdge is a validated edge submission ready to merge.
type ProposedEdge struct {
	Key        EdgeKey
	Provenance []domain.Provenance
}

// HypothesisDelta is a batch of proposed node and edge additions, the
// unit the merge engine applies atomically.
type HypothesisDelta struct {
	Nodes []ProposedNode
	Edges []ProposedEdge
}

// MergeConflict reports a node whose merge was rejected because a
// structural field (type or label) disagreed with the currently-held
// value. ProposedValue is always empty: the merge engine reports only
// the currently-held value of the conflicted field.
type MergeConflict struct {
	ID            string
	Field         string
	ExistingValue string
	ProposedValue string
}

// HypothesisMergeResult is the outcome of applying one HypothesisDelta.
// All three slices are in submission order.
type HypothesisMergeResult struct {
	CreatedIDs []string
	MergedIDs  []string
	Conflicts  []MergeConflict
}

// mergeHypothesis applies delta to the global node and edge maps under
// the caller's exclusive lease. A conflict on one node does not stop
// the rest of the delta from applying: every non-conflicting node and
// edge in the same delta becomes visible together, and a conflicting
// node leaves the global map bit-identical to its pre-merge state for
// that id.
func mergeHypothesis(nodes map[string]*NodeLattice, edges map[EdgeKey]*EdgeLattice, delta HypothesisDelta) HypothesisMergeResult {
	result := HypothesisMergeResult{
		CreatedIDs: make([]string, 0),
		MergedIDs:  make([]string, 0),
		Conflicts:  make([]MergeConflict, 0),
	}

	for _, proposed := range delta.Nodes {
		proposedLattice := NewNodeLattice(proposed.NodeType, proposed.Label, proposed.Hypothetical, proposed.Provenance)

		existing, exists := nodes[proposed.ID]
		if !exists {
			nodes[proposed.ID] = proposedLattice
			result.CreatedIDs = append(result.CreatedIDs, proposed.ID)
			continue
		}

		candidate := existing.Clone()
		candidate.Merge(proposedLattice)

		if candidate.HasConflict() {
			field := candidate.ConflictField()
			result.Conflicts = append(result.Conflicts, MergeConflict{
				ID:            proposed.ID,
				Field:         field,
				ExistingValue: existing.ExistingValue(field),
				ProposedValue: "",
			})
			continue
		}

		nodes[proposed.ID] = candidate
		result.MergedIDs = append(result.MergedIDs, proposed.ID)
	}

	for _, proposed := range delta.Edges {
		proposedLattice := NewEdgeLattice(proposed.Provenance)
		identifier := proposed.Key.Identifier()

		existing, exists := edges[proposed.Key]
		if !exists {
			edges[proposed.Key] = proposedLattice
			result.CreatedIDs = append(result.CreatedIDs, identifier)
			continue
		}

		existing.Merge(proposedLattice)
		result.MergedIDs = append(result.MergedIDs, identifier)
	}

	return result
}
