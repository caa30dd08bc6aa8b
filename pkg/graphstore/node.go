package graphstore

import (
	"github.com/weftdb/weftgraph/pkg/domain"
	"github.com/weftdb/weftgraph/pkg/lattice"
)

// conflictType and conflictLabel name the two fields a NodeLattice can
// conflict on, in the stable order the spec requires: type is checked
// before label.
const (
	conflictType  = "type"
	conflictLabel = "label"
)

// NodeLattice is the mutable bundle of lattice cells associated with a
// node id. The id itself is never stored here — it is the key in the
// enclosing map (pkg/graphstore's Store facade), exactly as the
// teacher's MemoryEngine keys nodes by NodeID without embedding the ID
// in the stored struct's identity.
type NodeLattice struct {
	NodeType     lattice.FWWCell[domain.NodeType]
	Label        lattice.FWWCell[string]
	Hypothetical lattice.BoolCell
	Provenance   lattice.SetCell[domain.Provenance]
}

// NewNodeLattice builds a NodeLattice from a validated node submission.
func NewNodeLattice(nodeType domain.NodeType, label string, hypothetical bool, provenance []domain.Provenance) *NodeLattice {
	return &NodeLattice{
		NodeType:     lattice.NewFWWCell(nodeType),
		Label:        lattice.NewFWWCell(label),
		Hypothetical: lattice.NewBoolCellWithValue(hypothetical),
		Provenance:   lattice.NewSetCellFrom(provenance),
	}
}

// Clone returns a deep-enough copy of n suitable for merge-and-discard:
// mutating the returned lattice never affects n.
func (n *NodeLattice) Clone() *NodeLattice {
	clone := *n
	clone.Provenance = lattice.NewSetCellFrom(n.Provenance.Values())
	return &clone
}

// Merge folds other into n field by field and reports whether any
// field changed.
func (n *NodeLattice) Merge(other *NodeLattice) bool {
	changed := false
	changed = n.NodeType.Merge(other.NodeType) || changed
	changed = n.Label.Merge(other.Label) || changed
	changed = n.Hypothetical.Merge(other.Hypothetical) || changed
	changed = n.Provenance.Merge(other.Provenance) || changed
	return changed
}

// HasConflict reports whether either structural field (type or label)
// is in the conflict state. A node in conflict must never be
// propagated from a merge attempt (see mergeHypothesis).
func (n *NodeLattice) HasConflict() bool {
	return n.NodeType.IsConflict() || n.Label.IsConflict()
}

// ConflictField returns the name of the first conflicted structural
// field ("type" before "label"), or "" if none.
func (n *NodeLattice) ConflictField() string {
	if n.NodeType.IsConflict() {
		return conflictType
	}
	if n.Label.IsConflict() {
		return conflictLabel
	}
	return ""
}

// ExistingValue returns the currently-held string form of the named
// field, for use in a MergeConflict report. It returns "" when that
// cell is empty or itself in conflict (a conflicted cell reveals no
// value), or when field names neither "type" nor "label".
func (n *NodeLattice) ExistingValue(field string) string {
	switch field {
	case conflictType:
		if t, ok := n.NodeType.Reveal(); ok {
			return t.String()
		}
	case conflictLabel:
		if l, ok := n.Label.Reveal(); ok {
			return l
		}
	}
	return ""
}
