package graphstore

import (
	"fmt"

	"github.com/weftdb/weftgraph/pkg/domain"
	"github.com/weftdb/weftgraph/pkg/lattice"
)

// EdgeKey is the composite identity of a hypothesis edge:
// (Source, Target, EdgeType). Keys are totally ordered lexicographically
// — Source first, then Target, then EdgeType — for deterministic
// iteration in the view projector. Source == Target is forbidden by
// upstream validation and is never checked here.
type EdgeKey struct {
	Source   string
	Target   string
	EdgeType domain.EdgeType
}

// Less orders two EdgeKeys lexicographically by (Source, Target,
// EdgeType).
func (k EdgeKey) Less(other EdgeKey) bool {
	if k.Source != other.Source {
		return k.Source < other.Source
	}
	if k.Target != other.Target {
		return k.Target < other.Target
	}
	return k.EdgeType < other.EdgeType
}

// Identifier returns the synthetic reporting string
// "{source}->{target}:{typeCode}" used in merge and tombstone results.
// It deliberately uses the raw integer type code rather than the
// display name — idiosyncratic, but part of the observable interface.
func (k EdgeKey) Identifier() string {
	return fmt.Sprintf("%s->%s:%d", k.Source, k.Target, int32(k.EdgeType))
}

// EdgeLattice is the mutable bundle associated with an EdgeKey. Edges
// have no first-write-wins fields and therefore cannot conflict on
// merge — only their provenance grows.
type EdgeLattice struct {
	Provenance lattice.SetCell[domain.Provenance]
}

// NewEdgeLattice builds an EdgeLattice from validated provenance.
func NewEdgeLattice(provenance []domain.Provenance) *EdgeLattice {
	return &EdgeLattice{Provenance: lattice.NewSetCellFrom(provenance)}
}

// Merge folds other's provenance into e and reports whether it grew.
func (e *EdgeLattice) Merge(other *EdgeLattice) bool {
	return e.Provenance.Merge(other.Provenance)
}
