// Package api is the thin JSON-over-HTTP adapter in front of
// pkg/graphstore.Store. It owns request validation, wire-format
// conversion, and error-to-status mapping; the merge and view
// semantics themselves live entirely in pkg/graphstore.
package api

import (
	"time"

	"github.com/weftdb/weftgraph/pkg/domain"
	"github.com/weftdb/weftgraph/pkg/graphstore"
)

// ProvenanceJSON is the wire form of domain.Provenance.
type ProvenanceJSON struct {
	Source    string `json:"source"`
	Trigger   string `json:"trigger"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (p ProvenanceJSON) toDomain() domain.Provenance {
	prov := domain.NewProvenance(p.Source, p.Trigger)
	if p.Timestamp == "" {
		return prov
	}
	if ts, err := time.Parse(time.RFC3339Nano, p.Timestamp); err == nil {
		return prov.WithTimestamp(ts.Unix(), int32(ts.Nanosecond()))
	}
	return prov
}

func provenanceToJSON(p domain.Provenance) ProvenanceJSON {
	out := ProvenanceJSON{Source: p.Source, Trigger: p.Trigger}
	if p.TimestampSeconds != 0 || p.TimestampNanos != 0 {
		out.Timestamp = time.Unix(p.TimestampSeconds, int64(p.TimestampNanos)).UTC().Format(time.RFC3339Nano)
	}
	return out
}

func provenanceListToJSON(list []domain.Provenance) []ProvenanceJSON {
	out := make([]ProvenanceJSON, len(list))
	for i, p := range list {
		out[i] = provenanceToJSON(p)
	}
	return out
}

func provenanceListToDomain(list []ProvenanceJSON) []domain.Provenance {
	out := make([]domain.Provenance, len(list))
	for i, p := range list {
		out[i] = p.toDomain()
	}
	return out
}

// NodeJSON is the wire form of a proposed node.
type NodeJSON struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	Label        string           `json:"label"`
	Hypothetical bool             `json:"hypothetical"`
	Provenance   []ProvenanceJSON `json:"provenance"`
}

func (n NodeJSON) toProposed() (graphstore.ProposedNode, error) {
	nodeType, ok := domain.ParseNodeTypeName(n.Type)
	if !ok {
		return graphstore.ProposedNode{}, validationErrf(RuleUnspecifiedNodeType, "unknown node type: %s", n.Type)
	}
	return graphstore.ProposedNode{
		ID:           n.ID,
		NodeType:     nodeType,
		Label:        n.Label,
		Hypothetical: n.Hypothetical,
		Provenance:   provenanceListToDomain(n.Provenance),
	}, nil
}

// EdgeJSON is the wire form of a proposed edge.
type EdgeJSON struct {
	Source     string           `json:"source"`
	Target     string           `json:"target"`
	Type       string           `json:"type"`
	Provenance []ProvenanceJSON `json:"provenance"`
}

func (e EdgeJSON) toProposed() (graphstore.ProposedEdge, error) {
	edgeType, ok := domain.ParseEdgeTypeName(e.Type)
	if !ok {
		return graphstore.ProposedEdge{}, validationErrf(RuleUnspecifiedEdgeType, "unknown edge type: %s", e.Type)
	}
	return graphstore.ProposedEdge{
		Key:        graphstore.EdgeKey{Source: e.Source, Target: e.Target, EdgeType: edgeType},
		Provenance: provenanceListToDomain(e.Provenance),
	}, nil
}

func edgeKeyJSON(key graphstore.EdgeKey) EdgeKeyJSON {
	return EdgeKeyJSON{Source: key.Source, Target: key.Target, Type: key.EdgeType.String()}
}

// EdgeKeyJSON identifies an edge by its lattice key, without provenance.
type EdgeKeyJSON struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

func (k EdgeKeyJSON) toEdgeKey() (graphstore.EdgeKey, error) {
	edgeType, ok := domain.ParseEdgeTypeName(k.Type)
	if !ok {
		return graphstore.EdgeKey{}, validationErrf(RuleUnspecifiedEdgeType, "unknown edge type: %s", k.Type)
	}
	return graphstore.EdgeKey{Source: k.Source, Target: k.Target, EdgeType: edgeType}, nil
}

// HypothesisDeltaJSON is the wire form of a MergeHypothesis request body.
type HypothesisDeltaJSON struct {
	Nodes []NodeJSON `json:"nodes"`
	Edges []EdgeJSON `json:"edges"`
}

func (d HypothesisDeltaJSON) toDelta() (graphstore.HypothesisDelta, error) {
	delta := graphstore.HypothesisDelta{
		Nodes: make([]graphstore.ProposedNode, 0, len(d.Nodes)),
		Edges: make([]graphstore.ProposedEdge, 0, len(d.Edges)),
	}
	for _, n := range d.Nodes {
		proposed, err := n.toProposed()
		if err != nil {
			return graphstore.HypothesisDelta{}, err
		}
		delta.Nodes = append(delta.Nodes, proposed)
	}
	for _, e := range d.Edges {
		proposed, err := e.toProposed()
		if err != nil {
			return graphstore.HypothesisDelta{}, err
		}
		delta.Edges = append(delta.Edges, proposed)
	}
	return delta, nil
}

// MergeConflictJSON is the wire form of graphstore.MergeConflict.
type MergeConflictJSON struct {
	ID            string `json:"id"`
	Field         string `json:"field"`
	ExistingValue string `json:"existing_value"`
	ProposedValue string `json:"proposed_value"`
}

// HypothesisMergeResultJSON is the response body for MergeHypothesis.
type HypothesisMergeResultJSON struct {
	CreatedIDs []string            `json:"created_ids"`
	MergedIDs  []string            `json:"merged_ids"`
	Conflicts  []MergeConflictJSON `json:"conflicts"`
}

func mergeResultToJSON(r graphstore.HypothesisMergeResult) HypothesisMergeResultJSON {
	conflicts := make([]MergeConflictJSON, len(r.Conflicts))
	for i, c := range r.Conflicts {
		conflicts[i] = MergeConflictJSON{
			ID:            c.ID,
			Field:         c.Field,
			ExistingValue: c.ExistingValue,
			ProposedValue: c.ProposedValue,
		}
	}
	return HypothesisMergeResultJSON{
		CreatedIDs: r.CreatedIDs,
		MergedIDs:  r.MergedIDs,
		Conflicts:  conflicts,
	}
}

// NodeTombstoneRequestJSON is the request body for tombstoning nodes.
type NodeTombstoneRequestJSON struct {
	IncidentID string         `json:"incident_id"`
	NodeIDs    []string       `json:"node_ids"`
	Provenance ProvenanceJSON `json:"provenance"`
}

// EdgeTombstoneRequestJSON is the request body for tombstoning edges.
type EdgeTombstoneRequestJSON struct {
	IncidentID string         `json:"incident_id"`
	Entries    []EdgeKeyJSON  `json:"entries"`
	Provenance ProvenanceJSON `json:"provenance"`
}

// TombstoneMergeResultJSON is the response body for either tombstone
// merge endpoint.
type TombstoneMergeResultJSON struct {
	AppliedIDs           []string `json:"applied_ids"`
	AlreadyTombstonedIDs []string `json:"already_tombstoned_ids"`
	UnmatchedIDs         []string `json:"unmatched_ids"`
}

func tombstoneResultToJSON(r graphstore.TombstoneMergeResult) TombstoneMergeResultJSON {
	return TombstoneMergeResultJSON{
		AppliedIDs:           r.AppliedIDs,
		AlreadyTombstonedIDs: r.AlreadyTombstonedIDs,
		UnmatchedIDs:         r.UnmatchedIDs,
	}
}

// NodeViewJSON is the wire form of a projected graphstore.Node.
type NodeViewJSON struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	Label        string           `json:"label"`
	Hypothetical bool             `json:"hypothetical"`
	Provenance   []ProvenanceJSON `json:"provenance"`
}

func nodeViewToJSON(n graphstore.Node) NodeViewJSON {
	return NodeViewJSON{
		ID:           n.ID,
		Type:         n.Type.String(),
		Label:        n.Label,
		Hypothetical: n.Hypothetical,
		Provenance:   provenanceListToJSON(n.Provenance),
	}
}

// EdgeViewJSON is the wire form of a projected graphstore.Edge.
type EdgeViewJSON struct {
	Source     string           `json:"source"`
	Target     string           `json:"target"`
	Type       string           `json:"type"`
	Provenance []ProvenanceJSON `json:"provenance"`
}

func edgeViewToJSON(e graphstore.Edge) EdgeViewJSON {
	return EdgeViewJSON{
		Source:     e.Source,
		Target:     e.Target,
		Type:       e.Type.String(),
		Provenance: provenanceListToJSON(e.Provenance),
	}
}

// CausalGraphJSON is the wire form of graphstore.CausalGraph.
type CausalGraphJSON struct {
	Nodes []NodeViewJSON `json:"nodes"`
	Edges []EdgeViewJSON `json:"edges"`
}

func causalGraphToJSON(g graphstore.CausalGraph) CausalGraphJSON {
	nodes := make([]NodeViewJSON, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = nodeViewToJSON(n)
	}
	edges := make([]EdgeViewJSON, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = edgeViewToJSON(e)
	}
	return CausalGraphJSON{Nodes: nodes, Edges: edges}
}

// TombstoneSetJSON is the wire form of graphstore.TombstoneSet.
type TombstoneSetJSON struct {
	NodeIDs  []string      `json:"node_ids"`
	EdgeKeys []EdgeKeyJSON `json:"edge_keys"`
}

func tombstoneSetToJSON(t graphstore.TombstoneSet) TombstoneSetJSON {
	keys := make([]EdgeKeyJSON, len(t.EdgeKeys))
	for i, k := range t.EdgeKeys {
		keys[i] = edgeKeyJSON(k)
	}
	return TombstoneSetJSON{NodeIDs: t.NodeIDs, EdgeKeys: keys}
}

// IncidentContextJSON is the wire form of graphstore.IncidentContext.
type IncidentContextJSON struct {
	IncidentID string           `json:"incident_id"`
	CreatedAt  string           `json:"created_at"`
	Tombstones TombstoneSetJSON `json:"tombstones"`
}

func incidentContextToJSON(c graphstore.IncidentContext) IncidentContextJSON {
	return IncidentContextJSON{
		IncidentID: c.IncidentID,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339Nano),
		Tombstones: tombstoneSetToJSON(c.Tombstones),
	}
}
