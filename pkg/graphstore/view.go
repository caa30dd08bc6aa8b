package graphstore

import (
	"sort"
	"time"

	"github.com/weftdb/weftgraph/pkg/domain"
)

// Node is the externally-projected form of a NodeLattice: the id plus
// its fields resolved per §4.7 — an empty or conflicted cell projects
// as the type's zero value (Unspecified / "").
type Node struct {
	ID           string
	Type         domain.NodeType
	Label        string
	Hypothetical bool
	Provenance   []domain.Provenance
}

// Edge is the externally-projected form of an EdgeLattice.
type Edge struct {
	Source     string
	Target     string
	Type       domain.EdgeType
	Provenance []domain.Provenance
}

// CausalGraph is a read-only snapshot of nodes and edges, in ascending
// key order.
type CausalGraph struct {
	Nodes []Node
	Edges []Edge
}

// TombstoneSet is a snapshot of one incident's node and edge tombstones.
type TombstoneSet struct {
	NodeIDs  []string
	EdgeKeys []EdgeKey
}

// IncidentContext is the externally-projected form of an Incident.
type IncidentContext struct {
	IncidentID string
	CreatedAt  time.Time
	Tombstones TombstoneSet
}

func projectNode(id string, n *NodeLattice) Node {
	nodeType, _ := n.NodeType.Reveal() // zero value (Unspecified) if ⊥/⊤
	label, _ := n.Label.Reveal()       // zero value ("") if ⊥/⊤
	return Node{
		ID:           id,
		Type:         nodeType,
		Label:        label,
		Hypothetical: n.Hypothetical.Value(),
		Provenance:   sortedProvenance(n.Provenance.Values()),
	}
}

func projectEdge(key EdgeKey, e *EdgeLattice) Edge {
	return Edge{
		Source:     key.Source,
		Target:     key.Target,
		Type:       key.EdgeType,
		Provenance: sortedProvenance(e.Provenance.Values()),
	}
}

// sortedProvenance orders list in place by (Source, Trigger). list is
// the defensive copy returned by SetCell.Values, so the cell is untouched.
func sortedProvenance(list []domain.Provenance) []domain.Provenance {
	sort.Slice(list, func(i, j int) bool { return list[i].Less(list[j]) })
	return list
}

func sortedNodeIDs(nodes map[string]*NodeLattice) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedEdgeKeys(edges map[EdgeKey]*EdgeLattice) []EdgeKey {
	keys := make([]EdgeKey, 0, len(edges))
	for key := range edges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// buildMainGraph returns every node and edge, unfiltered.
func buildMainGraph(nodes map[string]*NodeLattice, edges map[EdgeKey]*EdgeLattice) CausalGraph {
	graph := CausalGraph{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(edges)),
	}
	for _, id := range sortedNodeIDs(nodes) {
		graph.Nodes = append(graph.Nodes, projectNode(id, nodes[id]))
	}
	for _, key := range sortedEdgeKeys(edges) {
		graph.Edges = append(graph.Edges, projectEdge(key, edges[key]))
	}
	return graph
}

// buildLiveView returns the incident's projection of the global graph:
// a node is included unless its id is tombstoned, and an edge is
// included only if it is not itself tombstoned and neither endpoint is
// a tombstoned node.
func buildLiveView(nodes map[string]*NodeLattice, edges map[EdgeKey]*EdgeLattice, incident *Incident) CausalGraph {
	graph := CausalGraph{Nodes: make([]Node, 0), Edges: make([]Edge, 0)}

	for _, id := range sortedNodeIDs(nodes) {
		if incident.HasNodeTombstone(id) {
			continue
		}
		graph.Nodes = append(graph.Nodes, projectNode(id, nodes[id]))
	}

	for _, key := range sortedEdgeKeys(edges) {
		if incident.HasEdgeTombstone(key) {
			continue
		}
		if incident.HasNodeTombstone(key.Source) || incident.HasNodeTombstone(key.Target) {
			continue
		}
		graph.Edges = append(graph.Edges, projectEdge(key, edges[key]))
	}

	return graph
}

func buildTombstoneSet(incident *Incident) TombstoneSet {
	nodeIDs := make([]string, 0, len(incident.NodeTombstones))
	for id := range incident.NodeTombstones {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	edgeKeys := make([]EdgeKey, 0, len(incident.EdgeTombstones))
	for key := range incident.EdgeTombstones {
		edgeKeys = append(edgeKeys, key)
	}
	sort.Slice(edgeKeys, func(i, j int) bool { return edgeKeys[i].Less(edgeKeys[j]) })

	return TombstoneSet{NodeIDs: nodeIDs, EdgeKeys: edgeKeys}
}
