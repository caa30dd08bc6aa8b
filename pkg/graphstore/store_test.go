package graphstore

import (
	"context"
	"reflect"
	"testing"

	"github.com/weftdb/weftgraph/pkg/domain"
)

func prov(source, trigger string) domain.Provenance {
	return domain.NewProvenance(source, trigger)
}

func svcNode(id string, hypothetical bool, source string) ProposedNode {
	return ProposedNode{
		ID:           id,
		NodeType:     domain.NodeTypeService,
		Label:        "svc",
		Hypothetical: hypothetical,
		Provenance:   []domain.Provenance{prov(source, "t")},
	}
}

// Scenario A — happy path, single merge.
func TestScenarioAHappyPath(t *testing.T) {
	store := New()
	ctx := context.Background()

	result, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}})
	if err != nil {
		t.Fatalf("MergeHypothesis: %v", err)
	}

	if got := result.CreatedIDs; len(got) != 1 || got[0] != "n1" {
		t.Errorf("CreatedIDs = %v, want [n1]", got)
	}
	if len(result.MergedIDs) != 0 {
		t.Errorf("MergedIDs = %v, want empty", result.MergedIDs)
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("Conflicts = %v, want empty", result.Conflicts)
	}
}

// Scenario B — idempotent replay.
func TestScenarioBIdempotentReplay(t *testing.T) {
	store := New()
	ctx := context.Background()
	delta := HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}}

	if _, err := store.MergeHypothesis(ctx, delta); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	result, err := store.MergeHypothesis(ctx, delta)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}

	if len(result.CreatedIDs) != 0 {
		t.Errorf("CreatedIDs = %v, want empty", result.CreatedIDs)
	}
	if got := result.MergedIDs; len(got) != 1 || got[0] != "n1" {
		t.Errorf("MergedIDs = %v, want [n1]", got)
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("Conflicts = %v, want empty", result.Conflicts)
	}
}

// Scenario C — type conflict, with no-write-on-conflict demonstrated by a
// follow-up successful re-send of the original node.
func TestScenarioCTypeConflict(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}}); err != nil {
		t.Fatalf("seed merge: %v", err)
	}

	conflicting := ProposedNode{
		ID:           "n1",
		NodeType:     domain.NodeTypeInfrastructure,
		Label:        "svc",
		Hypothetical: true,
		Provenance:   []domain.Provenance{prov("b", "t")},
	}
	result, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{conflicting}})
	if err != nil {
		t.Fatalf("conflicting merge: %v", err)
	}

	if len(result.CreatedIDs) != 0 || len(result.MergedIDs) != 0 {
		t.Fatalf("CreatedIDs/MergedIDs = %v/%v, want both empty", result.CreatedIDs, result.MergedIDs)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("Conflicts = %v, want 1 entry", result.Conflicts)
	}
	c := result.Conflicts[0]
	if c.ID != "n1" || c.Field != "type" || c.ExistingValue != "SERVICE" {
		t.Errorf("conflict = %+v, want {n1 type SERVICE}", c)
	}

	// No-write-on-conflict: re-sending the original node now merges cleanly.
	followUp, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}})
	if err != nil {
		t.Fatalf("follow-up merge: %v", err)
	}
	if got := followUp.MergedIDs; len(got) != 1 || got[0] != "n1" {
		t.Errorf("follow-up MergedIDs = %v, want [n1]", got)
	}
}

// Scenario D — hypothetical confirmation: false is absorbing.
func TestScenarioDHypotheticalConfirmation(t *testing.T) {
	store := New()
	ctx := context.Background()

	steps := []bool{true, false, true}
	for _, hyp := range steps {
		if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", hyp, "a")}}); err != nil {
			t.Fatalf("merge hypothetical=%v: %v", hyp, err)
		}
	}

	graph, err := store.GetMainGraph(ctx)
	if err != nil {
		t.Fatalf("GetMainGraph: %v", err)
	}
	if len(graph.Nodes) != 1 || graph.Nodes[0].Hypothetical {
		t.Fatalf("node = %+v, want hypothetical=false", graph.Nodes)
	}
}

func mustMergeEdge(t *testing.T, store *Store, source, target string) {
	t.Helper()
	edge := ProposedEdge{
		Key:        EdgeKey{Source: source, Target: target, EdgeType: domain.EdgeTypeDependsOn},
		Provenance: []domain.Provenance{prov("a", "t")},
	}
	if _, err := store.MergeHypothesis(context.Background(), HypothesisDelta{Edges: []ProposedEdge{edge}}); err != nil {
		t.Fatalf("merge edge %s->%s: %v", source, target, err)
	}
}

// Scenario E — tombstone masking with cascading edges.
func TestScenarioETombstoneMaskingCascadesEdges(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateIncident(ctx, "inc-1"); err != nil {
		t.Fatalf("CreateIncident: %v", err)
	}

	for _, id := range []string{"n1", "n2", "n3"} {
		if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode(id, true, "a")}}); err != nil {
			t.Fatalf("merge node %s: %v", id, err)
		}
	}
	mustMergeEdge(t, store, "n1", "n2")
	mustMergeEdge(t, store, "n2", "n3")

	if _, err := store.MergeNodeTombstones(ctx, "inc-1", []string{"n1"}); err != nil {
		t.Fatalf("MergeNodeTombstones: %v", err)
	}

	live, err := store.GetLiveView(ctx, "inc-1")
	if err != nil {
		t.Fatalf("GetLiveView: %v", err)
	}
	if len(live.Nodes) != 2 {
		t.Errorf("live view Nodes = %v, want 2 (n2, n3)", live.Nodes)
	}
	if len(live.Edges) != 1 || live.Edges[0].Source != "n2" || live.Edges[0].Target != "n3" {
		t.Errorf("live view Edges = %v, want [n2->n3]", live.Edges)
	}

	main, err := store.GetMainGraph(ctx)
	if err != nil {
		t.Fatalf("GetMainGraph: %v", err)
	}
	if len(main.Nodes) != 3 || len(main.Edges) != 2 {
		t.Errorf("main graph = %d nodes, %d edges, want 3, 2", len(main.Nodes), len(main.Edges))
	}
}

// Scenario F — incident isolation.
func TestScenarioFIncidentIsolation(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateIncident(ctx, "inc-1"); err != nil {
		t.Fatalf("CreateIncident inc-1: %v", err)
	}
	if _, err := store.CreateIncident(ctx, "inc-2"); err != nil {
		t.Fatalf("CreateIncident inc-2: %v", err)
	}
	if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, err := store.MergeNodeTombstones(ctx, "inc-1", []string{"n1"}); err != nil {
		t.Fatalf("MergeNodeTombstones: %v", err)
	}

	view1, err := store.GetLiveView(ctx, "inc-1")
	if err != nil {
		t.Fatalf("GetLiveView inc-1: %v", err)
	}
	if len(view1.Nodes) != 0 {
		t.Errorf("inc-1 Nodes = %v, want empty", view1.Nodes)
	}

	view2, err := store.GetLiveView(ctx, "inc-2")
	if err != nil {
		t.Fatalf("GetLiveView inc-2: %v", err)
	}
	if len(view2.Nodes) != 1 || view2.Nodes[0].ID != "n1" {
		t.Errorf("inc-2 Nodes = %v, want [n1]", view2.Nodes)
	}
}

// Invariant 7 — conflicting merges leave the map entry untouched.
func TestConflictLeavesExistingEntryUnchanged(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}}); err != nil {
		t.Fatalf("seed merge: %v", err)
	}

	before, err := store.GetMainGraph(ctx)
	if err != nil {
		t.Fatalf("GetMainGraph: %v", err)
	}

	conflicting := ProposedNode{ID: "n1", NodeType: domain.NodeTypeInfrastructure, Label: "svc", Provenance: []domain.Provenance{prov("b", "t")}}
	if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{conflicting}}); err != nil {
		t.Fatalf("conflicting merge: %v", err)
	}

	after, err := store.GetMainGraph(ctx)
	if err != nil {
		t.Fatalf("GetMainGraph: %v", err)
	}
	if !reflect.DeepEqual(before.Nodes[0], after.Nodes[0]) {
		t.Errorf("node changed across conflicting merge: before=%+v after=%+v", before.Nodes[0], after.Nodes[0])
	}
}

// Invariant 8 — non-conflicting entries in the same delta still apply.
func TestNonConflictingEntriesApplyAlongsideConflict(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}}); err != nil {
		t.Fatalf("seed merge: %v", err)
	}

	conflicting := ProposedNode{ID: "n1", NodeType: domain.NodeTypeInfrastructure, Label: "svc", Provenance: []domain.Provenance{prov("b", "t")}}
	delta := HypothesisDelta{Nodes: []ProposedNode{conflicting, svcNode("n2", true, "c")}}

	result, err := store.MergeHypothesis(ctx, delta)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("Conflicts = %v, want 1 entry", result.Conflicts)
	}
	if got := result.CreatedIDs; len(got) != 1 || got[0] != "n2" {
		t.Errorf("CreatedIDs = %v, want [n2]", got)
	}
}

// Invariant 10/11 — tombstone classification across node and edge paths.
func TestTombstoneClassification(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateIncident(ctx, "inc-1"); err != nil {
		t.Fatalf("CreateIncident: %v", err)
	}
	if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("n1", true, "a")}}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	result, err := store.MergeNodeTombstones(ctx, "inc-1", []string{"n1", "ghost"})
	if err != nil {
		t.Fatalf("MergeNodeTombstones: %v", err)
	}
	if got := result.AppliedIDs; len(got) != 1 || got[0] != "n1" {
		t.Errorf("AppliedIDs = %v, want [n1]", got)
	}
	if got := result.UnmatchedIDs; len(got) != 1 || got[0] != "ghost" {
		t.Errorf("UnmatchedIDs = %v, want [ghost]", got)
	}

	replay, err := store.MergeNodeTombstones(ctx, "inc-1", []string{"n1"})
	if err != nil {
		t.Fatalf("MergeNodeTombstones replay: %v", err)
	}
	if got := replay.AlreadyTombstonedIDs; len(got) != 1 || got[0] != "n1" {
		t.Errorf("AlreadyTombstonedIDs = %v, want [n1]", got)
	}

	// A later matching insert is still masked by the forward-declared tombstone.
	if _, err := store.MergeHypothesis(ctx, HypothesisDelta{Nodes: []ProposedNode{svcNode("ghost", true, "a")}}); err != nil {
		t.Fatalf("merge ghost: %v", err)
	}
	view, err := store.GetLiveView(ctx, "inc-1")
	if err != nil {
		t.Fatalf("GetLiveView: %v", err)
	}
	if len(view.Nodes) != 0 {
		t.Errorf("live view Nodes = %v, want empty (both n1 and ghost tombstoned)", view.Nodes)
	}
}

func TestOperationsFailForUnknownIncident(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.GetIncidentContext(ctx, "missing"); err == nil {
		t.Error("GetIncidentContext: expected error")
	}
	if _, err := store.GetLiveView(ctx, "missing"); err == nil {
		t.Error("GetLiveView: expected error")
	}
	if _, err := store.GetTombstones(ctx, "missing"); err == nil {
		t.Error("GetTombstones: expected error")
	}
	if _, err := store.MergeNodeTombstones(ctx, "missing", []string{"n1"}); err == nil {
		t.Error("MergeNodeTombstones: expected error")
	}
	if _, err := store.MergeEdgeTombstones(ctx, "missing", nil); err == nil {
		t.Error("MergeEdgeTombstones: expected error")
	}
}

func TestCreateIncidentIsIdempotent(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateIncident(ctx, "inc-1")
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}
	created, err = store.CreateIncident(ctx, "inc-1")
	if err != nil || created {
		t.Fatalf("second create: created=%v err=%v, want false/nil", created, err)
	}
}
