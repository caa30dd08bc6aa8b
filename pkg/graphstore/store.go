// Package graphstore is the merge engine and incident-scoped view layer
// for the causal-reasoning graph: the lattice types for nodes and
// edges, the composite merge protocol, the per-incident tombstone
// store, and the view projector that composes global state with
// incident tombstones. It is the core the rest of this repository
// (pkg/api, cmd/weftgraph) builds a boundary around.
package graphstore

import (
	"context"
	"sync"
	"time"
)

// Store is a thread-safe, in-memory container for the global causal
// graph and every incident's tombstone state. All three maps (nodes,
// edges, incidents) sit behind a single sync.RWMutex: writers take an
// exclusive lease and run their whole delta or request to completion
// before releasing it, so no reader ever observes a partially-applied
// write. This mirrors the teacher's MemoryEngine, which guards its node
// and edge maps (plus their label/adjacency indexes) behind one
// sync.RWMutex rather than per-map locks, trading fine-grained
// concurrency for a store whose invariants are trivial to reason about.
//
// Store implements the eight operations in spec §6 directly as methods;
// pkg/api is the thin adapter that would sit in front of it on the
// wire. A future durable backend (e.g. Badger-based) would implement
// the same method set — see the Engine interface this mirrors in
// DESIGN.md.
type Store struct {
	mu        sync.RWMutex
	nodes     map[string]*NodeLattice
	edges     map[EdgeKey]*EdgeLattice
	incidents map[string]*Incident

	now func() time.Time
}

// New returns an empty Store ready for concurrent use.
func New() *Store {
	return &Store{
		nodes:     make(map[string]*NodeLattice),
		edges:     make(map[EdgeKey]*EdgeLattice),
		incidents: make(map[string]*Incident),
		now:       time.Now,
	}
}

// MergeHypothesis applies delta to the global graph under an exclusive
// lease. See mergeHypothesis for the per-delta algorithm and its
// atomicity/no-write-on-conflict/idempotence guarantees.
func (s *Store) MergeHypothesis(ctx context.Context, delta HypothesisDelta) (HypothesisMergeResult, error) {
	if err := ctx.Err(); err != nil {
		return HypothesisMergeResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return mergeHypothesis(s.nodes, s.edges, delta), nil
}

// CreateIncident allocates an Incident for id if one doesn't already
// exist. It is idempotent: calling it again for an existing id is a
// no-op that reports created=false.
func (s *Store) CreateIncident(ctx context.Context, id string) (created bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.incidents[id]; exists {
		return false, nil
	}
	s.incidents[id] = newIncident(s.now())
	return true, nil
}

// GetIncidentContext returns an incident's creation time and
// tombstones. Fails with IncidentNotFoundError if id is unknown.
func (s *Store) GetIncidentContext(ctx context.Context, id string) (IncidentContext, error) {
	if err := ctx.Err(); err != nil {
		return IncidentContext{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	incident, ok := s.incidents[id]
	if !ok {
		return IncidentContext{}, newIncidentNotFound(id)
	}

	return IncidentContext{
		IncidentID: id,
		CreatedAt:  incident.CreatedAt,
		Tombstones: buildTombstoneSet(incident),
	}, nil
}

// MergeNodeTombstones tombstones nodeIDs in the named incident. Fails
// with IncidentNotFoundError if the incident doesn't exist.
func (s *Store) MergeNodeTombstones(ctx context.Context, incidentID string, nodeIDs []string) (TombstoneMergeResult, error) {
	if err := ctx.Err(); err != nil {
		return TombstoneMergeResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	incident, ok := s.incidents[incidentID]
	if !ok {
		return TombstoneMergeResult{}, newIncidentNotFound(incidentID)
	}

	return mergeNodeTombstones(incident, s.nodes, nodeIDs), nil
}

// MergeEdgeTombstones is the edge-keyed mirror of MergeNodeTombstones.
func (s *Store) MergeEdgeTombstones(ctx context.Context, incidentID string, keys []EdgeKey) (TombstoneMergeResult, error) {
	if err := ctx.Err(); err != nil {
		return TombstoneMergeResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	incident, ok := s.incidents[incidentID]
	if !ok {
		return TombstoneMergeResult{}, newIncidentNotFound(incidentID)
	}

	return mergeEdgeTombstones(incident, s.edges, keys), nil
}

// GetLiveView returns the incident's projection of the global graph —
// every node not tombstoned, and every edge not tombstoned whose
// endpoints are both still live. Fails with IncidentNotFoundError if
// the incident doesn't exist.
func (s *Store) GetLiveView(ctx context.Context, incidentID string) (CausalGraph, error) {
	if err := ctx.Err(); err != nil {
		return CausalGraph{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	incident, ok := s.incidents[incidentID]
	if !ok {
		return CausalGraph{}, newIncidentNotFound(incidentID)
	}

	return buildLiveView(s.nodes, s.edges, incident), nil
}

// GetTombstones returns the incident's node and edge tombstone sets
// verbatim. Fails with IncidentNotFoundError if the incident doesn't
// exist.
func (s *Store) GetTombstones(ctx context.Context, incidentID string) (TombstoneSet, error) {
	if err := ctx.Err(); err != nil {
		return TombstoneSet{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	incident, ok := s.incidents[incidentID]
	if !ok {
		return TombstoneSet{}, newIncidentNotFound(incidentID)
	}

	return buildTombstoneSet(incident), nil
}

// GetMainGraph returns every node and edge in the global graph,
// unfiltered by any incident's tombstones.
func (s *Store) GetMainGraph(ctx context.Context) (CausalGraph, error) {
	if err := ctx.Err(); err != nil {
		return CausalGraph{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return buildMainGraph(s.nodes, s.edges), nil
}
