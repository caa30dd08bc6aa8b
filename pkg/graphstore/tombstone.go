package graphstore

// TombstoneMergeResult classifies each id/edge in a tombstone request
// into exactly one bucket. AppliedIDs/AlreadyTombstonedIDs/UnmatchedIDs
// use raw node ids for node tombstones and the synthetic
// "{source}->{target}:{typeCode}" identifier for edge tombstones.
type TombstoneMergeResult struct {
	AppliedIDs           []string
	AlreadyTombstonedIDs []string
	UnmatchedIDs         []string
}

// mergeNodeTombstones tombstones nodeIDs in incident, classifying each
// as already-tombstoned, applied (the node currently exists in the
// global map), or unmatched (forward-declared — kept so a future
// matching insert is masked too).
func mergeNodeTombstones(incident *Incident, nodes map[string]*NodeLattice, nodeIDs []string) TombstoneMergeResult {
	result := TombstoneMergeResult{
		AppliedIDs:           make([]string, 0),
		AlreadyTombstonedIDs: make([]string, 0),
		UnmatchedIDs:         make([]string, 0),
	}

	for _, id := range nodeIDs {
		if incident.HasNodeTombstone(id) {
			result.AlreadyTombstonedIDs = append(result.AlreadyTombstonedIDs, id)
			continue
		}
		incident.NodeTombstones[id] = struct{}{}
		if _, exists := nodes[id]; exists {
			result.AppliedIDs = append(result.AppliedIDs, id)
		} else {
			result.UnmatchedIDs = append(result.UnmatchedIDs, id)
		}
	}

	return result
}

// mergeEdgeTombstones is the edge-keyed mirror of mergeNodeTombstones.
func mergeEdgeTombstones(incident *Incident, edges map[EdgeKey]*EdgeLattice, keys []EdgeKey) TombstoneMergeResult {
	result := TombstoneMergeResult{
		AppliedIDs:           make([]string, 0),
		AlreadyTombstonedIDs: make([]string, 0),
		UnmatchedIDs:         make([]string, 0),
	}

	for _, key := range keys {
		identifier := key.Identifier()
		if incident.HasEdgeTombstone(key) {
			result.AlreadyTombstonedIDs = append(result.AlreadyTombstonedIDs, identifier)
			continue
		}
		incident.EdgeTombstones[key] = struct{}{}
		if _, exists := edges[key]; exists {
			result.AppliedIDs = append(result.AppliedIDs, identifier)
		} else {
			result.UnmatchedIDs = append(result.UnmatchedIDs, identifier)
		}
	}

	return result
}
