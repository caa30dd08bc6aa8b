package graphstore

import "time"

// Incident is a per-incident record tracking when it was created and
// which nodes/edges have been tombstoned out of its live view. Creation
// and tombstoning never mutate the global node/edge maps — an Incident
// only masks them.
type Incident struct {
	CreatedAt      time.Time
	NodeTombstones map[string]struct{}
	EdgeTombstones map[EdgeKey]struct{}
}

func newIncident(createdAt time.Time) *Incident {
	return &Incident{
		CreatedAt:      createdAt,
		NodeTombstones: make(map[string]struct{}),
		EdgeTombstones: make(map[EdgeKey]struct{}),
	}
}

// HasNodeTombstone reports whether id is tombstoned in this incident.
func (inc *Incident) HasNodeTombstone(id string) bool {
	_, ok := inc.NodeTombstones[id]
	return ok
}

// HasEdgeTombstone reports whether key is tombstoned in this incident.
func (inc *Incident) HasEdgeTombstone(key EdgeKey) bool {
	_, ok := inc.EdgeTombstones[key]
	return ok
}
