// Package domain holds the value types shared by every hypothesis
// submitted to the causal graph: attribution records and the closed
// node/edge type enums. Nothing here is mutable; the mutable lattice
// bundles that wrap these values live in pkg/graphstore.
package domain

// Provenance attributes a piece of the graph to the agent and trigger
// that proposed it.
//
// Identity is (Source, Trigger) only — Timestamp is informational and is
// deliberately excluded from equality and ordering. When two Provenance
// values with the same (Source, Trigger) meet in a set, the first one
// observed is kept, so the timestamp on a stored Provenance is always the
// earliest one seen for that identity.
type Provenance struct {
	Source           string
	Trigger          string
	TimestampSeconds int64
	TimestampNanos   int32
}

// NewProvenance builds a Provenance with no timestamp (0, 0).
func NewProvenance(source, trigger string) Provenance {
	return Provenance{Source: source, Trigger: trigger}
}

// WithTimestamp returns a copy of p stamped with the given epoch time.
func (p Provenance) WithTimestamp(seconds int64, nanos int32) Provenance {
	p.TimestampSeconds = seconds
	p.TimestampNanos = nanos
	return p
}

// Identity returns the (Source, Trigger) pair that defines equality for
// a Provenance value. Callers building a dedup index key off a
// Provenance should use this rather than comparing structs directly,
// since the zero-value struct comparison would also compare the
// timestamp fields.
func (p Provenance) Identity() (string, string) {
	return p.Source, p.Trigger
}

// SameIdentity reports whether p and other share (Source, Trigger),
// ignoring their timestamps.
func (p Provenance) SameIdentity(other Provenance) bool {
	return p.Source == other.Source && p.Trigger == other.Trigger
}

// Less orders two Provenance values lexicographically by (Source,
// Trigger), ignoring timestamp. The view projector uses it to list a
// node's or edge's provenance in a deterministic order; SetCell itself
// keeps insertion order.
func (p Provenance) Less(other Provenance) bool {
	if p.Source != other.Source {
		return p.Source < other.Source
	}
	return p.Trigger < other.Trigger
}
