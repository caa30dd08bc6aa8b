package lattice

// Identified is implemented by value types whose equality for set
// membership purposes is narrower than their full field set — e.g.
// domain.Provenance, whose identity is (source, trigger) but which
// also carries an informational timestamp.
type Identified interface {
	// Identity returns the pair of strings that define this value's
	// identity for deduplication purposes.
	Identity() (string, string)
}

// SetCell is an append-only set-union cell over T, deduplicated by
// T.Identity() rather than full struct equality. On a duplicate
// insert, the existing element is retained — first-write-wins on any
// field excluded from identity (e.g. a Provenance's timestamp).
//
// Iteration order (Values) is insertion order, which is also the
// order in which identities were first observed.
//
// The zero value of SetCell[T] is an empty cell ready to use.
type SetCell[T Identified] struct {
	order []T
	index map[[2]string]struct{}
}

// NewSetCellFrom builds a SetCell from an initial slice, applying the
// same first-write-wins dedup rule as repeated Insert calls.
func NewSetCellFrom[T Identified](values []T) SetCell[T] {
	var c SetCell[T]
	for _, v := range values {
		c.Insert(v)
	}
	return c
}

// Insert adds v to the set if no element with the same identity is
// already present, and reports whether the set changed.
func (c *SetCell[T]) Insert(v T) bool {
	if c.index == nil {
		c.index = make(map[[2]string]struct{})
	}
	key := identityKey(v)
	if _, exists := c.index[key]; exists {
		return false
	}
	c.index[key] = struct{}{}
	c.order = append(c.order, v)
	return true
}

// Merge folds other's elements into c in insertion order and reports
// whether any element was added.
func (c *SetCell[T]) Merge(other SetCell[T]) bool {
	changed := false
	for _, v := range other.order {
		if c.Insert(v) {
			changed = true
		}
	}
	return changed
}

// Values returns a defensive copy of the set's elements in insertion
// order.
func (c SetCell[T]) Values() []T {
	out := make([]T, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of distinct identities held.
func (c SetCell[T]) Len() int {
	return len(c.order)
}

func identityKey[T Identified](v T) [2]string {
	a, b := v.Identity()
	return [2]string{a, b}
}
