package lattice

// BoolCell is a monotone-bool cell: merge keeps the logical AND of the
// two sides, so once false is observed the cell can never go back to
// true. The default value is true — use NewBoolCell, not the zero
// value, when allocating one fresh; the zero value of BoolCell is
// false and would invert the intended "hypothetical by default"
// semantics.
type BoolCell struct {
	value bool
}

// NewBoolCell returns a cell defaulted to true, the spec's default for
// a freshly allocated cell.
func NewBoolCell() BoolCell {
	return BoolCell{value: true}
}

// NewBoolCellWithValue returns a cell holding the given value.
func NewBoolCellWithValue(v bool) BoolCell {
	return BoolCell{value: v}
}

// Merge folds other into c and reports whether c's value changed. The
// only transition is true -> false; false stays false regardless of
// other, and true stays true if other is also true.
func (c *BoolCell) Merge(other BoolCell) bool {
	if c.value && !other.value {
		c.value = false
		return true
	}
	return false
}

// Value returns the current boolean.
func (c BoolCell) Value() bool {
	return c.value
}
