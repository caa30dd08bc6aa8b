package lattice

import "testing"

func TestFWWCellEmptyMergeValue(t *testing.T) {
	var c FWWCell[string]
	changed := c.Merge(NewFWWCell("a"))
	if !changed {
		t.Fatal("merging a value into empty should report changed")
	}
	v, ok := c.Reveal()
	if !ok || v != "a" {
		t.Fatalf("expected revealed a, got %q ok=%v", v, ok)
	}
}

func TestFWWCellSameValueNoChange(t *testing.T) {
	c := NewFWWCell("a")
	changed := c.Merge(NewFWWCell("a"))
	if changed {
		t.Fatal("merging identical value should not report changed")
	}
	if c.IsConflict() {
		t.Fatal("identical values must not conflict")
	}
}

func TestFWWCellDifferentValueConflicts(t *testing.T) {
	c := NewFWWCell("a")
	changed := c.Merge(NewFWWCell("b"))
	if !changed {
		t.Fatal("merging a different value should report changed")
	}
	if !c.IsConflict() {
		t.Fatal("expected conflict state")
	}
	if _, ok := c.Reveal(); ok {
		t.Fatal("conflict cell must not reveal a value")
	}
}

func TestFWWCellConflictAbsorbsAnything(t *testing.T) {
	c := NewFWWCell("a")
	c.Merge(NewFWWCell("b"))
	changed := c.Merge(NewFWWCell("c"))
	if changed {
		t.Fatal("merging into an already-conflicted cell must not change it")
	}
	if !c.IsConflict() {
		t.Fatal("cell should remain conflicted")
	}
}

func TestFWWCellMergeIdempotent(t *testing.T) {
	c := NewFWWCell(7)
	snapshot := c
	if c.Merge(snapshot) {
		t.Fatal("merging a cell with itself must not change it")
	}
}

func TestFWWCellMergeCommutative(t *testing.T) {
	a1, b1 := NewFWWCell("x"), NewFWWCell("y")
	ab := a1
	ab.Merge(b1)

	a2, b2 := NewFWWCell("x"), NewFWWCell("y")
	ba := b2
	ba.Merge(a2)

	if ab.IsConflict() != ba.IsConflict() {
		t.Fatalf("commutativity broke: ab.conflict=%v ba.conflict=%v", ab.IsConflict(), ba.IsConflict())
	}
}

func TestFWWCellMergeAssociative(t *testing.T) {
	build := func(order []string) FWWCell[string] {
		var c FWWCell[string]
		for _, v := range order {
			c.Merge(NewFWWCell(v))
		}
		return c
	}

	left := build([]string{"a", "b", "c"})
	right := build([]string{"a"})
	right.Merge(build([]string{"b"}))
	right.Merge(build([]string{"c"}))

	if left.IsConflict() != right.IsConflict() {
		t.Fatalf("associativity broke: left.conflict=%v right.conflict=%v", left.IsConflict(), right.IsConflict())
	}
}
