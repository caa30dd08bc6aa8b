package domain

import "testing"

func TestProvenanceIdentityIgnoresTimestamp(t *testing.T) {
	a := NewProvenance("agent-1", "alert").WithTimestamp(100, 0)
	b := NewProvenance("agent-1", "alert").WithTimestamp(200, 0)

	if !a.SameIdentity(b) {
		t.Fatalf("expected same identity, got a=%+v b=%+v", a, b)
	}
}

func TestProvenanceDifferentSourceNotSameIdentity(t *testing.T) {
	a := NewProvenance("agent-1", "alert")
	b := NewProvenance("agent-2", "alert")
	if a.SameIdentity(b) {
		t.Fatal("expected different identity for different source")
	}
}

func TestProvenanceDifferentTriggerNotSameIdentity(t *testing.T) {
	a := NewProvenance("agent-1", "alert")
	b := NewProvenance("agent-1", "log-scan")
	if a.SameIdentity(b) {
		t.Fatal("expected different identity for different trigger")
	}
}

func TestProvenanceOrderingIsDeterministic(t *testing.T) {
	a := NewProvenance("a", "x")
	b := NewProvenance("a", "y")
	c := NewProvenance("b", "x")

	if !a.Less(b) {
		t.Fatal("same source, trigger x should be less than trigger y")
	}
	if !b.Less(c) {
		t.Fatal("source a should be less than source b")
	}
}
