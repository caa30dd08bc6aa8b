package domain

import "testing"

func TestNodeTypeDisplayNames(t *testing.T) {
	cases := map[NodeType]string{
		NodeTypeService:        "SERVICE",
		NodeTypeDependency:     "DEPENDENCY",
		NodeTypeInfrastructure: "INFRASTRUCTURE",
		NodeTypeMechanism:      "MECHANISM",
		NodeTypeUnspecified:    "",
	}
	for nt, want := range cases {
		if got := nt.String(); got != want {
			t.Errorf("NodeType(%d).String() = %q, want %q", nt, got, want)
		}
	}
}

func TestNodeTypeValid(t *testing.T) {
	if NodeTypeUnspecified.Valid() {
		t.Error("Unspecified must not be valid")
	}
	if !NodeTypeService.Valid() {
		t.Error("Service must be valid")
	}
	if NodeType(99).Valid() {
		t.Error("out-of-range code must not be valid")
	}
}

func TestParseNodeType(t *testing.T) {
	if _, ok := ParseNodeType(0); ok {
		t.Error("code 0 (Unspecified) must fail to parse")
	}
	got, ok := ParseNodeType(1)
	if !ok || got != NodeTypeService {
		t.Errorf("code 1 should parse to Service, got %v ok=%v", got, ok)
	}
}

func TestEdgeTypeDisplayNames(t *testing.T) {
	cases := map[EdgeType]string{
		EdgeTypeDependsOn:    "DEPENDS_ON",
		EdgeTypePropagatesTo: "PROPAGATES_TO",
		EdgeTypeManifestsAs:  "MANIFESTS_AS",
		EdgeTypeUnspecified:  "",
	}
	for et, want := range cases {
		if got := et.String(); got != want {
			t.Errorf("EdgeType(%d).String() = %q, want %q", et, got, want)
		}
	}
}

func TestParseEdgeType(t *testing.T) {
	if _, ok := ParseEdgeType(0); ok {
		t.Error("code 0 (Unspecified) must fail to parse")
	}
	got, ok := ParseEdgeType(2)
	if !ok || got != EdgeTypePropagatesTo {
		t.Errorf("code 2 should parse to PropagatesTo, got %v ok=%v", got, ok)
	}
}
