package api

import "fmt"

// ValidationError reports a single rejected field in an inbound
// request. The Go equivalent of the original implementation's
// ValidationError enum: one concrete error per rule, named after the
// rule it violates rather than a generic "bad request" catch-all.
type ValidationError struct {
	Rule string
	Info string
}

func (e *ValidationError) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("%s: %s", e.Rule, e.Info)
	}
	return e.Rule
}

func validationErr(rule string) error {
	return &ValidationError{Rule: rule}
}

func validationErrf(rule, format string, args ...any) error {
	return &ValidationError{Rule: rule, Info: fmt.Sprintf(format, args...)}
}

// Rule names, exported so callers can match a specific rejection with
// errors.As plus a Rule comparison instead of parsing Error() strings.
const (
	RuleEmptyNodeID            = "empty_node_id"
	RuleUnspecifiedNodeType    = "unspecified_node_type"
	RuleEmptyNodeLabel         = "empty_node_label"
	RuleEmptyEdgeSource        = "empty_edge_source"
	RuleEmptyEdgeTarget        = "empty_edge_target"
	RuleSelfLoop               = "self_loop"
	RuleUnspecifiedEdgeType    = "unspecified_edge_type"
	RuleMissingProvenance      = "missing_provenance"
	RuleEmptyProvenanceSource  = "empty_provenance_source"
	RuleEmptyProvenanceTrigger = "empty_provenance_trigger"
	RuleEmptyIncidentID        = "empty_incident_id"
	RuleEmptyTombstoneSet      = "empty_tombstone_set"
)

func validateProvenance(p ProvenanceJSON) error {
	if p.Source == "" {
		return validationErr(RuleEmptyProvenanceSource)
	}
	if p.Trigger == "" {
		return validationErr(RuleEmptyProvenanceTrigger)
	}
	return nil
}

func validateProvenanceList(list []ProvenanceJSON) error {
	if len(list) == 0 {
		return validationErr(RuleMissingProvenance)
	}
	for _, p := range list {
		if err := validateProvenance(p); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n NodeJSON) error {
	if n.ID == "" {
		return validationErr(RuleEmptyNodeID)
	}
	if n.Type == "" || n.Type == "UNSPECIFIED" {
		return validationErr(RuleUnspecifiedNodeType)
	}
	if n.Label == "" {
		return validationErr(RuleEmptyNodeLabel)
	}
	return validateProvenanceList(n.Provenance)
}

func validateEdge(e EdgeJSON) error {
	if e.Source == "" {
		return validationErr(RuleEmptyEdgeSource)
	}
	if e.Target == "" {
		return validationErr(RuleEmptyEdgeTarget)
	}
	if e.Source == e.Target {
		return validationErrf(RuleSelfLoop, "source == target: %s", e.Source)
	}
	if e.Type == "" || e.Type == "UNSPECIFIED" {
		return validationErr(RuleUnspecifiedEdgeType)
	}
	return validateProvenanceList(e.Provenance)
}

func validateHypothesisDelta(delta HypothesisDeltaJSON) error {
	for _, n := range delta.Nodes {
		if err := validateNode(n); err != nil {
			return err
		}
	}
	for _, e := range delta.Edges {
		if err := validateEdge(e); err != nil {
			return err
		}
	}
	return nil
}

func validateIncidentID(id string) error {
	if id == "" {
		return validationErr(RuleEmptyIncidentID)
	}
	return nil
}

func validateNodeTombstoneRequest(req NodeTombstoneRequestJSON) error {
	if err := validateIncidentID(req.IncidentID); err != nil {
		return err
	}
	if len(req.NodeIDs) == 0 {
		return validationErr(RuleEmptyTombstoneSet)
	}
	return validateProvenance(req.Provenance)
}

func validateEdgeTombstoneRequest(req EdgeTombstoneRequestJSON) error {
	if err := validateIncidentID(req.IncidentID); err != nil {
		return err
	}
	if len(req.Entries) == 0 {
		return validationErr(RuleEmptyTombstoneSet)
	}
	if err := validateProvenance(req.Provenance); err != nil {
		return err
	}
	for _, entry := range req.Entries {
		if entry.Source == "" {
			return validationErr(RuleEmptyEdgeSource)
		}
		if entry.Target == "" {
			return validationErr(RuleEmptyEdgeTarget)
		}
		if entry.Type == "" || entry.Type == "UNSPECIFIED" {
			return validationErr(RuleUnspecifiedEdgeType)
		}
	}
	return nil
}
