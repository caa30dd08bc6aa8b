package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/weftdb/weftgraph/pkg/graphstore"
)

// handleMergeHypothesis implements POST /v1/hypotheses.
func (s *Server) handleMergeHypothesis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("POST required"))
		return
	}

	var body HypothesisDeltaJSON
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateHypothesisDelta(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	delta, err := body.toDelta()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.store.MergeHypothesis(r.Context(), delta)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, mergeResultToJSON(result))
}

// handleGetMainGraph implements GET /v1/graph.
func (s *Server) handleGetMainGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("GET required"))
		return
	}

	graph, err := s.store.GetMainGraph(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, causalGraphToJSON(graph))
}

// createIncidentRequest is the body of POST /v1/incidents.
type createIncidentRequest struct {
	IncidentID string `json:"incident_id"`
}

// handleCreateIncident implements POST /v1/incidents.
func (s *Server) handleCreateIncident(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("POST required"))
		return
	}

	var body createIncidentRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateIncidentID(body.IncidentID); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.store.CreateIncident(r.Context(), body.IncidentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{"incident_id": body.IncidentID, "created": created})
}

// handleIncidentSubroute dispatches the /v1/incidents/{id}[/...] family:
//
//	GET    /v1/incidents/{id}              - incident context (tombstones + created_at)
//	GET    /v1/incidents/{id}/view          - live view
//	GET    /v1/incidents/{id}/tombstones    - tombstone sets alone
//	POST   /v1/incidents/{id}/tombstones/nodes
//	POST   /v1/incidents/{id}/tombstones/edges
func (s *Server) handleIncidentSubroute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/incidents/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, errors.New("incident id required"))
		return
	}
	incidentID := parts[0]
	remaining := parts[1:]

	switch {
	case len(remaining) == 0:
		s.handleGetIncidentContext(w, r, incidentID)
	case len(remaining) == 1 && remaining[0] == "view":
		s.handleGetLiveView(w, r, incidentID)
	case len(remaining) == 1 && remaining[0] == "tombstones":
		s.handleGetTombstones(w, r, incidentID)
	case len(remaining) == 2 && remaining[0] == "tombstones" && remaining[1] == "nodes":
		s.handleMergeNodeTombstones(w, r, incidentID)
	case len(remaining) == 2 && remaining[0] == "tombstones" && remaining[1] == "edges":
		s.handleMergeEdgeTombstones(w, r, incidentID)
	default:
		writeError(w, http.StatusNotFound, errors.New("unknown incident endpoint"))
	}
}

func (s *Server) handleGetIncidentContext(w http.ResponseWriter, r *http.Request, incidentID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("GET required"))
		return
	}
	ctx, err := s.store.GetIncidentContext(r.Context(), incidentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, incidentContextToJSON(ctx))
}

func (s *Server) handleGetLiveView(w http.ResponseWriter, r *http.Request, incidentID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("GET required"))
		return
	}
	graph, err := s.store.GetLiveView(r.Context(), incidentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, causalGraphToJSON(graph))
}

func (s *Server) handleGetTombstones(w http.ResponseWriter, r *http.Request, incidentID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("GET required"))
		return
	}
	tombstones, err := s.store.GetTombstones(r.Context(), incidentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, tombstoneSetToJSON(tombstones))
}

// nodeTombstoneBody is the body of POST /v1/incidents/{id}/tombstones/nodes.
type nodeTombstoneBody struct {
	NodeIDs    []string       `json:"node_ids"`
	Provenance ProvenanceJSON `json:"provenance"`
}

func (s *Server) handleMergeNodeTombstones(w http.ResponseWriter, r *http.Request, incidentID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("POST required"))
		return
	}

	var body nodeTombstoneBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req := NodeTombstoneRequestJSON{IncidentID: incidentID, NodeIDs: body.NodeIDs, Provenance: body.Provenance}
	if err := validateNodeTombstoneRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.store.MergeNodeTombstones(r.Context(), incidentID, body.NodeIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, tombstoneResultToJSON(result))
}

// edgeTombstoneBody is the body of POST /v1/incidents/{id}/tombstones/edges.
type edgeTombstoneBody struct {
	Entries    []EdgeKeyJSON  `json:"entries"`
	Provenance ProvenanceJSON `json:"provenance"`
}

func (s *Server) handleMergeEdgeTombstones(w http.ResponseWriter, r *http.Request, incidentID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("POST required"))
		return
	}

	var body edgeTombstoneBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req := EdgeTombstoneRequestJSON{IncidentID: incidentID, Entries: body.Entries, Provenance: body.Provenance}
	if err := validateEdgeTombstoneRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	keys := make([]graphstore.EdgeKey, 0, len(body.Entries))
	for _, entry := range body.Entries {
		key, err := entry.toEdgeKey()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		keys = append(keys, key)
	}

	result, err := s.store.MergeEdgeTombstones(r.Context(), incidentID, keys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, tombstoneResultToJSON(result))
}
