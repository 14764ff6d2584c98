package api

import (
	"net/http"

	"github.com/vitaminx-2025/vitaminx-website/internal/service"
)

// CreateNode handles POST /api/nodes.
//
//	@Summary		Create a graph node
//	@Tags			graph
//	@Accept			json
//	@Produce		json
//	@Param			body	body		NodeRequest	true	"Node to create"
//	@Success		201		{object}	models.Node
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/nodes [post]
func (h *Handler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req NodeRequest
	if !decodeJSON(w, r, h.bodyLimit, &req) {
		return
	}
	node, err := h.svc.CreateNode(r.Context(), service.NodeInput{
		Text: req.Text,
		X:    req.X,
		Y:    req.Y,
		Kind: req.Kind,
	})
	if err != nil {
		writeError(w, r, "create node", err)
		return
	}
	writeJSON(w, http.StatusCreated, node)
}

// ListNodes handles GET /api/nodes.
//
//	@Summary		List all graph nodes
//	@Tags			graph
//	@Produce		json
//	@Success		200	{array}	models.Node
//	@Security		BearerAuth
//	@Router			/nodes [get]
func (h *Handler) ListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.ListNodes(r.Context())
	if err != nil {
		writeError(w, r, "list nodes", err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

// DeleteNode handles DELETE /api/nodes/{id}. Edges touching the node go with it.
func (h *Handler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteNode(r.Context(), id); err != nil {
		writeError(w, r, "delete node", err)
		return
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// CreateEdge handles POST /api/edges.
//
//	@Summary		Connect two existing nodes
//	@Tags			graph
//	@Accept			json
//	@Produce		json
//	@Param			body	body		EdgeRequest	true	"Edge to create"
//	@Success		201		{object}	models.Edge
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/edges [post]
func (h *Handler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req EdgeRequest
	if !decodeJSON(w, r, h.bodyLimit, &req) {
		return
	}
	edge, err := h.svc.CreateEdge(r.Context(), service.EdgeInput{
		SourceID: req.SourceID,
		TargetID: req.TargetID,
		Weight:   req.Weight,
	})
	if err != nil {
		writeError(w, r, "create edge", err)
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}

// ListEdges handles GET /api/edges.
//
//	@Summary		List all graph edges
//	@Tags			graph
//	@Produce		json
//	@Success		200	{array}	models.Edge
//	@Security		BearerAuth
//	@Router			/edges [get]
func (h *Handler) ListEdges(w http.ResponseWriter, r *http.Request) {
	edges, err := h.svc.ListEdges(r.Context())
	if err != nil {
		writeError(w, r, "list edges", err)
		return
	}
	writeJSON(w, http.StatusOK, edges)
}

// DeleteEdge handles DELETE /api/edges/{id}.
func (h *Handler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteEdge(r.Context(), id); err != nil {
		writeError(w, r, "delete edge", err)
		return
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
