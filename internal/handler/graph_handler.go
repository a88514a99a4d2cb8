package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"graphview-service/internal/graph"
	"graphview-service/internal/middleware"
	"graphview-service/internal/model"
	"graphview-service/pkg/logger"
	"graphview-service/pkg/supplychain"
	"graphview-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GraphHandler serves the per-session graph views backed by the
// supply-chain REST API.
type GraphHandler struct {
	backend *supplychain.Client
	views   *graph.Registry
}

func NewGraphHandler(backend *supplychain.Client, views *graph.Registry) *GraphHandler {
	return &GraphHandler{backend: backend, views: views}
}

// pageResult is one fetched and flattened backend page.
type pageResult struct {
	items      []graph.Item
	page       int
	totalPages int
}

var errSearchUnsupported = errors.New("search not supported for this entity")

func (h *GraphHandler) fetchPage(ctx context.Context, entity model.EntityType, page int) (*pageResult, error) {
	switch entity {
	case model.EntityProduct:
		p, err := h.backend.ListProducts(ctx, page)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.ProductItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	case model.EntityProvider:
		p, err := h.backend.ListProviders(ctx, page)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.ProviderItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	case model.EntityBranchOffice:
		p, err := h.backend.ListBranchOffices(ctx, page)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.BranchOfficeItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	case model.EntityInvoice:
		p, err := h.backend.ListInvoices(ctx, page)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.InvoiceItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	case model.EntityRoute:
		p, err := h.backend.ListRoutes(ctx, page)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.RouteItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	}
	return nil, fmt.Errorf("no list endpoint for entity %q", entity)
}

func (h *GraphHandler) searchPage(ctx context.Context, entity model.EntityType, query string, page int) (*pageResult, error) {
	switch entity {
	case model.EntityProvider:
		p, err := h.backend.SearchProviders(ctx, query)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.ProviderItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	case model.EntityInvoice:
		p, err := h.backend.SearchInvoices(ctx, query, page)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.InvoiceItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	case model.EntityRoute:
		p, err := h.backend.SearchRoutes(ctx, query, page)
		if err != nil {
			return nil, err
		}
		return &pageResult{items: graph.RouteItems(p.Items), page: p.Page, totalPages: p.TotalPages}, nil
	}
	return nil, errSearchUnsupported
}

func entityParam(c echo.Context) (model.EntityType, bool) {
	return model.ParseEntityType(c.Param("entity"))
}

func pageParam(c echo.Context) int {
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		return p
	}
	return 1
}

// LoadPage fetches one backend page, projects it, and replaces the
// session's view for the entity. A completion superseded by a newer
// fetch is discarded and the rendered state returned untouched.
func (h *GraphHandler) LoadPage(c echo.Context) error {
	log := logger.FromContext(c)
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	page := pageParam(c)
	view := h.views.Obtain(middleware.SessionID(c), entity)
	token := view.BeginFetch()

	defer prometheus.TrackGraphFetch(string(entity))(time.Now())
	result, err := h.fetchPage(c.Request().Context(), entity, page)
	if err != nil {
		prometheus.RecordGraphFetch(string(entity), "error")
		prometheus.RecordBackendError("list_" + string(entity))
		log.Error("Page fetch failed", zap.String("entity", string(entity)), zap.Int("page", page), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": displayMessage(err)})
	}

	nodes, edges := graph.Project(result.items, graph.LayoutFor(entity))
	if !view.CompleteFetch(token, nodes, edges, result.page, result.totalPages) {
		prometheus.StaleFetchesDiscards.Inc()
		prometheus.RecordGraphFetch(string(entity), "stale")
		log.Warn("Discarding stale page fetch", zap.String("entity", string(entity)), zap.Int("page", page))
		return c.JSON(http.StatusOK, view.Snapshot())
	}

	prometheus.RecordGraphFetch(string(entity), "ok")
	log.Info("Page loaded",
		zap.String("entity", string(entity)),
		zap.Int("page", result.page),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))
	return c.JSON(http.StatusOK, view.Snapshot())
}

// Search runs a backend search for the entity and replaces the view
// with the projected results, under the same stale guard as LoadPage.
func (h *GraphHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing search query"})
	}
	page := pageParam(c)
	view := h.views.Obtain(middleware.SessionID(c), entity)
	token := view.BeginFetch()

	result, err := h.searchPage(c.Request().Context(), entity, query, page)
	if errors.Is(err, errSearchUnsupported) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err != nil {
		prometheus.RecordGraphFetch(string(entity), "error")
		prometheus.RecordBackendError("search_" + string(entity))
		log.Error("Search failed", zap.String("entity", string(entity)), zap.String("query", query), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": displayMessage(err)})
	}

	nodes, edges := graph.Project(result.items, graph.LayoutFor(entity))
	if !view.CompleteFetch(token, nodes, edges, result.page, result.totalPages) {
		prometheus.StaleFetchesDiscards.Inc()
		prometheus.RecordGraphFetch(string(entity), "stale")
		return c.JSON(http.StatusOK, view.Snapshot())
	}

	prometheus.RecordGraphFetch(string(entity), "ok")
	log.Info("Search loaded", zap.String("entity", string(entity)), zap.String("query", query), zap.Int("nodes", len(nodes)))
	return c.JSON(http.StatusOK, view.Snapshot())
}

// CreateNodeRequest is the envelope for node creation. Payload carries
// the entity-specific creation body forwarded to the backend. Type
// overrides the created entity when it differs from the view entity,
// such as a buy order created inside the branch office view.
type CreateNodeRequest struct {
	Type     string          `json:"type,omitempty"`
	Position *graph.Position `json:"position,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// CreateNode creates the entity against the backend and, once
// confirmed, appends the node to the view. A backend failure leaves
// the view untouched.
func (h *GraphHandler) CreateNode(c echo.Context) error {
	log := logger.FromContext(c)
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	view, ok := h.views.Lookup(middleware.SessionID(c), entity)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no view for entity"})
	}

	var req CreateNodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	nodeType := entity
	if req.Type != "" {
		nodeType, ok = model.ParseEntityType(req.Type)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown node type"})
		}
	}

	id, data, err := h.createEntity(c.Request().Context(), nodeType, req.Payload)
	if err != nil {
		var badPayload *payloadError
		if errors.As(err, &badPayload) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": badPayload.Error()})
		}
		prometheus.RecordBackendError("create_" + string(nodeType))
		log.Error("Node creation failed", zap.String("entity", string(nodeType)), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": displayMessage(err)})
	}

	position := graph.DefaultPosition(nodeType)
	if req.Position != nil {
		position = *req.Position
	}
	node, err := view.InsertNode(graph.Node{ID: id, Type: nodeType, Position: position, Data: data})
	if errors.Is(err, graph.ErrNodeRemoved) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "node was removed from the view"})
	}

	prometheus.RecordNodeInserted(string(nodeType))
	log.Info("Node created", zap.String("entity", string(nodeType)), zap.String("node_id", id))
	return c.JSON(http.StatusCreated, node)
}

// payloadError marks a creation payload that failed to decode, kept
// apart from backend failures so it maps to 400 instead of 502.
type payloadError struct{ err error }

func (e *payloadError) Error() string { return "invalid creation payload: " + e.err.Error() }
func (e *payloadError) Unwrap() error { return e.err }

func (h *GraphHandler) createEntity(ctx context.Context, entity model.EntityType, payload json.RawMessage) (string, any, error) {
	switch entity {
	case model.EntityProduct:
		var req supplychain.CreateProductRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", nil, &payloadError{err: err}
		}
		created, err := h.backend.CreateProduct(ctx, req)
		if err != nil {
			return "", nil, err
		}
		return created.ID, created, nil
	case model.EntityProvider:
		var req supplychain.CreateProviderRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", nil, &payloadError{err: err}
		}
		created, err := h.backend.CreateProvider(ctx, req)
		if err != nil {
			return "", nil, err
		}
		return created.ID, created, nil
	case model.EntityBranchOffice:
		var req supplychain.CreateBranchOfficeRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", nil, &payloadError{err: err}
		}
		created, err := h.backend.CreateBranchOffice(ctx, req)
		if err != nil {
			return "", nil, err
		}
		return created.ID, created, nil
	case model.EntityInvoice:
		var req supplychain.CreateInvoiceRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", nil, &payloadError{err: err}
		}
		created, err := h.backend.CreateInvoice(ctx, req)
		if err != nil {
			return "", nil, err
		}
		return created.ID, created, nil
	case model.EntityBuyOrder:
		var req supplychain.CreateBuyOrderRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", nil, &payloadError{err: err}
		}
		created, err := h.backend.CreateBuyOrder(ctx, req)
		if err != nil {
			return "", nil, err
		}
		return created.ID, created, nil
	case model.EntityRoute:
		var req supplychain.CreateRouteRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", nil, &payloadError{err: err}
		}
		created, err := h.backend.CreateRoute(ctx, req)
		if err != nil {
			return "", nil, err
		}
		return created.ID, created, nil
	}
	return "", nil, fmt.Errorf("no create endpoint for entity %q", entity)
}

// CreateEdgeRequest carries a relationship submission. Properties is
// the raw kind-specific bag, decoded against the endpoint pair.
type CreateEdgeRequest struct {
	SourceID   string          `json:"sourceId"`
	TargetID   string          `json:"targetId"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// CreateEdge creates the relationship against the backend and appends
// the confirmed edge. Both endpoints must be live in the view before
// any network call happens.
func (h *GraphHandler) CreateEdge(c echo.Context) error {
	log := logger.FromContext(c)
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	view, ok := h.views.Lookup(middleware.SessionID(c), entity)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no view for entity"})
	}

	var req CreateEdgeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	sourceType, ok := view.NodeType(req.SourceID)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "source node is not in the view"})
	}
	targetType, ok := view.NodeType(req.TargetID)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "target node is not in the view"})
	}

	props, err := model.DecodeProps(sourceType, targetType, req.Properties)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid relationship properties"})
	}

	result, err := h.backend.CreateRelationship(c.Request().Context(), supplychain.RelationshipRequest{
		SourceID:   req.SourceID,
		TargetID:   req.TargetID,
		SourceType: sourceType,
		TargetType: targetType,
		Properties: props,
	})
	if err != nil {
		prometheus.RecordBackendError("create_relationship")
		log.Error("Edge creation failed",
			zap.String("source", req.SourceID),
			zap.String("target", req.TargetID),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": displayMessage(err)})
	}

	label := result.RelationshipType
	if label == "" {
		label = string(model.FallbackKind(sourceType, targetType))
	}
	edge, err := view.InsertEdge(graph.Edge{
		ID:       graph.EdgeID(req.SourceID, req.TargetID),
		Source:   req.SourceID,
		Target:   req.TargetID,
		Label:    label,
		Animated: true,
	})
	if errors.Is(err, graph.ErrUnknownNode) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "edge endpoint is not in the view"})
	}
	if errors.Is(err, graph.ErrNodeRemoved) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "edge endpoint was removed from the view"})
	}

	prometheus.RecordEdgeInserted(label)
	log.Info("Edge created", zap.String("edge_id", edge.ID), zap.String("label", label))
	return c.JSON(http.StatusCreated, edge)
}

// ConnectRequest is a manual connection gesture between two rendered
// nodes.
type ConnectRequest struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// Connect resolves a manual connection. Pairs whose relationship
// carries required properties answer with the field schema so the
// caller can collect them; property-free pairs submit immediately.
func (h *GraphHandler) Connect(c echo.Context) error {
	log := logger.FromContext(c)
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	view, ok := h.views.Lookup(middleware.SessionID(c), entity)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no view for entity"})
	}

	var req ConnectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	sourceType, ok := view.NodeType(req.SourceID)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "source node is not in the view"})
	}
	targetType, ok := view.NodeType(req.TargetID)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "target node is not in the view"})
	}

	kind := model.FallbackKind(sourceType, targetType)
	if model.RequiresProperties(sourceType, targetType) {
		return c.JSON(http.StatusOK, echo.Map{
			"status":           "needs_properties",
			"relationshipType": kind,
			"fields":           model.PropertyFields(sourceType, targetType),
		})
	}

	result, err := h.backend.CreateRelationship(c.Request().Context(), supplychain.RelationshipRequest{
		SourceID:   req.SourceID,
		TargetID:   req.TargetID,
		SourceType: sourceType,
		TargetType: targetType,
	})
	if err != nil {
		prometheus.RecordBackendError("create_relationship")
		log.Error("Connect submission failed",
			zap.String("source", req.SourceID),
			zap.String("target", req.TargetID),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": displayMessage(err)})
	}

	label := result.RelationshipType
	if label == "" {
		label = string(kind)
	}
	edge, err := view.InsertEdge(graph.Edge{
		ID:       graph.EdgeID(req.SourceID, req.TargetID),
		Source:   req.SourceID,
		Target:   req.TargetID,
		Label:    label,
		Animated: true,
	})
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "edge endpoint left the view"})
	}

	prometheus.RecordEdgeInserted(label)
	return c.JSON(http.StatusCreated, echo.Map{"status": "connected", "edge": edge})
}

// ChangesRequest is the widget's batch of interaction changes.
type ChangesRequest struct {
	Changes []graph.Change `json:"changes"`
}

// ApplyChanges runs the widget's change batch against the view and
// returns the resulting state.
func (h *GraphHandler) ApplyChanges(c echo.Context) error {
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	view, ok := h.views.Lookup(middleware.SessionID(c), entity)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no view for entity"})
	}

	var req ChangesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	view.ApplyChanges(req.Changes)
	for _, ch := range req.Changes {
		prometheus.RecordChange(string(ch.Op))
	}
	return c.JSON(http.StatusOK, view.Snapshot())
}

// GetSelection returns the view's inspection slot, null when empty.
func (h *GraphHandler) GetSelection(c echo.Context) error {
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	view, ok := h.views.Lookup(middleware.SessionID(c), entity)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no view for entity"})
	}
	return c.JSON(http.StatusOK, echo.Map{"selection": view.CurrentSelection()})
}

// SelectRequest names the node to inspect.
type SelectRequest struct {
	NodeID string `json:"nodeId"`
}

// SetSelection puts a node into the inspection slot. Last select wins.
func (h *GraphHandler) SetSelection(c echo.Context) error {
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	view, ok := h.views.Lookup(middleware.SessionID(c), entity)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no view for entity"})
	}

	var req SelectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	selection, err := view.Select(req.NodeID)
	if errors.Is(err, graph.ErrUnknownNode) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "node is not in the view"})
	}
	return c.JSON(http.StatusOK, echo.Map{"selection": selection})
}

// ClearSelection empties the inspection slot.
func (h *GraphHandler) ClearSelection(c echo.Context) error {
	entity, ok := entityParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity type"})
	}
	view, ok := h.views.Lookup(middleware.SessionID(c), entity)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no view for entity"})
	}
	view.ClearSelection()
	return c.NoContent(http.StatusNoContent)
}

// displayMessage extracts the user-displayable message from a backend
// failure.
func displayMessage(err error) string {
	var fetchErr *supplychain.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message
	}
	var createErr *supplychain.CreateError
	if errors.As(err, &createErr) {
		return createErr.Message
	}
	return err.Error()
}
