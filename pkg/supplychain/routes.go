package supplychain

import (
	"context"
	"net/url"

	"graphview-service/internal/model"

	"go.uber.org/zap"
)

type wireRoute struct {
	ID               string            `json:"id"`
	Num              FlexInt           `json:"ID"`
	Name             string            `json:"Name"`
	Company          string            `json:"Company"`
	DistanceKM       FlexFloat         `json:"Distance_KM"`
	StartDate        WireDate          `json:"Start_date"`
	EndDate          WireDate          `json:"End_date"`
	ArriveDate       WireDate          `json:"Arrive_date"`
	ArriveHour       string            `json:"Arrive_hour"`
	Quantity         FlexInt           `json:"Quantity"`
	DeliveryName     string            `json:"Delivery_name"`
	Voided           FlexBool          `json:"Voided"`
	RelationshipType string            `json:"relationshipType"`
	Branch           *wireBranchOffice `json:"branchOffice"`
	Products         []wireProduct     `json:"products"`
}

func (w wireRoute) toModel() model.Route {
	r := model.Route{
		ID:               w.ID,
		Num:              int(w.Num),
		Name:             w.Name,
		Company:          w.Company,
		DistanceKM:       float64(w.DistanceKM),
		ArriveHour:       w.ArriveHour,
		Quantity:         int(w.Quantity),
		DeliveryName:     w.DeliveryName,
		Voided:           bool(w.Voided),
		RelationshipType: w.RelationshipType,
	}
	// Start/end and arrive date are alternative shapes; keep whichever
	// the backend filled, leaving the other empty rather than "N/A".
	if s := w.StartDate.String(); s != DatePlaceholder {
		r.StartDate = s
	}
	if s := w.EndDate.String(); s != DatePlaceholder {
		r.EndDate = s
	}
	if s := w.ArriveDate.String(); s != DatePlaceholder {
		r.ArriveDate = s
	}
	if w.Branch != nil {
		branch := w.Branch.toModel()
		r.Branch = &branch
	}
	for _, p := range w.Products {
		r.Products = append(r.Products, p.toModel())
	}
	return r
}

type routeEnvelope struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
	Routes     []wireRoute `json:"routes"`
}

// RoutePage is one page of routes plus paging metadata.
type RoutePage struct {
	Items      []model.Route
	Page       int
	TotalPages int
}

// ListRoutes fetches one page of delivery routes with their branch
// office and carried products.
func (c *Client) ListRoutes(ctx context.Context, page int) (*RoutePage, error) {
	var env routeEnvelope
	if err := c.getJSON(ctx, "/route", c.pageQuery(page), &env); err != nil {
		c.logger.Error("route list failed", zap.Int("page", page), zap.Error(err))
		return nil, c.fetchErr("list routes", "could not load routes", err)
	}
	items := make([]model.Route, 0, len(env.Routes))
	for _, w := range env.Routes {
		items = append(items, w.toModel())
	}
	return &RoutePage{Items: items, Page: pageOr(env.Page, page), TotalPages: totalOr(env.TotalPages)}, nil
}

// SearchRoutes looks routes up by name or company, paged like the
// list.
func (c *Client) SearchRoutes(ctx context.Context, query string, page int) (*RoutePage, error) {
	var env routeEnvelope
	if err := c.getJSON(ctx, "/route/search/"+url.PathEscape(query), c.pageQuery(page), &env); err != nil {
		c.logger.Error("route search failed", zap.String("query", query), zap.Error(err))
		return nil, c.fetchErr("search routes", "route not found", err)
	}
	items := make([]model.Route, 0, len(env.Routes))
	for _, w := range env.Routes {
		items = append(items, w.toModel())
	}
	return &RoutePage{Items: items, Page: pageOr(env.Page, page), TotalPages: totalOr(env.TotalPages)}, nil
}

// CreateRouteRequest is the validated creation payload collected by
// the route dialog. ArriveDate is YYYY-MM-DD.
type CreateRouteRequest struct {
	Quantity     int     `json:"quantity"`
	DeliveryName string  `json:"delivery_name"`
	ArriveDate   string  `json:"arrive_date"`
	ArriveHour   string  `json:"arrive_hour"`
	Company      string  `json:"company"`
	DistanceKM   float64 `json:"distance_km"`
}

// CreateRoute posts a new delivery route.
func (c *Client) CreateRoute(ctx context.Context, req CreateRouteRequest) (*model.Route, error) {
	var w wireRoute
	if err := c.postJSON(ctx, "/route", req, &w); err != nil {
		c.logger.Error("route create failed", zap.String("company", req.Company), zap.Error(err))
		return nil, c.createErr("create route", "could not create route", err)
	}
	r := w.toModel()
	return &r, nil
}
