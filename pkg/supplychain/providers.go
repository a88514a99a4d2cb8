package supplychain

import (
	"context"
	"net/url"

	"graphview-service/internal/model"

	"go.uber.org/zap"
)

type wireProvider struct {
	ID               string             `json:"id"`
	Num              FlexInt            `json:"ID"`
	Name             string             `json:"Name"`
	Location         string             `json:"Location"`
	Voided           FlexBool           `json:"Voided"`
	RelationshipType string             `json:"relationshipType"`
	Branches         []wireBranchOffice `json:"branchOffices"`
	Routes           []wireRoute        `json:"routes"`
	BuyOrders        []wireBuyOrder     `json:"buyOrders"`
}

func (w wireProvider) toModel() model.Provider {
	p := model.Provider{
		ID:               w.ID,
		Num:              int(w.Num),
		Name:             w.Name,
		Location:         w.Location,
		Voided:           bool(w.Voided),
		RelationshipType: w.RelationshipType,
	}
	for _, b := range w.Branches {
		p.Branches = append(p.Branches, b.toModel())
	}
	for _, r := range w.Routes {
		p.Routes = append(p.Routes, r.toModel())
	}
	for _, o := range w.BuyOrders {
		p.BuyOrders = append(p.BuyOrders, o.toModel())
	}
	return p
}

type providerEnvelope struct {
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
	Providers  []wireProvider `json:"providers"`
}

// ProviderPage is one page of providers plus paging metadata.
type ProviderPage struct {
	Items      []model.Provider
	Page       int
	TotalPages int
}

// ListProviders fetches one page of providers with their branch
// offices, routes and purchase orders.
func (c *Client) ListProviders(ctx context.Context, page int) (*ProviderPage, error) {
	var env providerEnvelope
	if err := c.getJSON(ctx, "/providers", c.pageQuery(page), &env); err != nil {
		c.logger.Error("provider list failed", zap.Int("page", page), zap.Error(err))
		return nil, c.fetchErr("list providers", "could not load providers", err)
	}
	items := make([]model.Provider, 0, len(env.Providers))
	for _, w := range env.Providers {
		items = append(items, w.toModel())
	}
	return &ProviderPage{Items: items, Page: pageOr(env.Page, page), TotalPages: totalOr(env.TotalPages)}, nil
}

// SearchProviders looks providers up by name. The result is a single
// page.
func (c *Client) SearchProviders(ctx context.Context, name string) (*ProviderPage, error) {
	var env providerEnvelope
	if err := c.getJSON(ctx, "/providers/search/"+url.PathEscape(name), nil, &env); err != nil {
		c.logger.Error("provider search failed", zap.String("name", name), zap.Error(err))
		return nil, c.fetchErr("search providers", "provider not found", err)
	}
	items := make([]model.Provider, 0, len(env.Providers))
	for _, w := range env.Providers {
		items = append(items, w.toModel())
	}
	return &ProviderPage{Items: items, Page: 1, TotalPages: totalOr(env.TotalPages)}, nil
}

// CreateProviderRequest is the validated creation payload collected by
// the provider dialog.
type CreateProviderRequest struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// CreateProvider posts a new provider.
func (c *Client) CreateProvider(ctx context.Context, req CreateProviderRequest) (*model.Provider, error) {
	var w wireProvider
	if err := c.postJSON(ctx, "/providers", req, &w); err != nil {
		c.logger.Error("provider create failed", zap.String("name", req.Name), zap.Error(err))
		return nil, c.createErr("create provider", "could not create provider", err)
	}
	p := w.toModel()
	return &p, nil
}
