package supplychain

import (
	"context"

	"graphview-service/internal/model"

	"go.uber.org/zap"
)

// DistributionRow pairs a badly supplied branch office with the
// provider and route responsible for it.
type DistributionRow struct {
	BranchOffice model.BranchOffice `json:"branchOffice"`
	Provider     model.Provider     `json:"provider"`
	Route        model.Route        `json:"route"`
}

type wireDistributionRow struct {
	BranchOffice wireBranchOffice `json:"branchOffice"`
	Provider     wireProvider     `json:"provider"`
	Route        wireRoute        `json:"route"`
}

// NeedsDistribution reports branch offices whose supply lines need
// rebalancing.
func (c *Client) NeedsDistribution(ctx context.Context) ([]DistributionRow, error) {
	var raw []wireDistributionRow
	if err := c.getJSON(ctx, "/branchoffice/needs-distribution", nil, &raw); err != nil {
		c.logger.Error("needs-distribution report failed", zap.Error(err))
		return nil, c.fetchErr("needs distribution", "could not load distribution report", err)
	}
	rows := make([]DistributionRow, 0, len(raw))
	for _, w := range raw {
		rows = append(rows, DistributionRow{
			BranchOffice: w.BranchOffice.toModel(),
			Provider:     w.Provider.toModel(),
			Route:        w.Route.toModel(),
		})
	}
	return rows, nil
}

// TopSales reports the highest earning branch offices.
func (c *Client) TopSales(ctx context.Context) ([]model.BranchOffice, error) {
	var raw []wireBranchOffice
	if err := c.getJSON(ctx, "/branchoffice/top-sales", nil, &raw); err != nil {
		c.logger.Error("top-sales report failed", zap.Error(err))
		return nil, c.fetchErr("top sales", "could not load top sales", err)
	}
	out := make([]model.BranchOffice, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

// MostLoadedRoutes reports the routes carrying the most products.
func (c *Client) MostLoadedRoutes(ctx context.Context) ([]model.Route, error) {
	var raw []wireRoute
	if err := c.getJSON(ctx, "/route/most-loaded", nil, &raw); err != nil {
		c.logger.Error("most-loaded report failed", zap.Error(err))
		return nil, c.fetchErr("most loaded routes", "could not load route report", err)
	}
	out := make([]model.Route, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

// LongestTimeRoute reports the single longest running route.
func (c *Client) LongestTimeRoute(ctx context.Context) (*model.Route, error) {
	var raw wireRoute
	if err := c.getJSON(ctx, "/route/longest-time", nil, &raw); err != nil {
		c.logger.Error("longest-time report failed", zap.Error(err))
		return nil, c.fetchErr("longest route", "could not load route report", err)
	}
	r := raw.toModel()
	return &r, nil
}

// TopProviders reports the providers with the most activity.
func (c *Client) TopProviders(ctx context.Context) ([]model.Provider, error) {
	var raw []wireProvider
	if err := c.getJSON(ctx, "/providers/top-providers", nil, &raw); err != nil {
		c.logger.Error("top-providers report failed", zap.Error(err))
		return nil, c.fetchErr("top providers", "could not load top providers", err)
	}
	out := make([]model.Provider, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

// MostPurchasedProducts reports the best selling products.
func (c *Client) MostPurchasedProducts(ctx context.Context) ([]model.Product, error) {
	var raw []wireProduct
	if err := c.getJSON(ctx, "/product/most-purchased", nil, &raw); err != nil {
		c.logger.Error("most-purchased report failed", zap.Error(err))
		return nil, c.fetchErr("most purchased", "could not load product report", err)
	}
	out := make([]model.Product, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}
