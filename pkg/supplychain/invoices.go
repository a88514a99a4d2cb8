package supplychain

import (
	"context"
	"net/url"

	"graphview-service/internal/model"

	"go.uber.org/zap"
)

type wireInvoice struct {
	ID               string        `json:"id"`
	Num              FlexInt       `json:"ID"`
	Name             string        `json:"Name"`
	TaxID            string        `json:"NIT"`
	Cashier          string        `json:"Cashier_main"`
	Total            FlexFloat     `json:"Total"`
	Status           string        `json:"Status"`
	Notes            string        `json:"Notes"`
	Date             WireDate      `json:"Date"`
	RelationshipType string        `json:"relationshipType"`
	Products         []wireProduct `json:"products"`
}

func (w wireInvoice) toModel() model.Invoice {
	inv := model.Invoice{
		ID:               w.ID,
		Num:              int(w.Num),
		Name:             w.Name,
		TaxID:            w.TaxID,
		Cashier:          w.Cashier,
		Total:            float64(w.Total),
		Status:           w.Status,
		Notes:            w.Notes,
		Date:             w.Date.String(),
		RelationshipType: w.RelationshipType,
	}
	for _, p := range w.Products {
		inv.Products = append(inv.Products, p.toModel())
	}
	return inv
}

type invoiceEnvelope struct {
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Invoices   []wireInvoice `json:"invoices"`
}

// InvoicePage is one page of invoices plus paging metadata.
type InvoicePage struct {
	Items      []model.Invoice
	Page       int
	TotalPages int
}

// ListInvoices fetches one page of invoices with their contained
// products.
func (c *Client) ListInvoices(ctx context.Context, page int) (*InvoicePage, error) {
	var env invoiceEnvelope
	if err := c.getJSON(ctx, "/invoices", c.pageQuery(page), &env); err != nil {
		c.logger.Error("invoice list failed", zap.Int("page", page), zap.Error(err))
		return nil, c.fetchErr("list invoices", "could not load invoices", err)
	}
	items := make([]model.Invoice, 0, len(env.Invoices))
	for _, w := range env.Invoices {
		items = append(items, w.toModel())
	}
	return &InvoicePage{Items: items, Page: pageOr(env.Page, page), TotalPages: totalOr(env.TotalPages)}, nil
}

// SearchInvoices looks invoices up by cashier, paged like the list.
func (c *Client) SearchInvoices(ctx context.Context, query string, page int) (*InvoicePage, error) {
	var env invoiceEnvelope
	if err := c.getJSON(ctx, "/invoices/search/"+url.PathEscape(query), c.pageQuery(page), &env); err != nil {
		c.logger.Error("invoice search failed", zap.String("query", query), zap.Error(err))
		return nil, c.fetchErr("search invoices", "invoice not found", err)
	}
	items := make([]model.Invoice, 0, len(env.Invoices))
	for _, w := range env.Invoices {
		items = append(items, w.toModel())
	}
	return &InvoicePage{Items: items, Page: pageOr(env.Page, page), TotalPages: totalOr(env.TotalPages)}, nil
}

// CreateInvoiceRequest is the validated creation payload collected by
// the invoice dialog. Date is YYYY-MM-DD.
type CreateInvoiceRequest struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	TaxID   string  `json:"nit"`
	Total   float64 `json:"total"`
	Cashier string  `json:"cashier_main"`
	Date    string  `json:"date"`
	Status  string  `json:"status"`
	Notes   string  `json:"notes"`
}

// CreateInvoice posts a new invoice.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*model.Invoice, error) {
	var w wireInvoice
	if err := c.postJSON(ctx, "/invoices", req, &w); err != nil {
		c.logger.Error("invoice create failed", zap.String("name", req.Name), zap.Error(err))
		return nil, c.createErr("create invoice", "could not create invoice", err)
	}
	inv := w.toModel()
	return &inv, nil
}

type wireBuyOrder struct {
	ID               string    `json:"id"`
	Num              FlexInt   `json:"ID"`
	Date             WireDate  `json:"Date"`
	Total            FlexFloat `json:"Total"`
	Status           string    `json:"Status"`
	Items            []string  `json:"Items"`
	Voided           FlexBool  `json:"Voided"`
	RelationshipType string    `json:"relationshipType"`
}

func (w wireBuyOrder) toModel() model.BuyOrder {
	o := model.BuyOrder{
		ID:               w.ID,
		Num:              int(w.Num),
		Date:             w.Date.String(),
		Total:            float64(w.Total),
		Status:           w.Status,
		Items:            w.Items,
		Voided:           bool(w.Voided),
		RelationshipType: w.RelationshipType,
	}
	if o.Items == nil {
		o.Items = []string{}
	}
	return o
}

// BuyOrderDate is the calendar triple the purchase order endpoint
// expects on creation.
type BuyOrderDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// CreateBuyOrderRequest is the validated creation payload collected by
// the purchase order dialog.
type CreateBuyOrderRequest struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Total  float64      `json:"total"`
	Items  []string     `json:"items"`
	Date   BuyOrderDate `json:"date"`
	Voided bool         `json:"voided"`
}

// CreateBuyOrder posts a new purchase order. The backend nests this
// operation under the invoices resource.
func (c *Client) CreateBuyOrder(ctx context.Context, req CreateBuyOrderRequest) (*model.BuyOrder, error) {
	var w wireBuyOrder
	if err := c.postJSON(ctx, "/invoices/buyOrder", req, &w); err != nil {
		c.logger.Error("buy order create failed", zap.Error(err))
		return nil, c.createErr("create buy order", "could not create buy order", err)
	}
	o := w.toModel()
	return &o, nil
}
