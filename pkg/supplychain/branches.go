package supplychain

import (
	"context"

	"graphview-service/internal/model"

	"go.uber.org/zap"
)

type wireBranchOffice struct {
	ID               string         `json:"id"`
	Num              FlexInt        `json:"ID"`
	Name             string         `json:"Name"`
	Location         string         `json:"Location"`
	Income           FlexFloat      `json:"Income"`
	Voided           FlexBool       `json:"Voided"`
	RelationshipType string         `json:"relationshipType"`
	Invoices         []wireInvoice  `json:"invoices"`
	BuyOrders        []wireBuyOrder `json:"buyOrders"`
}

func (w wireBranchOffice) toModel() model.BranchOffice {
	b := model.BranchOffice{
		ID:               w.ID,
		Num:              int(w.Num),
		Name:             w.Name,
		Location:         w.Location,
		Income:           float64(w.Income),
		Voided:           bool(w.Voided),
		RelationshipType: w.RelationshipType,
	}
	for _, inv := range w.Invoices {
		b.Invoices = append(b.Invoices, inv.toModel())
	}
	for _, o := range w.BuyOrders {
		b.BuyOrders = append(b.BuyOrders, o.toModel())
	}
	return b
}

type branchEnvelope struct {
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
	Branches   []wireBranchOffice `json:"branchOffices"`
}

// BranchOfficePage is one page of branch offices plus paging metadata.
type BranchOfficePage struct {
	Items      []model.BranchOffice
	Page       int
	TotalPages int
}

// ListBranchOffices fetches one page of branch offices with their
// nested invoices and purchase orders.
func (c *Client) ListBranchOffices(ctx context.Context, page int) (*BranchOfficePage, error) {
	var env branchEnvelope
	if err := c.getJSON(ctx, "/branchoffice", c.pageQuery(page), &env); err != nil {
		c.logger.Error("branch office list failed", zap.Int("page", page), zap.Error(err))
		return nil, c.fetchErr("list branch offices", "could not load branch offices", err)
	}
	items := make([]model.BranchOffice, 0, len(env.Branches))
	for _, w := range env.Branches {
		items = append(items, w.toModel())
	}
	return &BranchOfficePage{Items: items, Page: pageOr(env.Page, page), TotalPages: totalOr(env.TotalPages)}, nil
}

// CreateBranchOfficeRequest is the validated creation payload
// collected by the branch office dialog.
type CreateBranchOfficeRequest struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Income   float64 `json:"income"`
}

// CreateBranchOffice posts a new branch office.
func (c *Client) CreateBranchOffice(ctx context.Context, req CreateBranchOfficeRequest) (*model.BranchOffice, error) {
	var w wireBranchOffice
	if err := c.postJSON(ctx, "/branchoffice", req, &w); err != nil {
		c.logger.Error("branch office create failed", zap.String("name", req.Name), zap.Error(err))
		return nil, c.createErr("create branch office", "could not create branch office", err)
	}
	b := w.toModel()
	return &b, nil
}
