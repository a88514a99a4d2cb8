package supplychain

import (
	"context"

	"graphview-service/internal/model"

	"go.uber.org/zap"
)

// wireProduct is the backend's product shape. List responses carry
// TagsArray, create responses carry Tags; both are accepted.
type wireProduct struct {
	ID               string             `json:"id"`
	Num              FlexInt            `json:"ID"`
	Name             string             `json:"Name"`
	Category         string             `json:"Category"`
	Price            FlexFloat          `json:"Price"`
	TagsArray        []string           `json:"TagsArray"`
	Tags             []string           `json:"Tags"`
	ExpirationDate   WireDate           `json:"Expiration_date"`
	Voided           FlexBool           `json:"Voided"`
	RelationshipType string             `json:"relationshipType"`
	Provider         *wireProvider      `json:"provider"`
	Branches         []wireBranchOffice `json:"branchOffices"`
}

func (w wireProduct) toModel() model.Product {
	p := model.Product{
		ID:               w.ID,
		Num:              int(w.Num),
		Name:             w.Name,
		Category:         w.Category,
		Price:            float64(w.Price),
		Tags:             w.TagsArray,
		ExpirationDate:   w.ExpirationDate.String(),
		Voided:           bool(w.Voided),
		RelationshipType: w.RelationshipType,
	}
	if p.Tags == nil {
		p.Tags = w.Tags
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if w.Provider != nil {
		provider := w.Provider.toModel()
		p.Provider = &provider
	}
	for _, b := range w.Branches {
		p.Branches = append(p.Branches, b.toModel())
	}
	return p
}

type productEnvelope struct {
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Products   []wireProduct `json:"products"`
}

// ProductPage is one page of products plus paging metadata.
type ProductPage struct {
	Items      []model.Product
	Page       int
	TotalPages int
}

// ListProducts fetches one page of products with their owning provider
// and stocking branch offices.
func (c *Client) ListProducts(ctx context.Context, page int) (*ProductPage, error) {
	var env productEnvelope
	if err := c.getJSON(ctx, "/product", c.pageQuery(page), &env); err != nil {
		c.logger.Error("product list failed", zap.Int("page", page), zap.Error(err))
		return nil, c.fetchErr("list products", "could not load products", err)
	}
	items := make([]model.Product, 0, len(env.Products))
	for _, w := range env.Products {
		items = append(items, w.toModel())
	}
	return &ProductPage{Items: items, Page: pageOr(env.Page, page), TotalPages: totalOr(env.TotalPages)}, nil
}

// CreateProductRequest is the validated creation payload collected by
// the product dialog.
type CreateProductRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	Tags           []string `json:"tags"`
	ExpirationDate string   `json:"expiration_date"`
}

// CreateProduct posts a new product; the returned entity carries the
// backend-assigned identity.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	var w wireProduct
	if err := c.postJSON(ctx, "/product", req, &w); err != nil {
		c.logger.Error("product create failed", zap.String("name", req.Name), zap.Error(err))
		return nil, c.createErr("create product", "could not create product", err)
	}
	p := w.toModel()
	return &p, nil
}

func pageOr(got, requested int) int {
	if got > 0 {
		return got
	}
	return requested
}

func totalOr(got int) int {
	if got > 0 {
		return got
	}
	return 1
}
