package graph

import "graphview-service/internal/model"

// The builders below flatten one fetched page into layout-ready items.
// Child lanes follow the page layouts in LayoutFor.

func ProductItems(products []model.Product) []Item {
	items := make([]Item, 0, len(products))
	for _, p := range products {
		item := Item{ID: p.ID, Type: model.EntityProduct, Data: p}
		if p.Provider != nil {
			item.Children = append(item.Children, Child{
				ID:    p.Provider.ID,
				Type:  model.EntityProvider,
				Lane:  0,
				Label: p.Provider.RelationshipType,
				Data:  *p.Provider,
			})
		}
		for _, b := range p.Branches {
			item.Children = append(item.Children, Child{
				ID:    b.ID,
				Type:  model.EntityBranchOffice,
				Lane:  1,
				Label: b.RelationshipType,
				Data:  b,
			})
		}
		items = append(items, item)
	}
	return items
}

func ProviderItems(providers []model.Provider) []Item {
	items := make([]Item, 0, len(providers))
	for _, p := range providers {
		item := Item{ID: p.ID, Type: model.EntityProvider, Data: p}
		for _, b := range p.Branches {
			item.Children = append(item.Children, Child{
				ID:    b.ID,
				Type:  model.EntityBranchOffice,
				Lane:  0,
				Label: b.RelationshipType,
				Data:  b,
			})
		}
		for _, r := range p.Routes {
			item.Children = append(item.Children, Child{
				ID:    r.ID,
				Type:  model.EntityRoute,
				Lane:  1,
				Label: r.RelationshipType,
				Data:  r,
			})
		}
		for _, o := range p.BuyOrders {
			item.Children = append(item.Children, Child{
				ID:    o.ID,
				Type:  model.EntityBuyOrder,
				Lane:  2,
				Label: o.RelationshipType,
				Data:  o,
			})
		}
		items = append(items, item)
	}
	return items
}

func BranchOfficeItems(branches []model.BranchOffice) []Item {
	items := make([]Item, 0, len(branches))
	for _, b := range branches {
		item := Item{ID: b.ID, Type: model.EntityBranchOffice, Data: b}
		for _, inv := range b.Invoices {
			item.Children = append(item.Children, Child{
				ID:    inv.ID,
				Type:  model.EntityInvoice,
				Lane:  0,
				Label: inv.RelationshipType,
				Data:  inv,
			})
		}
		for _, o := range b.BuyOrders {
			item.Children = append(item.Children, Child{
				ID:    o.ID,
				Type:  model.EntityBuyOrder,
				Lane:  1,
				Label: o.RelationshipType,
				Data:  o,
			})
		}
		items = append(items, item)
	}
	return items
}

func InvoiceItems(invoices []model.Invoice) []Item {
	items := make([]Item, 0, len(invoices))
	for _, inv := range invoices {
		item := Item{ID: inv.ID, Type: model.EntityInvoice, Data: inv}
		for _, p := range inv.Products {
			item.Children = append(item.Children, Child{
				ID:    p.ID,
				Type:  model.EntityProduct,
				Lane:  0,
				Label: p.RelationshipType,
				Data:  p,
			})
		}
		items = append(items, item)
	}
	return items
}

func RouteItems(routes []model.Route) []Item {
	items := make([]Item, 0, len(routes))
	for _, r := range routes {
		item := Item{ID: r.ID, Type: model.EntityRoute, Data: r}
		if r.Branch != nil {
			item.Children = append(item.Children, Child{
				ID:    r.Branch.ID,
				Type:  model.EntityBranchOffice,
				Lane:  0,
				Label: r.Branch.RelationshipType,
				Data:  *r.Branch,
			})
		}
		for _, p := range r.Products {
			item.Children = append(item.Children, Child{
				ID:    p.ID,
				Type:  model.EntityProduct,
				Lane:  1,
				Label: p.RelationshipType,
				Data:  p,
			})
		}
		items = append(items, item)
	}
	return items
}
