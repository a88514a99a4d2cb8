package model

// EntityType discriminates the node kinds the dashboard renders.
type EntityType string

const (
	EntityProduct      EntityType = "product"
	EntityProvider     EntityType = "provider"
	EntityBranchOffice EntityType = "branchOffice"
	EntityInvoice      EntityType = "invoice"
	EntityBuyOrder     EntityType = "buyOrder"
	EntityRoute        EntityType = "route"
)

// ParseEntityType validates an entity type coming from a URL segment.
func ParseEntityType(s string) (EntityType, bool) {
	switch EntityType(s) {
	case EntityProduct, EntityProvider, EntityBranchOffice, EntityInvoice, EntityBuyOrder, EntityRoute:
		return EntityType(s), true
	}
	return "", false
}
