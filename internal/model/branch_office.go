package model

// BranchOffice is a point of sale. Its invoices and purchase orders
// arrive nested in the list response.
type BranchOffice struct {
	ID       string  `json:"id"`
	Num      int     `json:"num,omitempty"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Income   float64 `json:"income"`
	Voided   bool    `json:"voided"`

	RelationshipType string `json:"relationshipType,omitempty"`

	Invoices  []Invoice  `json:"invoices,omitempty"`
	BuyOrders []BuyOrder `json:"buyOrders,omitempty"`
}
