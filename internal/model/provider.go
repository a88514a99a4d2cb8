package model

// Provider supplies products to branch offices and operates delivery
// routes.
type Provider struct {
	ID       string `json:"id"`
	Num      int    `json:"num,omitempty"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Voided   bool   `json:"voided"`

	RelationshipType string `json:"relationshipType,omitempty"`

	Branches  []BranchOffice `json:"branchOffices,omitempty"`
	Routes    []Route        `json:"routes,omitempty"`
	BuyOrders []BuyOrder     `json:"buyOrders,omitempty"`
}
