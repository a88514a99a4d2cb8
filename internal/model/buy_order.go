package model

// BuyOrderStatus is the purchase order lifecycle state.
type BuyOrderStatus string

const (
	BuyOrderStatusPending  BuyOrderStatus = "Pending"
	BuyOrderStatusApproved BuyOrderStatus = "Approved"
	BuyOrderStatusRejected BuyOrderStatus = "Rejected"
)

// BuyOrder is a purchase order placed by a branch office or provider.
type BuyOrder struct {
	ID     string   `json:"id"`
	Num    int      `json:"num,omitempty"`
	Date   string   `json:"date"`
	Total  float64  `json:"total"`
	Status string   `json:"status"`
	Items  []string `json:"items"`
	Voided bool     `json:"voided"`

	RelationshipType string `json:"relationshipType,omitempty"`
}
