package model

// InvoiceStatus is the invoice lifecycle state reported by the backend.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "Pending"
	InvoiceStatusPaid     InvoiceStatus = "Paid"
	InvoiceStatusCanceled InvoiceStatus = "Canceled"
)

// Invoice is a sale document emitted by a branch office. Date is
// already flattened to YYYY-MM-DD by the fetch layer.
type Invoice struct {
	ID      string  `json:"id"`
	Num     int     `json:"num,omitempty"`
	Name    string  `json:"name"`
	TaxID   string  `json:"nit"`
	Cashier string  `json:"cashier"`
	Total   float64 `json:"total"`
	Status  string  `json:"status"`
	Notes   string  `json:"notes"`
	Date    string  `json:"date"`

	RelationshipType string `json:"relationshipType,omitempty"`

	Products []Product `json:"products,omitempty"`
}
