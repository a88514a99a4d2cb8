package model

// Route is a delivery run operated for a company. Depending on the
// endpoint the backend reports either a start/end date pair or an
// arrival date plus hour; all dates are flattened by the fetch layer.
type Route struct {
	ID           string  `json:"id"`
	Num          int     `json:"num,omitempty"`
	Name         string  `json:"name"`
	Company      string  `json:"company"`
	DistanceKM   float64 `json:"distanceKm"`
	StartDate    string  `json:"startDate,omitempty"`
	EndDate      string  `json:"endDate,omitempty"`
	ArriveDate   string  `json:"arriveDate,omitempty"`
	ArriveHour   string  `json:"arriveHour,omitempty"`
	Quantity     int     `json:"quantity,omitempty"`
	DeliveryName string  `json:"deliveryName,omitempty"`
	Voided       bool    `json:"voided"`

	RelationshipType string `json:"relationshipType,omitempty"`

	Branch   *BranchOffice `json:"branchOffice,omitempty"`
	Products []Product     `json:"products,omitempty"`
}
