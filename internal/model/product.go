package model

// Product is a catalog item. The backend assigns both the opaque
// graph identity (ID) and the user-facing numeric identifier (Num).
type Product struct {
	ID             string   `json:"id"`
	Num            int      `json:"num,omitempty"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	Tags           []string `json:"tags"`
	ExpirationDate string   `json:"expirationDate"`
	Voided         bool     `json:"voided"`

	// RelationshipType is set when the product arrived nested under
	// another entity; it names the edge to that parent.
	RelationshipType string `json:"relationshipType,omitempty"`

	Provider *Provider      `json:"provider,omitempty"`
	Branches []BranchOffice `json:"branchOffices,omitempty"`
}
