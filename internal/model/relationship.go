package model

import "encoding/json"

// RelationshipKind is the relationship-type discriminant the backend
// uses to name an edge's semantic kind.
type RelationshipKind string

const (
	KindProvidesTo RelationshipKind = "PROVIDES_TO"
	KindUse        RelationshipKind = "USE"
	KindBelongsTo  RelationshipKind = "BELONGS_TO"
	KindExistsOn   RelationshipKind = "EXISTS_ON"
	KindContains   RelationshipKind = "CONTAINS"
	KindEmits      RelationshipKind = "EMITS"
	KindCreatesA   RelationshipKind = "CREATES_A"
	KindRelatedTo  RelationshipKind = "RELATED_TO"
)

type endpointPair struct {
	source EntityType
	target EntityType
}

var kindByPair = map[endpointPair]RelationshipKind{
	{EntityProvider, EntityBranchOffice}: KindProvidesTo,
	{EntityProvider, EntityRoute}:        KindUse,
	{EntityProduct, EntityProvider}:      KindBelongsTo,
	{EntityProduct, EntityBranchOffice}:  KindExistsOn,
	{EntityProduct, EntityProduct}:       KindRelatedTo,
	{EntityInvoice, EntityProduct}:       KindContains,
	{EntityBranchOffice, EntityInvoice}:  KindEmits,
	{EntityBranchOffice, EntityBuyOrder}: KindCreatesA,
}

// KindFor reports the discriminant for a (source, target) pair.
func KindFor(source, target EntityType) (RelationshipKind, bool) {
	k, ok := kindByPair[endpointPair{source, target}]
	return k, ok
}

// FallbackKind is the edge label used when the backend did not return
// a discriminant. Unknown pairs fall back to RELATED_TO.
func FallbackKind(source, target EntityType) RelationshipKind {
	if k, ok := KindFor(source, target); ok {
		return k
	}
	return KindRelatedTo
}

// RelationshipProps is the tagged union of per-kind property sets.
// Each variant carries exactly the fields the backend contract names
// for its kind.
type RelationshipProps interface {
	Kind() RelationshipKind
}

// ProvidesToProps belongs to provider -> branch office edges.
type ProvidesToProps struct {
	QuantityOfOrdersInTime int    `json:"quantity_of_orders_in_time"`
	TypeProduct            string `json:"type_product"`
	RangeClient            string `json:"range_client"`
}

func (ProvidesToProps) Kind() RelationshipKind { return KindProvidesTo }

// UseProps belongs to provider -> route edges.
type UseProps struct {
	CostOfOperation float64 `json:"cost_of_operation"`
	StatusPayment   string  `json:"status_payment"`
	TypeVehicle     string  `json:"type_vehicle"`
}

func (UseProps) Kind() RelationshipKind { return KindUse }

// BelongsToProps belongs to product -> provider edges.
type BelongsToProps struct {
	CreateDate   string `json:"create_date"`
	TimeToCreate string `json:"time_to_create"`
}

func (BelongsToProps) Kind() RelationshipKind { return KindBelongsTo }

// ExistsOnProps belongs to product -> branch office edges.
type ExistsOnProps struct {
	ActualStock  int    `json:"actual_stock"`
	BuyDate      string `json:"buy_date"`
	MinimumStock int    `json:"minimum_stock"`
}

func (ExistsOnProps) Kind() RelationshipKind { return KindExistsOn }

// ContainsProps belongs to invoice -> product edges.
type ContainsProps struct {
	Quantity int     `json:"quantity"`
	Discount float64 `json:"discount"`
	Price    float64 `json:"price"`
	SubTotal float64 `json:"sub_total"`
}

func (ContainsProps) Kind() RelationshipKind { return KindContains }

// PropsFor returns a zero-valued property variant for a pair, or nil
// when the relationship carries no properties.
func PropsFor(source, target EntityType) RelationshipProps {
	switch FallbackKind(source, target) {
	case KindProvidesTo:
		return &ProvidesToProps{}
	case KindUse:
		return &UseProps{}
	case KindBelongsTo:
		return &BelongsToProps{}
	case KindExistsOn:
		return &ExistsOnProps{}
	case KindContains:
		return &ContainsProps{}
	}
	return nil
}

// DecodeProps unmarshals a raw property bag into the typed variant for
// the pair. Pairs without properties decode to nil.
func DecodeProps(source, target EntityType, raw json.RawMessage) (RelationshipProps, error) {
	props := PropsFor(source, target)
	if props == nil || len(raw) == 0 {
		return props, nil
	}
	if err := json.Unmarshal(raw, props); err != nil {
		return nil, err
	}
	return props, nil
}

// FieldSpec describes one input a caller must collect before a
// relationship can be submitted.
type FieldSpec struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// PropertyFields lists the dialog inputs for a pair's relationship
// properties. An empty result means the pair submits with ids only.
func PropertyFields(source, target EntityType) []FieldSpec {
	switch FallbackKind(source, target) {
	case KindProvidesTo:
		return []FieldSpec{
			{Name: "quantity_of_orders_in_time", Label: "Quantity of orders in time", Type: "number"},
			{Name: "type_product", Label: "Product type", Type: "text"},
			{Name: "range_client", Label: "Client range", Type: "text"},
		}
	case KindUse:
		return []FieldSpec{
			{Name: "cost_of_operation", Label: "Cost of operation", Type: "number"},
			{Name: "status_payment", Label: "Payment status", Type: "text"},
			{Name: "type_vehicle", Label: "Vehicle type", Type: "text"},
		}
	case KindBelongsTo:
		return []FieldSpec{
			{Name: "create_date", Label: "Creation date", Type: "date"},
			{Name: "time_to_create", Label: "Time to create", Type: "text"},
		}
	case KindExistsOn:
		return []FieldSpec{
			{Name: "actual_stock", Label: "Current stock", Type: "number"},
			{Name: "buy_date", Label: "Purchase date", Type: "date"},
			{Name: "minimum_stock", Label: "Minimum stock", Type: "number"},
		}
	case KindContains:
		return []FieldSpec{
			{Name: "quantity", Label: "Quantity", Type: "number"},
			{Name: "discount", Label: "Discount", Type: "number"},
			{Name: "price", Label: "Price", Type: "number"},
			{Name: "sub_total", Label: "Subtotal", Type: "number"},
		}
	}
	return nil
}

// RequiresProperties reports whether a pair needs a property dialog
// before submission.
func RequiresProperties(source, target EntityType) bool {
	return len(PropertyFields(source, target)) > 0
}
