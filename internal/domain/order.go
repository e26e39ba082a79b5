package domain

// ProcessingStatusExtracted marks a purchase order that was created
// directly from extraction output and has not been forwarded yet.
const ProcessingStatusExtracted = "EXTRACTED"

// PurchaseOrder is a persisted purchase order built from an extraction
// document. The ID is assigned by the persistence collaborator.
type PurchaseOrder struct {
	ID                   uint
	DocumentNumber       string
	SenderID             string
	ReceiverID           string
	VendorAddress        string
	ShipToAddress        string
	CurrencyCode         string
	NetAmount            float64
	GrossAmount          float64
	Discount             float64
	TotalVAT             float64
	ExtractionConfidence float64
	ProcessingStatus     string
	Lines                []PurchaseOrderLine
}

// PurchaseOrderLine is one line item of a PurchaseOrder.
// ItemNumber is a 1-based sequential string.
type PurchaseOrderLine struct {
	ItemNumber             string
	MaterialNumber         string
	CustomerMaterialNumber string
	Description            string
	Quantity               float64
	UnitPrice              float64
	DiscountValue          float64
	VATValue               float64
	DeliveryDate           string
}

// OrderResult is the normalized outcome of a create-style action.
// Success is false whenever SalesOrderNumber is empty; Message then
// carries the single human-readable failure description.
type OrderResult struct {
	SalesOrderNumber string
	Message          string
	Success          bool
}

// LookupType selects which product field a lookup matches against.
type LookupType string

const (
	// LookupTypeEAN matches identifiers against the standard product ID.
	LookupTypeEAN LookupType = "ean"

	// LookupTypeModel matches identifiers against the product description.
	LookupTypeModel LookupType = "model"
)

// Valid reports whether t is a recognized lookup type.
func (t LookupType) Valid() bool {
	return t == LookupTypeEAN || t == LookupTypeModel
}

// ProductLookupResult maps requested identifiers to ERP-internal
// product IDs. Missing lists requested identifiers with no match.
type ProductLookupResult struct {
	Products map[string]string
	Missing  []string
	Message  string
	Success  bool
}
