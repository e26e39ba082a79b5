package domain

// Partner function and condition type codes used in outbound payloads.
const (
	PartnerFunctionShipTo = "SH"
	PartnerFunctionBillTo = "BP"

	ConditionTypeManualPrice = "ZMAN"
	ConditionTypeDiscount    = "ZRDV"
	ConditionTypeVAT         = "ZVAT"
)

// SalesOrderPayload is the ERP-shaped request body for sales order
// creation, following the S/4HANA sales order API's OData v2 naming.
// Monetary and quantity values are rendered as strings because the
// API models them as Edm.Decimal.
type SalesOrderPayload struct {
	SalesOrderType         string `json:"SalesOrderType"`
	SalesOrganization      string `json:"SalesOrganization"`
	DistributionChannel    string `json:"DistributionChannel"`
	OrganizationDivision   string `json:"OrganizationDivision"`
	SoldToParty            string `json:"SoldToParty"`
	PurchaseOrderByCustomer string `json:"PurchaseOrderByCustomer"`
	TransactionCurrency    string `json:"TransactionCurrency"`
	RequestedDeliveryDate  string `json:"RequestedDeliveryDate"`
	CustomerPaymentTerms   string `json:"CustomerPaymentTerms"`

	Items    []SalesOrderItem    `json:"to_Item"`
	Partners []SalesOrderPartner `json:"to_Partner"`
}

// SalesOrderItem is one outbound line. Ordering inside the payload is
// stable and determines the ERP's item numbering.
type SalesOrderItem struct {
	SalesOrderItem          string `json:"SalesOrderItem"`
	Material                string `json:"Material,omitempty"`
	MaterialByCustomer      string `json:"MaterialByCustomer,omitempty"`
	SalesOrderItemText      string `json:"SalesOrderItemText,omitempty"`
	RequestedQuantity       string `json:"RequestedQuantity"`
	RequestedQuantityUnit   string `json:"RequestedQuantityUnit"`
	ProductionPlant         string `json:"ProductionPlant,omitempty"`

	PricingElements []PricingElement `json:"to_PricingElement,omitempty"`
}

// PricingElement is one tagged monetary condition attached to a line.
type PricingElement struct {
	ConditionType         string `json:"ConditionType"`
	ConditionRateValue    string `json:"ConditionRateValue"`
	ConditionCurrency     string `json:"ConditionCurrency"`
	ConditionQuantityUnit string `json:"ConditionQuantityUnit"`
}

// SalesOrderPartner is one partner-role block carrying one address.
type SalesOrderPartner struct {
	PartnerFunction string         `json:"PartnerFunction"`
	Customer        string         `json:"Customer"`
	Address         PartnerAddress `json:"to_Address"`
}

// PartnerAddress is the decomposed free-text ship-to address. Empty
// sub-fields are expected; downstream consumers tolerate them.
type PartnerAddress struct {
	OrganizationName string `json:"OrganizationName1"`
	StreetName       string `json:"StreetName"`
	StreetPrefixName string `json:"StreetPrefixName"`
	CityName         string `json:"CityName"`
}
