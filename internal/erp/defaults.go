// Package erp assembles ERP-shaped sales order payloads from mapped
// extraction records.
package erp

// SalesDefaults carries the deployment-time organizational defaults
// injected into payload building. Values come from configuration at
// process start; business logic never reads the environment directly.
type SalesDefaults struct {
	OrderType    string
	SalesOrg     string
	DistChannel  string
	Division     string
	PaymentTerms string
	Plant        string
	Currency     string
}

// Fixed fallbacks for this deployment.
const (
	DefaultOrderType    = "1SDS"
	DefaultSalesOrg     = "D106"
	DefaultDistChannel  = "02"
	DefaultDivision     = "00"
	DefaultPaymentTerms = "Z000"
	DefaultPlant        = "DODY"
	DefaultCurrency     = "AED"
	DefaultCity         = "Dubai"
	DefaultQuantityUnit = "EA"
)

// NewSalesDefaults fills any zero field with its fixed fallback.
func NewSalesDefaults(d SalesDefaults) SalesDefaults {
	if d.OrderType == "" {
		d.OrderType = DefaultOrderType
	}
	if d.SalesOrg == "" {
		d.SalesOrg = DefaultSalesOrg
	}
	if d.DistChannel == "" {
		d.DistChannel = DefaultDistChannel
	}
	if d.Division == "" {
		d.Division = DefaultDivision
	}
	if d.PaymentTerms == "" {
		d.PaymentTerms = DefaultPaymentTerms
	}
	if d.Plant == "" {
		d.Plant = DefaultPlant
	}
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}

	return d
}
