package dto

import (
	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// ExtractionRequest carries an extraction document. The upstream
// service sends extractionData either as a JSON object or as a string
// containing the JSON-encoded object; ExtractionDocument accepts both.
type ExtractionRequest struct {
	ExtractionData domain.ExtractionDocument `json:"extractionData"`
}

// CreateSalesOrderRequest carries a pre-shaped ERP payload that
// bypasses the extraction mapping pipeline.
type CreateSalesOrderRequest struct {
	SalesOrderData domain.SalesOrderPayload `json:"salesOrderData"`
}

// LookupProductsRequest asks for ERP product numbers by external
// identifier. LookupType is "ean" or "model"; unknown values fall
// back to "ean".
type LookupProductsRequest struct {
	Identifiers []string `json:"identifiers" validate:"required,min=1"`
	LookupType  string   `json:"lookupType"`
}

// OrderResultResponse is the uniform envelope for create-style
// actions. It is returned with HTTP 200 for both outcomes; success is
// signalled in the body.
type OrderResultResponse struct {
	SalesOrderNumber string `json:"salesOrderNumber,omitempty"`
	Message          string `json:"message"`
	Success          bool   `json:"success"`
}

// NewOrderResultResponse converts a domain order result.
func NewOrderResultResponse(r *domain.OrderResult) *OrderResultResponse {
	return &OrderResultResponse{
		SalesOrderNumber: r.SalesOrderNumber,
		Message:          r.Message,
		Success:          r.Success,
	}
}

// FailedOrderResponse builds the envelope for failures that happen
// before the pipeline runs, such as an unparsable request body.
func FailedOrderResponse(message string) *OrderResultResponse {
	return &OrderResultResponse{Message: message}
}

// LookupProductsResponse reports resolved and unresolved identifiers.
type LookupProductsResponse struct {
	Products map[string]string `json:"products"`
	Missing  []string          `json:"missing,omitempty"`
	Message  string            `json:"message"`
	Success  bool              `json:"success"`
}

// NewLookupProductsResponse converts a domain lookup result.
func NewLookupProductsResponse(r *domain.ProductLookupResult) *LookupProductsResponse {
	return &LookupProductsResponse{
		Products: r.Products,
		Missing:  r.Missing,
		Message:  r.Message,
		Success:  r.Success,
	}
}

// PurchaseOrderResponse is the persisted purchase order as returned
// to the caller.
type PurchaseOrderResponse struct {
	ID                   uint                        `json:"id"`
	DocumentNumber       string                      `json:"documentNumber"`
	SenderID             string                      `json:"senderId"`
	ReceiverID           string                      `json:"receiverId"`
	VendorAddress        string                      `json:"vendorAddress"`
	ShipToAddress        string                      `json:"shipToAddress"`
	CurrencyCode         string                      `json:"currencyCode"`
	NetAmount            float64                     `json:"netAmount"`
	GrossAmount          float64                     `json:"grossAmount"`
	Discount             float64                     `json:"discount"`
	TotalVAT             float64                     `json:"totalVAT"`
	ExtractionConfidence float64                     `json:"extractionConfidence"`
	ProcessingStatus     string                      `json:"processingStatus"`
	Lines                []PurchaseOrderLineResponse `json:"lineItems"`
}

// PurchaseOrderLineResponse is one line of a persisted purchase order.
type PurchaseOrderLineResponse struct {
	ItemNumber             string  `json:"itemNumber"`
	MaterialNumber         string  `json:"materialNumber,omitempty"`
	CustomerMaterialNumber string  `json:"customerMaterialNumber,omitempty"`
	Description            string  `json:"description,omitempty"`
	Quantity               float64 `json:"quantity"`
	UnitPrice              float64 `json:"unitPrice"`
	DiscountValue          float64 `json:"DiscValue"`
	VATValue               float64 `json:"VATValue"`
	DeliveryDate           string  `json:"deliveryDate,omitempty"`
}

// NewPurchaseOrderResponse converts a persisted purchase order.
func NewPurchaseOrderResponse(order *domain.PurchaseOrder) *PurchaseOrderResponse {
	resp := &PurchaseOrderResponse{
		ID:                   order.ID,
		DocumentNumber:       order.DocumentNumber,
		SenderID:             order.SenderID,
		ReceiverID:           order.ReceiverID,
		VendorAddress:        order.VendorAddress,
		ShipToAddress:        order.ShipToAddress,
		CurrencyCode:         order.CurrencyCode,
		NetAmount:            order.NetAmount,
		GrossAmount:          order.GrossAmount,
		Discount:             order.Discount,
		TotalVAT:             order.TotalVAT,
		ExtractionConfidence: order.ExtractionConfidence,
		ProcessingStatus:     order.ProcessingStatus,
		Lines:                make([]PurchaseOrderLineResponse, 0, len(order.Lines)),
	}

	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, PurchaseOrderLineResponse{
			ItemNumber:             line.ItemNumber,
			MaterialNumber:         line.MaterialNumber,
			CustomerMaterialNumber: line.CustomerMaterialNumber,
			Description:            line.Description,
			Quantity:               line.Quantity,
			UnitPrice:              line.UnitPrice,
			DiscountValue:          line.DiscountValue,
			VATValue:               line.VATValue,
			DeliveryDate:           line.DeliveryDate,
		})
	}

	return resp
}
