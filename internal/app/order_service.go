// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gzmilgar/JumboOCR/internal/domain"
	"github.com/gzmilgar/JumboOCR/internal/erp"
	"github.com/gzmilgar/JumboOCR/internal/extraction"
	"github.com/gzmilgar/JumboOCR/internal/platform/logging"
	"github.com/gzmilgar/JumboOCR/internal/ports"
)

// directRequiredFields are the header fields a pre-shaped payload must
// carry before it is forwarded to the ERP.
var directRequiredFields = []struct {
	name  string
	value func(*domain.SalesOrderPayload) string
}{
	{"SalesOrderType", func(p *domain.SalesOrderPayload) string { return p.SalesOrderType }},
	{"SalesOrganization", func(p *domain.SalesOrderPayload) string { return p.SalesOrganization }},
	{"DistributionChannel", func(p *domain.SalesOrderPayload) string { return p.DistributionChannel }},
	{"OrganizationDivision", func(p *domain.SalesOrderPayload) string { return p.OrganizationDivision }},
	{"SoldToParty", func(p *domain.SalesOrderPayload) string { return p.SoldToParty }},
}

// OrderService orchestrates the adapter's actions. It depends on port
// interfaces, not concrete implementations. Create-style methods never
// return errors past this layer: every failure kind collapses into a
// result with Success=false and a single message.
type OrderService struct {
	gateway ports.SalesOrderGateway
	orders  ports.PurchaseOrderRepository
	builder *erp.Builder
	logger  *slog.Logger
}

// OrderServiceConfig contains the service's dependencies.
type OrderServiceConfig struct {
	Gateway ports.SalesOrderGateway
	Orders  ports.PurchaseOrderRepository
	Builder *erp.Builder
	Logger  *slog.Logger
}

// NewOrderService creates the service. Panics if Gateway or Builder is
// nil; Orders may be nil when purchase order persistence is disabled.
func NewOrderService(cfg OrderServiceConfig) *OrderService {
	if cfg.Gateway == nil {
		panic("OrderService: Gateway is required")
	}

	if cfg.Builder == nil {
		panic("OrderService: Builder is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderService{
		gateway: cfg.Gateway,
		orders:  cfg.Orders,
		builder: cfg.Builder,
		logger:  logger,
	}
}

// CreateSalesOrderFromExtraction runs the full pipeline: map the
// extraction fields, validate fail-fast, build the payload, and create
// the order through the gateway.
func (s *OrderService) CreateSalesOrderFromExtraction(ctx context.Context, doc *domain.ExtractionDocument) *domain.OrderResult {
	header, lines := extraction.MapDocument(doc)
	ctx = logging.WithDocumentNumber(ctx, header.String("documentNumber"))

	if err := extraction.Require(header, lines, extraction.RequiredHeaderFields); err != nil {
		s.logger.WarnContext(ctx, "extraction rejected by validation",
			slog.String("reason", err.Error()),
		)

		return failure(err)
	}

	payload, err := s.builder.Build(header, lines)
	if err != nil {
		s.logger.WarnContext(ctx, "payload build failed",
			slog.String("reason", err.Error()),
		)

		return failure(err)
	}

	return s.createOrder(ctx, payload)
}

// CreateSalesOrder forwards an already-ERP-shaped payload after
// checking its required header fields.
func (s *OrderService) CreateSalesOrder(ctx context.Context, payload *domain.SalesOrderPayload) *domain.OrderResult {
	for _, field := range directRequiredFields {
		if field.value(payload) == "" {
			return failure(domain.NewValidationError(field.name, "is required"))
		}
	}

	return s.createOrder(ctx, payload)
}

func (s *OrderService) createOrder(ctx context.Context, payload *domain.SalesOrderPayload) *domain.OrderResult {
	s.logger.InfoContext(ctx, "creating sales order",
		slog.String("sold_to", payload.SoldToParty),
		slog.String("po_number", payload.PurchaseOrderByCustomer),
		slog.Int("items", len(payload.Items)),
	)

	orderNumber, err := s.gateway.CreateSalesOrder(ctx, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "sales order creation failed",
			slog.Any("error", err),
		)

		return failure(err)
	}

	s.logger.InfoContext(ctx, "sales order created",
		slog.String("sales_order", orderNumber),
	)

	return &domain.OrderResult{
		SalesOrderNumber: orderNumber,
		Message:          "Sales order " + orderNumber + " created",
		Success:          true,
	}
}

// ValidateExtraction is the dry run: mapping plus collect-all
// validation, no outbound call. It never fails outward; an unexpected
// internal error comes back as a single-element error list.
func (s *OrderService) ValidateExtraction(ctx context.Context, doc *domain.ExtractionDocument) (result *domain.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "validation panicked",
				slog.Any("error", r),
			)

			result = &domain.ValidationResult{
				Valid:  false,
				Errors: []string{fmt.Sprintf("internal error: %v", r)},
			}
		}
	}()

	header, lines := extraction.MapDocument(doc)

	return extraction.Check(header, lines, extraction.RequiredHeaderFields)
}

// CreatePOFromExtraction maps the document into a purchase order,
// persists it with its lines, and reads it back by generated identity.
func (s *OrderService) CreatePOFromExtraction(ctx context.Context, doc *domain.ExtractionDocument) (*domain.PurchaseOrder, error) {
	if s.orders == nil {
		return nil, domain.NewUnavailableError("purchase-order-store", "persistence is not configured")
	}

	header, lines := extraction.MapDocument(doc)
	ctx = logging.WithDocumentNumber(ctx, header.String("documentNumber"))
	order := purchaseOrderFromRecords(header, lines, doc.Extraction.Confidence)

	id, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.ErrorContext(ctx, "purchase order insert failed",
			slog.Any("error", err),
		)

		return nil, err
	}

	s.logger.InfoContext(ctx, "purchase order created",
		slog.Uint64("id", uint64(id)),
		slog.String("document_number", order.DocumentNumber),
		slog.Int("lines", len(order.Lines)),
	)

	return s.orders.GetByID(ctx, id)
}

// LookupProducts resolves identifiers through the gateway and reports
// the ones with no match. Success requires every identifier to
// resolve.
func (s *OrderService) LookupProducts(ctx context.Context, identifiers []string, lookupType domain.LookupType) *domain.ProductLookupResult {
	if len(identifiers) == 0 {
		return &domain.ProductLookupResult{
			Products: map[string]string{},
			Message:  "no identifiers requested",
		}
	}

	if !lookupType.Valid() {
		lookupType = domain.LookupTypeEAN
	}

	products, err := s.gateway.LookupProducts(ctx, identifiers, lookupType)
	if err != nil {
		s.logger.ErrorContext(ctx, "product lookup failed",
			slog.Any("error", err),
		)

		return &domain.ProductLookupResult{
			Products: map[string]string{},
			Message:  gatewayMessage(err),
		}
	}

	var missing []string
	for _, id := range identifiers {
		if _, found := products[id]; !found {
			missing = append(missing, id)
		}
	}

	result := &domain.ProductLookupResult{
		Products: products,
		Missing:  missing,
		Success:  len(missing) == 0,
		Message:  fmt.Sprintf("%d of %d products found", len(products), len(identifiers)),
	}

	if len(missing) > 0 {
		result.Message = "products not found: " + strings.Join(missing, ", ")
	}

	return result
}

// purchaseOrderFromRecords picks the known vocabulary out of the
// mapped records; unknown keys are ignored.
func purchaseOrderFromRecords(header domain.Record, lines []domain.Record, confidence float64) *domain.PurchaseOrder {
	order := &domain.PurchaseOrder{
		DocumentNumber:       header.String("documentNumber"),
		SenderID:             header.String("senderId"),
		ReceiverID:           header.String("receiverId"),
		VendorAddress:        header.String("vendorAddress"),
		ShipToAddress:        header.String("shipToAddress"),
		CurrencyCode:         header.String("currencyCode"),
		NetAmount:            header.Float("netAmount"),
		GrossAmount:          header.Float("grossAmount"),
		Discount:             header.Float("discount"),
		TotalVAT:             header.Float("totalVAT"),
		ExtractionConfidence: confidence,
		ProcessingStatus:     domain.ProcessingStatusExtracted,
	}

	for i, line := range lines {
		order.Lines = append(order.Lines, domain.PurchaseOrderLine{
			ItemNumber:             strconv.Itoa(i + 1),
			MaterialNumber:         line.String("materialNumber"),
			CustomerMaterialNumber: line.String("customerMaterialNumber"),
			Description:            line.String("description"),
			Quantity:               line.Float("quantity"),
			UnitPrice:              line.Float("unitPrice"),
			DiscountValue:          line.Float("DiscValue"),
			VATValue:               line.Float("VATValue"),
			DeliveryDate:           line.String("deliveryDate"),
		})
	}

	return order
}

// failure converts any pipeline error into the uniform result shape.
func failure(err error) *domain.OrderResult {
	return &domain.OrderResult{Message: gatewayMessage(err)}
}

// gatewayMessage strips the operation prefix from gateway errors so the
// caller sees only the normalized message; other errors pass through.
func gatewayMessage(err error) string {
	var gerr *domain.GatewayError
	if errors.As(err, &gerr) {
		return gerr.Message
	}

	return err.Error()
}
