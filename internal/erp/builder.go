package erp

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gzmilgar/JumboOCR/internal/domain"
	"github.com/gzmilgar/JumboOCR/internal/ports"
)

// Builder assembles SalesOrderPayloads from mapped extraction records.
// It applies deployment defaults for omitted organizational fields and
// translates customer/material identifiers through the injected
// mappers. Building assumes validation already ran; only a completely
// absent material identifier is a hard error here.
type Builder struct {
	defaults  SalesDefaults
	customers ports.IdentifierMapper
	materials ports.IdentifierMapper
	logger    *slog.Logger
	now       func() time.Time
}

// BuilderConfig contains the builder's dependencies.
type BuilderConfig struct {
	Defaults SalesDefaults

	// Customers translates extraction customer IDs to ERP customer
	// numbers. Defaults to identity pass-through if nil.
	Customers ports.IdentifierMapper

	// Materials translates extraction material IDs to ERP material
	// numbers. Defaults to identity pass-through if nil.
	Materials ports.IdentifierMapper

	Logger *slog.Logger
}

// NewBuilder creates a payload builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	customers := cfg.Customers
	if customers == nil {
		customers = IdentityMapper{}
	}

	materials := cfg.Materials
	if materials == nil {
		materials = IdentityMapper{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Builder{
		defaults:  NewSalesDefaults(cfg.Defaults),
		customers: customers,
		materials: materials,
		logger:    logger.With(slog.String("component", "erp.Builder")),
		now:       time.Now,
	}
}

// Build assembles the outbound payload for one order. Item ordering
// follows the input line ordering; item numbers are 1-based sequential
// strings.
func (b *Builder) Build(header domain.Record, lines []domain.Record) (*domain.SalesOrderPayload, error) {
	customer := header.String("receiverId")
	if customer == "" {
		return nil, domain.NewBuildError("receiverId", "is missing")
	}
	customer = b.mapIdentifier(b.customers, customer, "customer")

	currency := header.String("currencyCode")
	if currency == "" {
		currency = b.defaults.Currency
	}

	address := SplitAddress(header.String("shipToAddress"))

	payload := &domain.SalesOrderPayload{
		SalesOrderType:          b.defaults.OrderType,
		SalesOrganization:       b.defaults.SalesOrg,
		DistributionChannel:     b.defaults.DistChannel,
		OrganizationDivision:    b.defaults.Division,
		SoldToParty:             customer,
		PurchaseOrderByCustomer: header.String("documentNumber"),
		TransactionCurrency:     currency,
		RequestedDeliveryDate:   b.deliveryDate(header),
		CustomerPaymentTerms:    b.defaults.PaymentTerms,
		Partners: []domain.SalesOrderPartner{
			{PartnerFunction: domain.PartnerFunctionShipTo, Customer: customer, Address: address},
			{PartnerFunction: domain.PartnerFunctionBillTo, Customer: customer, Address: address},
		},
	}

	payload.Items = make([]domain.SalesOrderItem, 0, len(lines))
	for i, line := range lines {
		item, err := b.buildItem(i, line, currency)
		if err != nil {
			return nil, err
		}

		payload.Items = append(payload.Items, *item)
	}

	return payload, nil
}

func (b *Builder) buildItem(index int, line domain.Record, currency string) (*domain.SalesOrderItem, error) {
	material := line.String("materialNumber")
	customerMaterial := line.String("customerMaterialNumber")
	if material == "" && customerMaterial == "" {
		return nil, domain.NewBuildError("line "+strconv.Itoa(index+1), "has no material identifier")
	}

	if material != "" {
		material = b.mapIdentifier(b.materials, material, "material")
	}

	item := &domain.SalesOrderItem{
		SalesOrderItem:        strconv.Itoa(index + 1),
		Material:              material,
		MaterialByCustomer:    customerMaterial,
		SalesOrderItemText:    line.String("description"),
		RequestedQuantity:     formatAmount(line.Float("quantity")),
		RequestedQuantityUnit: DefaultQuantityUnit,
		ProductionPlant:       b.defaults.Plant,
	}

	item.PricingElements = buildPricingElements(line, currency)

	return item, nil
}

// buildPricingElements attaches one condition entry per present
// monetary component: manual price, discount, VAT.
func buildPricingElements(line domain.Record, currency string) []domain.PricingElement {
	conditions := []struct {
		field string
		code  string
	}{
		{"unitPrice", domain.ConditionTypeManualPrice},
		{"DiscValue", domain.ConditionTypeDiscount},
		{"VATValue", domain.ConditionTypeVAT},
	}

	var elements []domain.PricingElement
	for _, cond := range conditions {
		if !line.Has(cond.field) {
			continue
		}

		elements = append(elements, domain.PricingElement{
			ConditionType:         cond.code,
			ConditionRateValue:    formatAmount(line.Float(cond.field)),
			ConditionCurrency:     currency,
			ConditionQuantityUnit: DefaultQuantityUnit,
		})
	}

	return elements
}

// mapIdentifier translates id through the mapper. A missing mapping
// entry forwards the identifier unchanged with a warning; it never
// fails the build.
func (b *Builder) mapIdentifier(mapper ports.IdentifierMapper, id, kind string) string {
	mapped, ok := mapper.Lookup(id)
	if !ok {
		b.logger.Warn("identifier has no mapping entry, forwarding unchanged",
			slog.String("kind", kind),
			slog.String("id", id),
		)
		return id
	}

	return mapped
}

// deliveryDate returns the extracted delivery date, or today when the
// extraction has none. Dates use the plain YYYY-MM-DD convention.
func (b *Builder) deliveryDate(header domain.Record) string {
	if date := header.String("deliveryDate"); date != "" {
		return date
	}

	return b.now().Format("2006-01-02")
}

// formatAmount renders a monetary or quantity value the way the OData
// API expects Edm.Decimal fields: a plain decimal string.
func formatAmount(value float64) string {
	return decimal.NewFromFloat(value).String()
}
