// Package s4 adapts the S/4HANA OData v2 API to the adapter's
// gateway port. It translates the ERP's envelope responses to domain
// types and normalizes its nested error shapes.
package s4

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/gzmilgar/JumboOCR/internal/adapters/clients"
	"github.com/gzmilgar/JumboOCR/internal/domain"
	"github.com/gzmilgar/JumboOCR/internal/platform/logging"
	"github.com/gzmilgar/JumboOCR/internal/platform/telemetry"
)

const (
	salesOrderPath = "/sap/opu/odata/sap/API_SALES_ORDER_SRV/A_SalesOrder"
	productPath    = "/sap/opu/odata/sap/API_PRODUCT_SRV/A_Product"
	metadataPath   = "/sap/opu/odata/sap/API_SALES_ORDER_SRV/$metadata"

	// createTimeout bounds order creation; the ERP commits the full
	// document before answering.
	createTimeout = 60 * time.Second

	// lookupTimeout bounds read-only product queries.
	lookupTimeout = 30 * time.Second

	opCreate = "createSalesOrder"
	opLookup = "lookupProducts"
)

// GatewayConfig contains configuration for the gateway.
type GatewayConfig struct {
	// Client is the HTTP client bound to the ERP destination.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Gateway implements ports.SalesOrderGateway against S/4HANA.
// Each method issues exactly one network call.
type Gateway struct {
	client  *clients.Client
	logger  *slog.Logger
	metrics *telemetry.ERPMetrics
}

// NewGateway creates a gateway adapter. Panics if Client is nil.
func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.Client == nil {
		panic("s4.Gateway: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Metric creation errors do not prevent the gateway from working.
	metrics, err := telemetry.NewERPMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return &Gateway{
		client:  cfg.Client,
		logger:  logger,
		metrics: metrics,
	}
}

// createEnvelope is the OData v2 response wrapper for order creation.
type createEnvelope struct {
	D struct {
		SalesOrder string `json:"SalesOrder"`
	} `json:"d"`
}

// CreateSalesOrder posts the payload and extracts the created order
// number from the response's d wrapper.
func (g *Gateway) CreateSalesOrder(ctx context.Context, payload *domain.SalesOrderPayload) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	start := time.Now()
	success := false
	defer func() { g.metrics.Record(ctx, opCreate, success, time.Since(start)) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", domain.NewGatewayError(opCreate, "encoding payload: "+err.Error())
	}

	logging.FromContext(ctx).DebugContext(ctx, "creating sales order",
		slog.String("sold_to", payload.SoldToParty),
		slog.Int("items", len(payload.Items)),
	)

	resp, err := g.client.Post(ctx, salesOrderPath, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewGatewayError(opCreate, Normalize(nil, err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", domain.NewGatewayError(opCreate, Normalize(nil, readErr))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		g.logger.Warn("sales order creation rejected",
			slog.Int("status", resp.StatusCode),
		)

		return "", domain.NewGatewayError(opCreate,
			Normalize(respBody, fmt.Errorf("unexpected HTTP %d", resp.StatusCode)))
	}

	var envelope createEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", domain.NewGatewayError(opCreate, "decoding response: "+err.Error())
	}

	// A 2xx without an order number is still a failure.
	if envelope.D.SalesOrder == "" {
		return "", domain.NewGatewayError(opCreate, "response contains no sales order number")
	}

	success = true

	return envelope.D.SalesOrder, nil
}

// productRow is one entry under d.results of a product query.
type productRow struct {
	Product            string `json:"Product"`
	ProductStandardID  string `json:"ProductStandardID"`
	ProductDescription string `json:"ProductDescription"`
}

type lookupEnvelope struct {
	D struct {
		Results []productRow `json:"results"`
	} `json:"d"`
}

// LookupProducts resolves identifiers to ERP product IDs with a single
// GET whose filter is an OR-disjunction of equality predicates against
// the field selected by lookupType.
func (g *Gateway) LookupProducts(ctx context.Context, identifiers []string, lookupType domain.LookupType) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	start := time.Now()
	success := false
	defer func() { g.metrics.Record(ctx, opLookup, success, time.Since(start)) }()

	field := lookupField(lookupType)

	predicates := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		predicates = append(predicates, fmt.Sprintf("%s eq '%s'", field, escapeODataLiteral(id)))
	}

	query := url.Values{}
	query.Set("$filter", strings.Join(predicates, " or "))
	query.Set("$select", "Product,ProductStandardID,ProductDescription")
	query.Set("$format", "json")

	resp, err := g.client.Get(ctx, productPath+"?"+query.Encode())
	if err != nil {
		return nil, domain.NewGatewayError(opLookup, Normalize(nil, err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, domain.NewGatewayError(opLookup, Normalize(nil, readErr))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewGatewayError(opLookup,
			Normalize(respBody, fmt.Errorf("unexpected HTTP %d", resp.StatusCode)))
	}

	var envelope lookupEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, domain.NewGatewayError(opLookup, "decoding response: "+err.Error())
	}

	products := make(map[string]string, len(envelope.D.Results))
	for _, row := range envelope.D.Results {
		key := row.ProductStandardID
		if lookupType == domain.LookupTypeModel {
			key = row.ProductDescription
		}

		if key == "" || row.Product == "" {
			continue
		}

		products[key] = row.Product
	}

	if missing := len(identifiers) - len(products); missing > 0 {
		logging.FromContext(ctx).WarnContext(ctx, "product lookup left identifiers unresolved",
			slog.Int("requested", len(identifiers)),
			slog.Int("missing", missing),
		)
	}

	success = true

	return products, nil
}

// Name returns the health check name for this gateway.
// Implements ports.HealthChecker.
func (g *Gateway) Name() string {
	return "s4hana"
}

// Check verifies connectivity by fetching the service metadata document.
// Implements ports.HealthChecker.
func (g *Gateway) Check(ctx context.Context) error {
	resp, err := g.client.Get(ctx, metadataPath)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("s4hana metadata returned status %d", resp.StatusCode)
	}

	return nil
}

// lookupField selects the filter field for a lookup type; EAN is the
// default for anything unrecognized.
func lookupField(t domain.LookupType) string {
	if t == domain.LookupTypeModel {
		return "ProductDescription"
	}

	return "ProductStandardID"
}

// escapeODataLiteral doubles single quotes inside string literals.
func escapeODataLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
