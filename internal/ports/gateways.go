// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application
// layer to depend on abstractions rather than concrete implementations.
//
// Port design principles:
//   - Context as first parameter for cancellation and deadlines
//   - Return domain types, never external DTOs
//   - Error returns use domain error types (ErrGateway, ErrNotFound, ...)
package ports

import (
	"context"

	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// SalesOrderGateway is the outbound ERP contract. Implementations make
// exactly one network call per invocation: no retry, no caching.
type SalesOrderGateway interface {
	// CreateSalesOrder posts the payload and returns the created sales
	// order number extracted from the response envelope. A 2xx response
	// without an order number is a gateway failure, not a success.
	CreateSalesOrder(ctx context.Context, payload *domain.SalesOrderPayload) (string, error)

	// LookupProducts resolves the given identifiers to ERP-internal
	// product IDs in one query. Identifiers with no match are simply
	// absent from the returned map.
	LookupProducts(ctx context.Context, identifiers []string, lookupType domain.LookupType) (map[string]string, error)
}

// PurchaseOrderRepository is the persistence collaborator for
// extraction-created purchase orders: insert-and-return-identity for
// the header plus lines, point lookup by identity.
type PurchaseOrderRepository interface {
	// Create inserts the order and its lines and returns the generated
	// identity.
	Create(ctx context.Context, order *domain.PurchaseOrder) (uint, error)

	// GetByID retrieves an order with its lines.
	// Returns domain.ErrNotFound if no such order exists.
	GetByID(ctx context.Context, id uint) (*domain.PurchaseOrder, error)
}

// IdentifierMapper translates customer or material identifiers from
// the extraction vocabulary to the ERP's. An identifier with no entry
// is forwarded unchanged by callers; mapping never fails a build.
type IdentifierMapper interface {
	// Lookup returns the mapped identifier and whether a mapping entry
	// exists.
	Lookup(id string) (string, bool)
}
