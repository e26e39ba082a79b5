// Package repo persists extraction-created purchase orders with gorm.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// purchaseOrderRecord is the storage model. Domain entities never
// carry gorm concerns; translation happens at this boundary.
type purchaseOrderRecord struct {
	gorm.Model
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

	Lines []lineItemRecord `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

func (purchaseOrderRecord) TableName() string { return "purchase_orders" }

type lineItemRecord struct {
	gorm.Model
	PurchaseOrderID        uint `gorm:"index"`
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

func (lineItemRecord) TableName() string { return "purchase_order_line_items" }

// PurchaseOrders implements ports.PurchaseOrderRepository on a gorm DB.
type PurchaseOrders struct {
	db *gorm.DB
}

// NewPurchaseOrders creates the repository.
func NewPurchaseOrders(db *gorm.DB) *PurchaseOrders {
	return &PurchaseOrders{db: db}
}

// AutoMigrate creates or updates the backing tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&purchaseOrderRecord{}, &lineItemRecord{})
}

// Create inserts the order with its lines in one transaction and
// returns the generated identity.
func (r *PurchaseOrders) Create(ctx context.Context, order *domain.PurchaseOrder) (uint, error) {
	record := toRecord(order)

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, fmt.Errorf("inserting purchase order: %w", err)
	}

	return record.ID, nil
}

// GetByID retrieves an order with its lines.
func (r *PurchaseOrders) GetByID(ctx context.Context, id uint) (*domain.PurchaseOrder, error) {
	var record purchaseOrderRecord

	err := r.db.WithContext(ctx).Preload("Lines").First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("purchase order", strconv.FormatUint(uint64(id), 10))
	}
	if err != nil {
		return nil, fmt.Errorf("loading purchase order: %w", err)
	}

	return toDomain(&record), nil
}

// Name returns the health check name for this repository.
// Implements ports.HealthChecker.
func (r *PurchaseOrders) Name() string {
	return "postgres"
}

// Check pings the underlying database.
// Implements ports.HealthChecker.
func (r *PurchaseOrders) Check(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func toRecord(order *domain.PurchaseOrder) *purchaseOrderRecord {
	record := &purchaseOrderRecord{
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
	}

	for _, line := range order.Lines {
		record.Lines = append(record.Lines, lineItemRecord{
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

	return record
}

func toDomain(record *purchaseOrderRecord) *domain.PurchaseOrder {
	order := &domain.PurchaseOrder{
		ID:                   record.ID,
		DocumentNumber:       record.DocumentNumber,
		SenderID:             record.SenderID,
		ReceiverID:           record.ReceiverID,
		VendorAddress:        record.VendorAddress,
		ShipToAddress:        record.ShipToAddress,
		CurrencyCode:         record.CurrencyCode,
		NetAmount:            record.NetAmount,
		GrossAmount:          record.GrossAmount,
		Discount:             record.Discount,
		TotalVAT:             record.TotalVAT,
		ExtractionConfidence: record.ExtractionConfidence,
		ProcessingStatus:     record.ProcessingStatus,
	}

	for _, line := range record.Lines {
		order.Lines = append(order.Lines, domain.PurchaseOrderLine{
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

	return order
}
