package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gzmilgar/JumboOCR/internal/adapters/http/dto"
	"github.com/gzmilgar/JumboOCR/internal/app"
	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// OrderHandler handles sales order and purchase order HTTP endpoints.
type OrderHandler struct {
	service *app.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service *app.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// CreateFromExtraction handles POST /api/v1/sales-orders/extraction.
// Runs the extraction document through mapping, validation, payload
// assembly and the ERP call. Always answers 200; failures are carried
// in the envelope so the upstream document workflow can record the
// outcome without special-casing HTTP errors.
func (h *OrderHandler) CreateFromExtraction(c *gin.Context) {
	var req dto.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.FailedOrderResponse("invalid extraction document: "+err.Error()))
		return
	}

	result := h.service.CreateSalesOrderFromExtraction(c.Request.Context(), &req.ExtractionData)

	c.JSON(http.StatusOK, dto.NewOrderResultResponse(result))
}

// Create handles POST /api/v1/sales-orders.
// Accepts a pre-shaped ERP payload and forwards it without running
// the extraction pipeline.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.FailedOrderResponse("invalid sales order payload: "+err.Error()))
		return
	}

	result := h.service.CreateSalesOrder(c.Request.Context(), &req.SalesOrderData)

	c.JSON(http.StatusOK, dto.NewOrderResultResponse(result))
}

// Validate handles POST /api/v1/sales-orders/validate.
// Dry run: mapping plus validation only, no outbound call.
func (h *OrderHandler) Validate(c *gin.Context) {
	var req dto.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":  false,
			"errors": []string{"invalid extraction document: " + err.Error()},
		})
		return
	}

	result := h.service.ValidateExtraction(c.Request.Context(), &req.ExtractionData)

	c.JSON(http.StatusOK, result)
}

// CreatePurchaseOrder handles POST /api/v1/purchase-orders/extraction.
// Persists the extraction output as a purchase order record and
// returns the stored entity.
func (h *OrderHandler) CreatePurchaseOrder(c *gin.Context) {
	var req dto.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.HandleError(c, fmt.Errorf("%w: %w", domain.ErrMalformedInput, err))
		return
	}

	order, err := h.service.CreatePOFromExtraction(c.Request.Context(), &req.ExtractionData)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPurchaseOrderResponse(order))
}

// RegisterOrderRoutes registers order routes on the given router group.
func (h *OrderHandler) RegisterOrderRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales-orders")
	sales.POST("", h.Create)
	sales.POST("/extraction", h.CreateFromExtraction)
	sales.POST("/validate", h.Validate)

	purchase := rg.Group("/purchase-orders")
	purchase.POST("/extraction", h.CreatePurchaseOrder)
}
