package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gzmilgar/JumboOCR/internal/adapters/http/dto"
	"github.com/gzmilgar/JumboOCR/internal/app"
	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// ProductHandler handles product lookup HTTP endpoints.
type ProductHandler struct {
	service *app.OrderService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *app.OrderService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// Lookup handles POST /api/v1/products/lookup.
// Resolves external identifiers to ERP product numbers. Like the
// create-style actions it answers 200 with the outcome in the body.
func (h *ProductHandler) Lookup(c *gin.Context) {
	var req dto.LookupProductsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		c.JSON(http.StatusOK, &dto.LookupProductsResponse{
			Products: map[string]string{},
			Message:  "invalid lookup request: " + err.Error(),
		})
		return
	}

	result := h.service.LookupProducts(
		c.Request.Context(),
		req.Identifiers,
		domain.LookupType(req.LookupType),
	)

	c.JSON(http.StatusOK, dto.NewLookupProductsResponse(result))
}

// RegisterProductRoutes registers product routes on the given router group.
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("/lookup", h.Lookup)
}
