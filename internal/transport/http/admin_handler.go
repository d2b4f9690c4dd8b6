package http

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	shop *service.StorefrontService
	log  *zap.Logger
}

func NewAdminHandler(shop *service.StorefrontService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{shop: shop, log: log}
}

// CreateProduct handles POST /admin/products. The role check lives in the
// service layer; a non-admin fails with 403 regardless of input validity.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	product, err := h.shop.CreateProduct(c.Request.Context(), service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(*product, false))
}

// DeleteProduct handles DELETE /admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id must be a uuid", nil))
		return
	}

	if err := h.shop.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
