package http

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShopHandler struct {
	shop *service.StorefrontService
	log  *zap.Logger
}

func NewShopHandler(shop *service.StorefrontService, log *zap.Logger) *ShopHandler {
	return &ShopHandler{shop: shop, log: log}
}

// ListProducts handles GET /products. Anonymous viewers see only
// unreserved products; authenticated viewers additionally see their own
// cart items flagged in_cart.
func (h *ShopHandler) ListProducts(c *gin.Context) {
	var viewer *uuid.UUID
	if id, ok := service.CustomerIDFromContext(c.Request.Context()); ok {
		viewer = &id
	}

	views, err := h.shop.ListVisibleProducts(c.Request.Context(), viewer)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toProductResponse(v.Product, v.InCart))
	}
	c.JSON(http.StatusOK, out)
}

// GetCart handles GET /cart.
func (h *ShopHandler) GetCart(c *gin.Context) {
	cart, err := h.shop.CartContents(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := dto.CartResponse{
		Items:      make([]dto.ProductResponse, 0, len(cart.Products)),
		TotalCents: cart.TotalCents,
	}
	for _, p := range cart.Products {
		out.Items = append(out.Items, toProductResponse(p, true))
	}
	c.JSON(http.StatusOK, out)
}

// AddToCart handles POST /cart/items.
func (h *ShopHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("product_id must be a uuid", nil))
		return
	}

	if err := h.shop.AddToCart(c.Request.Context(), productID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusCreated)
}

// RemoveFromCart handles DELETE /cart/items/:product_id.
func (h *ShopHandler) RemoveFromCart(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("product_id must be a uuid", nil))
		return
	}

	if err := h.shop.RemoveFromCart(c.Request.Context(), productID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
