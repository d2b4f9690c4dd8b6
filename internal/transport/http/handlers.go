package http

import (
	"errors"
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError translates the service layer's sentinel errors into
// the shared error envelope with the proper status code.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("authentication required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("admin access required"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("resource not found"))
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusConflict, dto.NewConflictError("customer with this email already exists"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid email or password"))
	case errors.Is(err, service.ErrProductReserved):
		c.JSON(http.StatusConflict, dto.NewConflictError("product is already reserved"))
	case errors.Is(err, service.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cart is empty", nil))
	case errors.Is(err, service.ErrPaymentProvider):
		c.JSON(http.StatusBadGateway, dto.NewPaymentProviderError(err.Error()))
	default:
		log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func toProductResponse(p models.Product, inCart bool) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		CurrencyCode: p.CurrencyCode,
		ImageURL:     p.ImageURL,
		InCart:       inCart,
	}
}
