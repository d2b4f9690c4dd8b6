package http

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
	log      *zap.Logger
}

func NewCheckoutHandler(checkout *service.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

// CreateSession handles POST /checkout/session: one line item per unpaid
// reservation, submitted to the hosted payment provider. The response
// carries the provider's session id and the URL the client must redirect
// the customer to.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	session, err := h.checkout.CreateCheckoutSession(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutSessionResponse{
		SessionID:   session.ID,
		RedirectURL: session.RedirectURL,
	})
}

// Success handles GET /checkout/success, the provider's success redirect.
// It settles the caller's pending reservations; a replayed callback settles
// nothing and still returns 200.
func (h *CheckoutHandler) Success(c *gin.Context) {
	settled, err := h.checkout.CompleteCheckout(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutCompleteResponse{ReservationsSettled: settled})
}
