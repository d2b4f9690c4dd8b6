package http

import (
	"net/http"
	"time"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	accounts *service.AccountService
	log      *zap.Logger
}

func NewAuthHandler(accounts *service.AccountService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, log: log}
}

// Register handles POST /auth/register. A new customer is logged in
// immediately; the session token is returned and also set as a cookie for
// browser navigation.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	customer, session, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, sessionResponse(customer, session))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	customer, session, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, sessionResponse(customer, session))
}

// Logout handles POST /auth/logout: revokes the presented token and clears
// the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw, ok := extractToken(c); ok {
		if err := h.accounts.Logout(c.Request.Context(), raw); err != nil {
			h.log.Warn("logout revocation failed", zap.Error(err))
		}
	}
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session service.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetCookie("access_token", session.AccessToken, maxAge, "/", "", false, true)
}

func sessionResponse(customer *models.Customer, session service.Session) dto.SessionResponse {
	return dto.SessionResponse{
		CustomerID:  customer.ID.String(),
		Name:        customer.Name,
		Role:        string(customer.Role),
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
