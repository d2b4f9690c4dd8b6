package http

import (
	"storefront/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Accounts  *service.AccountService
	Shop      *service.StorefrontService
	Checkout  *service.CheckoutService
	Tokens    service.TokenProvider
	Blacklist service.TokenBlacklist
	Log       *zap.Logger
}

func Router(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authHandler := NewAuthHandler(d.Accounts, d.Log)
	shopHandler := NewShopHandler(d.Shop, d.Log)
	adminHandler := NewAdminHandler(d.Shop, d.Log)
	checkoutHandler := NewCheckoutHandler(d.Checkout, d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", AuthRequired(d.Tokens, d.Blacklist, d.Log), authHandler.Logout)

	// The storefront listing renders per viewer, so identity is optional.
	r.GET("/products", AuthOptional(d.Tokens, d.Blacklist, d.Log), shopHandler.ListProducts)

	authed := r.Group("/", AuthRequired(d.Tokens, d.Blacklist, d.Log))
	{
		authed.GET("/cart", shopHandler.GetCart)
		authed.POST("/cart/items", shopHandler.AddToCart)
		authed.DELETE("/cart/items/:product_id", shopHandler.RemoveFromCart)

		authed.POST("/checkout/session", checkoutHandler.CreateSession)
		authed.GET("/checkout/success", checkoutHandler.Success)

		admin := authed.Group("/admin", AdminRequired())
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
		}
	}

	return r
}
