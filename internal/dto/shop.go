package dto

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	CustomerID  string `json:"customer_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

type ProductResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"price_cents"`
	CurrencyCode string `json:"currency_code"`
	ImageURL     string `json:"image_url"`
	InCart       bool   `json:"in_cart"`
}

type CartResponse struct {
	Items      []ProductResponse `json:"items"`
	TotalCents int64             `json:"total_cents"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

type CreateProductRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	ImageURL    string `json:"image_url" binding:"required,url"`
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

type CheckoutCompleteResponse struct {
	ReservationsSettled int64 `json:"reservations_settled"`
}
