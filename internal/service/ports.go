package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	CustomerID uuid.UUID
	Role       string
	JTI        string
	Exp        time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// TokenBlacklist revokes session tokens on logout. Optional; a nil
// blacklist makes logout a client-side concern.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

// LineItem is one cart entry as submitted to the hosted payment provider.
// UnitAmountCents is the price in minor units.
type LineItem struct {
	Currency        string
	UnitAmountCents int64
	Name            string
	ImageURL        string
	Quantity        int64
}

type SessionRequest struct {
	Items      []LineItem
	SuccessURL string
	CancelURL  string
	CustomerID uuid.UUID
}

// CheckoutSession is the provider's opaque handle for a pending payment.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

type PaymentProvider interface {
	CreateSession(ctx context.Context, req SessionRequest) (CheckoutSession, error)
}

// MailProducer publishes transactional email events for the notification
// worker. Optional.
type MailProducer interface {
	SendEmail(ctx context.Context, key string, msg EmailMessage) error
}

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}
