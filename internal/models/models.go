package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleAdmin    Role = "ROLE_ADMIN"
)

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email    string    `gorm:"not null"` // uniqueness via functional index on lower(email)
	Password string    `gorm:"not null"` // bcrypt hash
	Name     string    `gorm:"type:text;not null"`
	Role     Role      `gorm:"type:text;not null;default:'ROLE_CUSTOMER';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Customer) TableName() string { return "customers" }

type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string    `gorm:"type:text;not null"`
	Description  string    `gorm:"type:text"`
	PriceCents   int64     `gorm:"not null;default:0"`
	CurrencyCode string    `gorm:"type:char(3);not null;default:'GBP'"`
	ImageURL     string    `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

// Reservation links one customer to one product, pending payment. At most
// one unpaid reservation may exist per product; a partial unique index on
// (product_id) WHERE NOT paid enforces that in the database.
type Reservation struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Paid       bool      `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (Reservation) TableName() string { return "reservations" }
