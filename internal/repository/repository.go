package repository

import "gorm.io/gorm"

type Repository struct {
	DB           *gorm.DB
	Customers    CustomerRepo
	Products     ProductRepo
	Reservations ReservationRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		Customers:    NewCustomerRepo(db),
		Products:     NewProductRepo(db),
		Reservations: NewReservationRepo(db),
	}
}
