package service

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProductReserved = errors.New("product is already reserved")
	ErrCartEmpty       = errors.New("cart is empty")

	ErrPaymentProvider = errors.New("payment provider error")
)
