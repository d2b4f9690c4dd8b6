package repository

import (
	"context"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepo interface {
	// ReserveIfFree claims a product for a customer. The insert races on the
	// partial unique index ux_reservations_product_unpaid, so exactly one of
	// any concurrent attempts wins; the rest report false.
	ReserveIfFree(ctx context.Context, productID, customerID uuid.UUID) (bool, error)
	// ReleaseOwned removes the caller's own unpaid reservation only.
	ReleaseOwned(ctx context.Context, productID, customerID uuid.UUID) (bool, error)

	ListUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error)
	// ProductIDsHeldByOthers returns the product ids of every reservation
	// (paid or not) not owned by customerID. Pass uuid.Nil for the anonymous
	// view, which excludes all reserved products.
	ProductIDsHeldByOthers(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error)

	// MarkPaidByCustomer flips all of the customer's unpaid reservations to
	// paid. Used by checkout completion.
	MarkPaidByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	// DeleteUnpaidOlderThan drops abandoned-cart reservations past their TTL.
	DeleteUnpaidOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type reservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) ReservationRepo { return &reservationRepo{db: db} }

func (r *reservationRepo) ReserveIfFree(ctx context.Context, productID, customerID uuid.UUID) (bool, error) {
	rec := models.Reservation{
		ProductID:  productID,
		CustomerID: customerID,
		Paid:       false,
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec)
	return tx.RowsAffected > 0, tx.Error
}

func (r *reservationRepo) ReleaseOwned(ctx context.Context, productID, customerID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("product_id = ? AND customer_id = ? AND NOT paid", productID, customerID).
		Delete(&models.Reservation{})
	return tx.RowsAffected > 0, tx.Error
}

func (r *reservationRepo) ListUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND NOT paid", customerID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *reservationRepo) ProductIDsHeldByOthers(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := r.db.WithContext(ctx).Model(&models.Reservation{})
	if customerID != uuid.Nil {
		q = q.Where("customer_id <> ?", customerID)
	}
	err := q.Pluck("product_id", &ids).Error
	return ids, err
}

func (r *reservationRepo) MarkPaidByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("customer_id = ? AND NOT paid", customerID).
		Update("paid", true)
	return tx.RowsAffected, tx.Error
}

func (r *reservationRepo) DeleteUnpaidOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("NOT paid AND created_at < ?", cutoff).
		Delete(&models.Reservation{})
	return tx.RowsAffected, tx.Error
}
