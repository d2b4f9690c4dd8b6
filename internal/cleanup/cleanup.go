package cleanup

import (
	"context"
	"time"

	"storefront/internal/repository"

	"go.uber.org/zap"
)

// CleanupService releases abandoned carts: unpaid reservations older than
// the configured TTL go back to the catalog.
type CleanupService struct {
	reservations repository.ReservationRepo
	ttl          time.Duration
	now          func() time.Time
	log          *zap.Logger
}

func NewCleanupService(reservations repository.ReservationRepo, ttl time.Duration, log *zap.Logger) *CleanupService {
	return &CleanupService{
		reservations: reservations,
		ttl:          ttl,
		now:          time.Now,
		log:          log,
	}
}

func (c *CleanupService) ReleaseExpiredReservations(ctx context.Context) error {
	cutoff := c.now().Add(-c.ttl)

	released, err := c.reservations.DeleteUnpaidOlderThan(ctx, cutoff)
	if err != nil {
		c.log.Error("failed to release expired reservations", zap.Error(err))
		return err
	}
	if released > 0 {
		c.log.Info("released expired reservations", zap.Int64("count", released))
	}
	return nil
}
