package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService converts a customer's unpaid reservations into a hosted
// payment session and settles them when the provider redirects back.
type CheckoutService struct {
	customers    repository.CustomerRepo
	products     repository.ProductRepo
	reservations repository.ReservationRepo
	payments     PaymentProvider
	mail         MailProducer // nil when kafka is disabled

	baseURL  string
	currency string

	log *zap.Logger
}

func NewCheckoutService(
	customers repository.CustomerRepo,
	products repository.ProductRepo,
	reservations repository.ReservationRepo,
	payments PaymentProvider,
	mail MailProducer,
	baseURL, currency string,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		customers:    customers,
		products:     products,
		reservations: reservations,
		payments:     payments,
		mail:         mail,
		baseURL:      strings.TrimRight(baseURL, "/"),
		currency:     strings.ToLower(currency),
		log:          log,
	}
}

// CreateCheckoutSession submits one line item per unpaid reservation to the
// payment provider and returns the provider's session handle. The call is
// not retried and carries no idempotency key; a duplicate client submission
// creates a duplicate (unpaid) session at the provider.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context) (CheckoutSession, error) {
	customerID, ok := CustomerIDFromContext(ctx)
	if !ok {
		return CheckoutSession{}, ErrUnauthorized
	}

	reservations, err := s.reservations.ListUnpaidByCustomer(ctx, customerID)
	if err != nil {
		return CheckoutSession{}, err
	}
	if len(reservations) == 0 {
		return CheckoutSession{}, ErrCartEmpty
	}

	ids := make([]uuid.UUID, 0, len(reservations))
	for _, res := range reservations {
		ids = append(ids, res.ProductID)
	}
	products, err := s.products.BatchGetByIDs(ctx, ids)
	if err != nil {
		return CheckoutSession{}, err
	}

	items := make([]LineItem, 0, len(products))
	for _, p := range products {
		items = append(items, LineItem{
			Currency:        s.currency,
			UnitAmountCents: p.PriceCents,
			Name:            p.Title,
			ImageURL:        p.ImageURL,
			Quantity:        1,
		})
	}

	session, err := s.payments.CreateSession(ctx, SessionRequest{
		Items:      items,
		SuccessURL: s.baseURL + "/checkout/success",
		CancelURL:  s.baseURL + "/cart",
		CustomerID: customerID,
	})
	if err != nil {
		s.log.Warn("payment session creation failed",
			zap.String("customer_id", customerID.String()), zap.Error(err))
		return CheckoutSession{}, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	s.log.Info("checkout session created",
		zap.String("customer_id", customerID.String()),
		zap.String("session_id", session.ID),
		zap.Int("items", len(items)))
	return session, nil
}

// CompleteCheckout marks the caller's unpaid reservations paid after the
// provider redirects to the success URL, then emits an order-confirmation
// email event. Returns the number of reservations settled; zero when there
// was nothing pending (e.g. the callback was replayed).
func (s *CheckoutService) CompleteCheckout(ctx context.Context) (int64, error) {
	customerID, ok := CustomerIDFromContext(ctx)
	if !ok {
		return 0, ErrUnauthorized
	}

	settled, err := s.reservations.MarkPaidByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if settled == 0 {
		return 0, nil
	}

	s.log.Info("checkout completed",
		zap.String("customer_id", customerID.String()),
		zap.Int64("reservations_settled", settled))

	if s.mail != nil {
		customer, err := s.customers.GetByID(ctx, customerID)
		if err != nil || customer == nil {
			s.log.Warn("could not load customer for confirmation email", zap.Error(err))
			return settled, nil
		}
		msg := EmailMessage{
			To:       customer.Email,
			Subject:  "Your order is confirmed",
			Template: "order_confirmed",
			Data: map[string]any{
				"name":  customer.Name,
				"items": settled,
			},
		}
		if err := s.mail.SendEmail(ctx, customerID.String(), msg); err != nil {
			// Email is best-effort; the purchase already settled.
			s.log.Warn("failed to publish confirmation email", zap.Error(err))
		}
	}

	return settled, nil
}
