package service

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorefrontService computes the per-viewer visible catalog, manages the
// cart (reservations), and carries the admin catalog operations.
type StorefrontService struct {
	products     repository.ProductRepo
	reservations repository.ReservationRepo
	currency     string
	log          *zap.Logger
}

func NewStorefrontService(
	products repository.ProductRepo,
	reservations repository.ReservationRepo,
	currency string,
	log *zap.Logger,
) *StorefrontService {
	return &StorefrontService{
		products:     products,
		reservations: reservations,
		currency:     strings.ToUpper(currency),
		log:          log,
	}
}

type ProductView struct {
	Product models.Product
	// InCart marks the viewer's own unpaid reservation.
	InCart bool
}

type CartView struct {
	Products   []models.Product
	TotalCents int64
}

// ListVisibleProducts returns the catalog minus products held by other
// customers. The viewer's own unpaid items stay visible, flagged InCart.
// A nil viewer is anonymous and sees only unreserved products.
func (s *StorefrontService) ListVisibleProducts(ctx context.Context, viewer *uuid.UUID) ([]ProductView, error) {
	viewerID := uuid.Nil
	if viewer != nil {
		viewerID = *viewer
	}

	heldByOthers, err := s.reservations.ProductIDsHeldByOthers(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	hidden := make(map[uuid.UUID]struct{}, len(heldByOthers))
	for _, id := range heldByOthers {
		hidden[id] = struct{}{}
	}

	inCart := map[uuid.UUID]struct{}{}
	if viewer != nil {
		own, err := s.reservations.ListUnpaidByCustomer(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for _, res := range own {
			inCart[res.ProductID] = struct{}{}
		}
	}

	catalog, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(catalog))
	for _, p := range catalog {
		if _, held := hidden[p.ID]; held {
			continue
		}
		_, own := inCart[p.ID]
		views = append(views, ProductView{Product: p, InCart: own})
	}
	return views, nil
}

// CartContents returns the viewer's unpaid reservations as products plus
// their price sum. Anonymous callers get ErrUnauthorized.
func (s *StorefrontService) CartContents(ctx context.Context) (CartView, error) {
	customerID, ok := CustomerIDFromContext(ctx)
	if !ok {
		return CartView{}, ErrUnauthorized
	}

	reservations, err := s.reservations.ListUnpaidByCustomer(ctx, customerID)
	if err != nil {
		return CartView{}, err
	}

	ids := make([]uuid.UUID, 0, len(reservations))
	for _, res := range reservations {
		ids = append(ids, res.ProductID)
	}

	products, err := s.products.BatchGetByIDs(ctx, ids)
	if err != nil {
		return CartView{}, err
	}

	// Preserve reservation order.
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	view := CartView{Products: make([]models.Product, 0, len(ids))}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		view.Products = append(view.Products, p)
		view.TotalCents += p.PriceCents
	}
	return view, nil
}

// AddToCart claims a product for the caller. The claim is atomic: when any
// unpaid reservation already exists for the product (the caller's included),
// ErrProductReserved is returned.
func (s *StorefrontService) AddToCart(ctx context.Context, productID uuid.UUID) error {
	customerID, ok := CustomerIDFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	reserved, err := s.reservations.ReserveIfFree(ctx, productID, customerID)
	if err != nil {
		return err
	}
	if !reserved {
		return ErrProductReserved
	}

	s.log.Info("product reserved",
		zap.String("product_id", productID.String()),
		zap.String("customer_id", customerID.String()))
	return nil
}

// RemoveFromCart releases the caller's own reservation. Nothing owned by
// another customer can be released here.
func (s *StorefrontService) RemoveFromCart(ctx context.Context, productID uuid.UUID) error {
	customerID, ok := CustomerIDFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	released, err := s.reservations.ReleaseOwned(ctx, productID, customerID)
	if err != nil {
		return err
	}
	if !released {
		return ErrNotFound
	}

	s.log.Info("reservation released",
		zap.String("product_id", productID.String()),
		zap.String("customer_id", customerID.String()))
	return nil
}

type ProductInput struct {
	Title       string
	Description string
	PriceCents  int64
	ImageURL    string
}

// CreateProduct adds a catalog entry. Admin only.
func (s *StorefrontService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	p := &models.Product{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		PriceCents:   in.PriceCents,
		CurrencyCode: s.currency,
		ImageURL:     strings.TrimSpace(in.ImageURL),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.String("product_id", p.ID.String()))
	return p, nil
}

// DeleteProduct removes a catalog entry. Admin only. Reservations on the
// product are removed by the FK cascade.
func (s *StorefrontService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	deleted, err := s.products.Delete(ctx, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.log.Info("product deleted", zap.String("product_id", productID.String()))
	return nil
}

func (s *StorefrontService) requireAdmin(ctx context.Context) error {
	if _, ok := CustomerIDFromContext(ctx); !ok {
		return ErrUnauthorized
	}
	role, ok := RoleFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	if role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
