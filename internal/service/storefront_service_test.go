package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func identityCtx(customerID uuid.UUID, role models.Role) context.Context {
	ctx := service.WithCustomerID(context.Background(), customerID)
	return service.WithRole(ctx, role)
}

func TestStorefrontService_ListVisibleProducts_HidesOtherCarts(t *testing.T) {
	viewerID := uuid.New()
	mine := models.Product{ID: uuid.New(), Title: "Mine"}
	free := models.Product{ID: uuid.New(), Title: "Free"}
	taken := models.Product{ID: uuid.New(), Title: "Taken"}

	products := &MockProductRepo{}
	products.ListFunc = func(ctx context.Context) ([]models.Product, error) {
		return []models.Product{mine, free, taken}, nil
	}

	reservations := &MockReservationRepo{}
	reservations.ProductIDsHeldByOthersFunc = func(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
		if customerID != viewerID {
			t.Errorf("Expected viewer %s, got %s", viewerID, customerID)
		}
		return []uuid.UUID{taken.ID}, nil
	}
	reservations.ListUnpaidByCustomerFunc = func(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error) {
		return []models.Reservation{{ProductID: mine.ID, CustomerID: viewerID}}, nil
	}

	svc := service.NewStorefrontService(products, reservations, "gbp", zap.NewNop())

	views, err := svc.ListVisibleProducts(context.Background(), &viewerID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 visible products, got %d", len(views))
	}
	if views[0].Product.ID != mine.ID || !views[0].InCart {
		t.Errorf("Expected own reserved product first with InCart=true, got %+v", views[0])
	}
	if views[1].Product.ID != free.ID || views[1].InCart {
		t.Errorf("Expected free product without InCart, got %+v", views[1])
	}
}

func TestStorefrontService_ListVisibleProducts_Anonymous(t *testing.T) {
	free := models.Product{ID: uuid.New(), Title: "Free"}
	taken := models.Product{ID: uuid.New(), Title: "Taken"}

	products := &MockProductRepo{}
	products.ListFunc = func(ctx context.Context) ([]models.Product, error) {
		return []models.Product{free, taken}, nil
	}

	reservations := &MockReservationRepo{}
	reservations.ProductIDsHeldByOthersFunc = func(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
		if customerID != uuid.Nil {
			t.Errorf("Expected uuid.Nil for anonymous viewer, got %s", customerID)
		}
		return []uuid.UUID{taken.ID}, nil
	}
	reservations.ListUnpaidByCustomerFunc = func(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error) {
		t.Error("Expected no cart lookup for anonymous viewer")
		return nil, nil
	}

	svc := service.NewStorefrontService(products, reservations, "gbp", zap.NewNop())

	views, err := svc.ListVisibleProducts(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(views) != 1 || views[0].Product.ID != free.ID {
		t.Fatalf("Expected only the unreserved product, got %+v", views)
	}
}

func TestStorefrontService_CartContents_SumsPrices(t *testing.T) {
	customerID := uuid.New()
	first := models.Product{ID: uuid.New(), Title: "First", PriceCents: 500}
	second := models.Product{ID: uuid.New(), Title: "Second", PriceCents: 350}

	reservations := &MockReservationRepo{}
	reservations.ListUnpaidByCustomerFunc = func(ctx context.Context, id uuid.UUID) ([]models.Reservation, error) {
		return []models.Reservation{
			{ProductID: first.ID, CustomerID: id},
			{ProductID: second.ID, CustomerID: id},
		}, nil
	}

	products := &MockProductRepo{}
	products.BatchGetByIDsFunc = func(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
		// Storage order differs from reservation order.
		return []models.Product{second, first}, nil
	}

	svc := service.NewStorefrontService(products, reservations, "gbp", zap.NewNop())

	cart, err := svc.CartContents(identityCtx(customerID, models.RoleCustomer))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cart.TotalCents != 850 {
		t.Errorf("Expected total 850, got %d", cart.TotalCents)
	}
	if len(cart.Products) != 2 || cart.Products[0].ID != first.ID {
		t.Errorf("Expected reservation order preserved, got %+v", cart.Products)
	}
}

func TestStorefrontService_CartContents_RequiresIdentity(t *testing.T) {
	svc := service.NewStorefrontService(&MockProductRepo{}, &MockReservationRepo{}, "gbp", zap.NewNop())

	_, err := svc.CartContents(context.Background())
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestStorefrontService_AddToCart_Success(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()

	products := &MockProductRepo{}
	products.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return &models.Product{ID: id, Title: "Thing"}, nil
	}

	reservations := &MockReservationRepo{}
	reservations.ReserveIfFreeFunc = func(ctx context.Context, pid, cid uuid.UUID) (bool, error) {
		if pid != productID || cid != customerID {
			t.Errorf("Expected reserve(%s, %s), got (%s, %s)", productID, customerID, pid, cid)
		}
		return true, nil
	}

	svc := service.NewStorefrontService(products, reservations, "gbp", zap.NewNop())

	if err := svc.AddToCart(identityCtx(customerID, models.RoleCustomer), productID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestStorefrontService_AddToCart_AlreadyReserved(t *testing.T) {
	products := &MockProductRepo{}
	products.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return &models.Product{ID: id}, nil
	}

	reservations := &MockReservationRepo{}
	reservations.ReserveIfFreeFunc = func(ctx context.Context, pid, cid uuid.UUID) (bool, error) {
		return false, nil
	}

	svc := service.NewStorefrontService(products, reservations, "gbp", zap.NewNop())

	err := svc.AddToCart(identityCtx(uuid.New(), models.RoleCustomer), uuid.New())
	if !errors.Is(err, service.ErrProductReserved) {
		t.Errorf("Expected ErrProductReserved, got %v", err)
	}
}

func TestStorefrontService_AddToCart_UnknownProduct(t *testing.T) {
	products := &MockProductRepo{}
	products.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return nil, nil
	}

	svc := service.NewStorefrontService(products, &MockReservationRepo{}, "gbp", zap.NewNop())

	err := svc.AddToCart(identityCtx(uuid.New(), models.RoleCustomer), uuid.New())
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStorefrontService_RemoveFromCart_OnlyOwnReservation(t *testing.T) {
	reservations := &MockReservationRepo{}
	reservations.ReleaseOwnedFunc = func(ctx context.Context, pid, cid uuid.UUID) (bool, error) {
		return false, nil
	}

	svc := service.NewStorefrontService(&MockProductRepo{}, reservations, "gbp", zap.NewNop())

	err := svc.RemoveFromCart(identityCtx(uuid.New(), models.RoleCustomer), uuid.New())
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound when nothing owned was released, got %v", err)
	}
}

func TestStorefrontService_CreateProduct_AdminOnly(t *testing.T) {
	products := &MockProductRepo{}
	products.CreateFunc = func(ctx context.Context, p *models.Product) error {
		t.Error("Expected no create call for a non-admin")
		return nil
	}

	svc := service.NewStorefrontService(products, &MockReservationRepo{}, "gbp", zap.NewNop())

	_, err := svc.CreateProduct(identityCtx(uuid.New(), models.RoleCustomer), service.ProductInput{Title: "X", PriceCents: 100})
	if !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}

	_, err = svc.CreateProduct(context.Background(), service.ProductInput{Title: "X", PriceCents: 100})
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for anonymous caller, got %v", err)
	}
}

func TestStorefrontService_CreateProduct_Success(t *testing.T) {
	products := &MockProductRepo{}
	products.CreateFunc = func(ctx context.Context, p *models.Product) error {
		if p.CurrencyCode != "GBP" {
			t.Errorf("Expected currency GBP, got %s", p.CurrencyCode)
		}
		if p.Title != "Lamp" {
			t.Errorf("Expected trimmed title Lamp, got %q", p.Title)
		}
		p.ID = uuid.New()
		return nil
	}

	svc := service.NewStorefrontService(products, &MockReservationRepo{}, "gbp", zap.NewNop())

	p, err := svc.CreateProduct(identityCtx(uuid.New(), models.RoleAdmin), service.ProductInput{
		Title:      " Lamp ",
		PriceCents: 1299,
		ImageURL:   "https://img.example/lamp.png",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("Expected assigned product id")
	}
}

func TestStorefrontService_DeleteProduct_AdminOnly(t *testing.T) {
	svc := service.NewStorefrontService(&MockProductRepo{}, &MockReservationRepo{}, "gbp", zap.NewNop())

	err := svc.DeleteProduct(identityCtx(uuid.New(), models.RoleCustomer), uuid.New())
	if !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestStorefrontService_DeleteProduct_NotFound(t *testing.T) {
	products := &MockProductRepo{}
	products.DeleteFunc = func(ctx context.Context, id uuid.UUID) (bool, error) {
		return false, nil
	}

	svc := service.NewStorefrontService(products, &MockReservationRepo{}, "gbp", zap.NewNop())

	err := svc.DeleteProduct(identityCtx(uuid.New(), models.RoleAdmin), uuid.New())
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
