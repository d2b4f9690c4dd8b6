package service_test

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/google/uuid"
)

// Func-field mocks for all service dependencies.

type MockCustomerRepo struct {
	CreateFunc        func(ctx context.Context, c *models.Customer) error
	GetByEmailFunc    func(ctx context.Context, email string) (*models.Customer, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCustomerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type MockProductRepo struct {
	CreateFunc        func(ctx context.Context, p *models.Product) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc          func(ctx context.Context) ([]models.Product, error)
	BatchGetByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context) ([]models.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if m.BatchGetByIDsFunc != nil {
		return m.BatchGetByIDsFunc(ctx, ids)
	}
	return []models.Product{}, nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

type MockReservationRepo struct {
	ReserveIfFreeFunc          func(ctx context.Context, productID, customerID uuid.UUID) (bool, error)
	ReleaseOwnedFunc           func(ctx context.Context, productID, customerID uuid.UUID) (bool, error)
	ListUnpaidByCustomerFunc   func(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error)
	ProductIDsHeldByOthersFunc func(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error)
	MarkPaidByCustomerFunc     func(ctx context.Context, customerID uuid.UUID) (int64, error)
	DeleteUnpaidOlderThanFunc  func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockReservationRepo) ReserveIfFree(ctx context.Context, productID, customerID uuid.UUID) (bool, error) {
	if m.ReserveIfFreeFunc != nil {
		return m.ReserveIfFreeFunc(ctx, productID, customerID)
	}
	return true, nil
}

func (m *MockReservationRepo) ReleaseOwned(ctx context.Context, productID, customerID uuid.UUID) (bool, error) {
	if m.ReleaseOwnedFunc != nil {
		return m.ReleaseOwnedFunc(ctx, productID, customerID)
	}
	return true, nil
}

func (m *MockReservationRepo) ListUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error) {
	if m.ListUnpaidByCustomerFunc != nil {
		return m.ListUnpaidByCustomerFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *MockReservationRepo) ProductIDsHeldByOthers(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	if m.ProductIDsHeldByOthersFunc != nil {
		return m.ProductIDsHeldByOthersFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *MockReservationRepo) MarkPaidByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	if m.MarkPaidByCustomerFunc != nil {
		return m.MarkPaidByCustomerFunc(ctx, customerID)
	}
	return 0, nil
}

func (m *MockReservationRepo) DeleteUnpaidOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteUnpaidOlderThanFunc != nil {
		return m.DeleteUnpaidOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

type MockPasswordHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed_"+password
}

type MockTokenProvider struct {
	SignAccessFunc             func(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateAccessFunc func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokenProvider) SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(ctx, sub, role, ttl)
	}
	return "access_token", time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) ParseAndValidateAccess(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseAndValidateAccessFunc != nil {
		return m.ParseAndValidateAccessFunc(ctx, token)
	}
	return nil, nil
}

type MockBlacklist struct {
	BlacklistTokenFunc     func(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenBlacklistedFunc func(ctx context.Context, jti string) (bool, error)
}

func (m *MockBlacklist) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if m.BlacklistTokenFunc != nil {
		return m.BlacklistTokenFunc(ctx, jti, ttl)
	}
	return nil
}

func (m *MockBlacklist) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	if m.IsTokenBlacklistedFunc != nil {
		return m.IsTokenBlacklistedFunc(ctx, jti)
	}
	return false, nil
}

type MockPaymentProvider struct {
	CreateSessionFunc func(ctx context.Context, req service.SessionRequest) (service.CheckoutSession, error)
}

func (m *MockPaymentProvider) CreateSession(ctx context.Context, req service.SessionRequest) (service.CheckoutSession, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, req)
	}
	return service.CheckoutSession{ID: "cs_test", RedirectURL: "https://pay.example/cs_test"}, nil
}

type MockMailProducer struct {
	SendEmailFunc func(ctx context.Context, key string, msg service.EmailMessage) error
}

func (m *MockMailProducer) SendEmail(ctx context.Context, key string, msg service.EmailMessage) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, key, msg)
	}
	return nil
}
