package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

type AccountService struct {
	customers repository.CustomerRepo
	hasher    PasswordHasher
	tokens    TokenProvider
	blacklist TokenBlacklist // nil when redis is disabled

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

func NewAccountService(
	customers repository.CustomerRepo,
	hasher PasswordHasher,
	tokens TokenProvider,
	blacklist TokenBlacklist,
	accessTTL time.Duration,
	log *zap.Logger,
) *AccountService {
	return &AccountService{
		customers: customers,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

type Session struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Register creates a customer account and logs it straight in. A duplicate
// email leaves the existing account untouched; the lower(email) unique index
// backs up the existence check under concurrency.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*models.Customer, Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	exists, err := s.customers.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, Session{}, err
	}
	if exists {
		return nil, Session{}, ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, Session{}, err
	}

	customer := &models.Customer{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(name),
		Role:     models.RoleCustomer,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, Session{}, err
	}

	s.log.Info("customer registered", zap.String("customer_id", customer.ID.String()))

	session, err := s.issueSession(ctx, customer)
	if err != nil {
		return nil, Session{}, err
	}
	return customer, session, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Customer, Session, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, Session{}, err
	}
	if customer == nil {
		return nil, Session{}, ErrNotFound
	}
	if !s.hasher.Compare(customer.Password, password) {
		return nil, Session{}, ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, customer)
	if err != nil {
		return nil, Session{}, err
	}
	return customer, session, nil
}

// Logout revokes the presented token until its natural expiry. Without a
// blacklist the token simply ages out client-side.
func (s *AccountService) Logout(ctx context.Context, rawToken string) error {
	if s.blacklist == nil {
		return nil
	}
	claims, err := s.tokens.ParseAndValidateAccess(ctx, rawToken)
	if err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}
	ttl := time.Until(claims.Exp)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.BlacklistToken(ctx, claims.JTI, ttl)
}

func (s *AccountService) issueSession(ctx context.Context, customer *models.Customer) (Session, error) {
	access, exp, err := s.tokens.SignAccess(ctx, customer.ID, string(customer.Role), s.accessTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: access, ExpiresAt: exp}, nil
}
