package service

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxCustomerIDKey ctxKey = "customerID"
	ctxRoleKey       ctxKey = "role"
)

func WithCustomerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxCustomerIDKey, id)
}

func CustomerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ctxCustomerIDKey).(uuid.UUID)
	return v, ok
}

func WithRole(ctx context.Context, r models.Role) context.Context {
	return context.WithValue(ctx, ctxRoleKey, r)
}

func RoleFromContext(ctx context.Context) (models.Role, bool) {
	v, ok := ctx.Value(ctxRoleKey).(models.Role)
	return v, ok
}
