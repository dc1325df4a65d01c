package order

import (
	"context"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, o *Order) error
	SaveWithLock(ctx context.Context, o *Order) error
}

// TradeRepository defines persistence operations for trade requests
type TradeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TradeRequest, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]TradeRequest, error)
	FindByOrderLine(ctx context.Context, orderLineID uuid.UUID) ([]TradeRequest, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]TradeRequest, error)
	Save(ctx context.Context, t *TradeRequest) error
	SaveWithLock(ctx context.Context, t *TradeRequest) error
}
