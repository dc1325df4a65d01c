package coupon

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for coupons
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Coupon, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Coupon, error)
	FindByClientAndStatus(ctx context.Context, clientID uuid.UUID, status Status) ([]Coupon, error)
	FindByTradeRequest(ctx context.Context, tradeRequestID uuid.UUID) (*Coupon, error)
	Save(ctx context.Context, c *Coupon) error
	SaveWithLock(ctx context.Context, c *Coupon) error
}
