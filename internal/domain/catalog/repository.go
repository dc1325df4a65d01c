package catalog

import (
	"context"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
}

// ProductCache holds read-side product snapshots for catalog browsing.
// A cache miss returns (nil, nil); callers fall back to the repository.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Set(ctx context.Context, product *Product) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// StockLedger is the single authority over stock counts. Both operations are
// single-row conditional updates; callers that hit InsufficientStock must
// re-read current state and re-decide rather than retry blindly.
type StockLedger interface {
	// Reserve atomically decrements stock by quantity, failing with
	// shared.ErrInsufficientStock when the decrement would go negative.
	Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error

	// Release atomically increments stock by quantity. Used on line removal,
	// cart emptying and trade approval.
	Release(ctx context.Context, productID uuid.UUID, quantity int64) error
}
