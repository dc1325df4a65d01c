package cart

import (
	"context"

	"github.com/google/uuid"
)

// LineRepository defines persistence operations for cart lines. Lookups by
// (client, product) return a slice on purpose: the store may hold duplicate
// lines for a pair, and callers consolidate whatever comes back.
type LineRepository interface {
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Line, error)
	FindByClientAndProduct(ctx context.Context, clientID, productID uuid.UUID) ([]Line, error)
	Save(ctx context.Context, line *Line) error
	SaveWithLock(ctx context.Context, line *Line) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	DeleteByClient(ctx context.Context, clientID uuid.UUID) error
}
