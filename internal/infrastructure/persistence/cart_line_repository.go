package persistence

import (
	"context"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/cart"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLineRepository implements cart.LineRepository using GORM
type GormLineRepository struct {
	db *gorm.DB
}

// NewGormLineRepository creates a new GormLineRepository
func NewGormLineRepository(db *gorm.DB) *GormLineRepository {
	return &GormLineRepository{db: db}
}

// FindByClient finds all cart lines for a client, oldest first
func (r *GormLineRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]cart.Line, error) {
	var lines []cart.Line
	if err := dbFromContext(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByClientAndProduct finds all cart lines for a (client, product) pair.
// More than one row indicates a duplicate that the caller must consolidate,
// so the result is a slice rather than a single line.
func (r *GormLineRepository) FindByClientAndProduct(ctx context.Context, clientID, productID uuid.UUID) ([]cart.Line, error) {
	var lines []cart.Line
	if err := dbFromContext(ctx, r.db).
		Where("client_id = ? AND product_id = ?", clientID, productID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save creates or updates a cart line
func (r *GormLineRepository) Save(ctx context.Context, line *cart.Line) error {
	return dbFromContext(ctx, r.db).Save(line).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormLineRepository) SaveWithLock(ctx context.Context, line *cart.Line) error {
	result := dbFromContext(ctx, r.db).
		Model(line).
		Where("id = ? AND version = ?", line.ID, line.Version-1).
		Updates(map[string]interface{}{
			"quantity":   line.Quantity,
			"version":    line.Version,
			"updated_at": line.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a cart line by ID
func (r *GormLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&cart.Line{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByIDs deletes multiple cart lines by ID
func (r *GormLineRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).Delete(&cart.Line{}, "id IN ?", ids).Error
}

// DeleteByClient deletes all cart lines for a client
func (r *GormLineRepository) DeleteByClient(ctx context.Context, clientID uuid.UUID) error {
	return dbFromContext(ctx, r.db).Delete(&cart.Line{}, "client_id = ?", clientID).Error
}

// Ensure GormLineRepository implements LineRepository
var _ cart.LineRepository = (*GormLineRepository)(nil)
