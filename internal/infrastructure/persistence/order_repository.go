package persistence

import (
	"context"
	"errors"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderSortFields contains allowed sort fields for orders
var orderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"total_amount": true,
}

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines and applied coupons
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := dbFromContext(ctx, r.db).
		Preload("Lines").
		Preload("AppliedCoupons").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByClient finds orders for a client matching the filter
func (r *GormOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := dbFromContext(ctx, r.db).
		Preload("Lines").
		Preload("AppliedCoupons").
		Where("client_id = ?", clientID)
	query = applyOrderFilter(query, filter)
	query = applyPagination(query, filter, orderSortFields, "created_at DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := applyOrderFilter(dbFromContext(ctx, r.db).Preload("Lines").Preload("AppliedCoupons"), filter)
	query = applyPagination(query, filter, orderSortFields, "created_at DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilter(dbFromContext(ctx, r.db).Model(&order.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its lines and coupons
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return dbFromContext(ctx, r.db).Save(o).Error
}

// SaveWithLock saves with optimistic locking (version check). Lines and
// applied coupons are immutable after placement, so only header fields are
// written here.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	result := dbFromContext(ctx, r.db).
		Model(o).
		Where("id = ? AND version = ?", o.ID, o.Version-1).
		Updates(map[string]interface{}{
			"status":          o.Status,
			"discount_amount": o.DiscountAmount,
			"card_amount":     o.CardAmount,
			"change_amount":   o.ChangeAmount,
			"version":         o.Version,
			"updated_at":      o.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyOrderFilter applies field filters to the query
func applyOrderFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// Ensure GormOrderRepository implements Repository
var _ order.Repository = (*GormOrderRepository)(nil)
