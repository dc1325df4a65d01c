package persistence

import (
	"context"
	"errors"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tradeSortFields contains allowed sort fields for trade requests
var tradeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"status":     true,
}

// GormTradeRepository implements order.TradeRepository using GORM
type GormTradeRepository struct {
	db *gorm.DB
}

// NewGormTradeRepository creates a new GormTradeRepository
func NewGormTradeRepository(db *gorm.DB) *GormTradeRepository {
	return &GormTradeRepository{db: db}
}

// FindByID finds a trade request by its ID
func (r *GormTradeRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.TradeRequest, error) {
	var t order.TradeRequest
	if err := dbFromContext(ctx, r.db).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByOrder finds all trade requests on an order
func (r *GormTradeRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.TradeRequest, error) {
	var trades []order.TradeRequest
	if err := dbFromContext(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// FindByOrderLine finds all trade requests on a single order line
func (r *GormTradeRepository) FindByOrderLine(ctx context.Context, orderLineID uuid.UUID) ([]order.TradeRequest, error) {
	var trades []order.TradeRequest
	if err := dbFromContext(ctx, r.db).
		Where("order_line_id = ?", orderLineID).
		Order("created_at ASC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// FindByClient finds trade requests for a client matching the filter
func (r *GormTradeRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]order.TradeRequest, error) {
	var trades []order.TradeRequest
	query := dbFromContext(ctx, r.db).Where("client_id = ?", clientID)
	for key, value := range filter.Filters {
		if key == "status" {
			query = query.Where("status = ?", value)
		}
	}
	query = applyPagination(query, filter, tradeSortFields, "created_at DESC")

	if err := query.Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// Save creates or updates a trade request
func (r *GormTradeRepository) Save(ctx context.Context, t *order.TradeRequest) error {
	return dbFromContext(ctx, r.db).Save(t).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTradeRepository) SaveWithLock(ctx context.Context, t *order.TradeRequest) error {
	result := dbFromContext(ctx, r.db).
		Model(t).
		Where("id = ? AND version = ?", t.ID, t.Version-1).
		Updates(map[string]interface{}{
			"status":     t.Status,
			"coupon_id":  t.CouponID,
			"version":    t.Version,
			"updated_at": t.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormTradeRepository implements TradeRepository
var _ order.TradeRepository = (*GormTradeRepository)(nil)
