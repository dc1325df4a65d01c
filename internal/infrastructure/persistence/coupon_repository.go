package persistence

import (
	"context"
	"errors"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCouponRepository implements coupon.Repository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByID finds a coupon by its ID
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	var c coupon.Coupon
	if err := dbFromContext(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByCode finds a coupon by its code
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	if err := dbFromContext(ctx, r.db).Where("code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByIDs finds multiple coupons by their IDs
func (r *GormCouponRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]coupon.Coupon, error) {
	if len(ids) == 0 {
		return []coupon.Coupon{}, nil
	}

	var coupons []coupon.Coupon
	if err := dbFromContext(ctx, r.db).Where("id IN ?", ids).Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// FindByClient finds all coupons belonging to a client
func (r *GormCouponRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]coupon.Coupon, error) {
	var coupons []coupon.Coupon
	if err := dbFromContext(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// FindByClientAndStatus finds a client's coupons in the given status
func (r *GormCouponRepository) FindByClientAndStatus(ctx context.Context, clientID uuid.UUID, status coupon.Status) ([]coupon.Coupon, error) {
	var coupons []coupon.Coupon
	if err := dbFromContext(ctx, r.db).
		Where("client_id = ? AND status = ?", clientID, status).
		Order("created_at ASC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// FindByTradeRequest finds the refund coupon minted for a trade request
func (r *GormCouponRepository) FindByTradeRequest(ctx context.Context, tradeRequestID uuid.UUID) (*coupon.Coupon, error) {
	var c coupon.Coupon
	if err := dbFromContext(ctx, r.db).
		Where("trade_request_id = ?", tradeRequestID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	return dbFromContext(ctx, r.db).Save(c).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormCouponRepository) SaveWithLock(ctx context.Context, c *coupon.Coupon) error {
	result := dbFromContext(ctx, r.db).
		Model(c).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Updates(map[string]interface{}{
			"status":     c.Status,
			"version":    c.Version,
			"updated_at": c.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormCouponRepository implements Repository
var _ coupon.Repository = (*GormCouponRepository)(nil)
