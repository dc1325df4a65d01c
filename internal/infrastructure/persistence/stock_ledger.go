package persistence

import (
	"context"
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockLedger implements catalog.StockLedger with single-row conditional
// updates. The guard `stock_quantity >= ?` in the reserve UPDATE is the only
// oversell protection; no read-then-write window exists.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Reserve atomically decrements stock by quantity
func (l *GormStockLedger) Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be at least 1")
	}

	db := dbFromContext(ctx, l.db)
	result := db.Model(&catalog.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing product from an insufficient balance.
		var count int64
		if err := db.Model(&catalog.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// Release atomically increments stock by quantity
func (l *GormStockLedger) Release(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be at least 1")
	}

	db := dbFromContext(ctx, l.db)
	result := db.Model(&catalog.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockLedger implements StockLedger
var _ catalog.StockLedger = (*GormStockLedger)(nil)
