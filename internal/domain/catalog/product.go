package catalog

import (
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a comic in the catalog. Catalog CRUD is owned by the
// content-management backend; this core reads the price and mutates stock
// through the StockLedger only.
type Product struct {
	shared.BaseAggregateRoot
	Title         string          `gorm:"size:200;not null"`
	Code          string          `gorm:"size:50;not null;uniqueIndex"`
	Author        string          `gorm:"size:120"`
	Publisher     string          `gorm:"size:120"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	StockQuantity int64           `gorm:"not null;default:0;check:stock_quantity >= 0"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(title, code string, unitPrice valueobject.Money) (*Product, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Code:              code,
		UnitPrice:         unitPrice.Amount(),
		StockQuantity:     0,
		Active:            true,
	}, nil
}

// UnitPriceMoney returns the unit price as a Money value object
func (p *Product) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.UnitPrice)
}

// CanFulfill returns true if current stock covers the requested quantity
func (p *Product) CanFulfill(quantity int64) bool {
	return quantity > 0 && p.StockQuantity >= quantity
}

// HasStock returns true if there is any stock available
func (p *Product) HasStock() bool {
	return p.StockQuantity > 0
}

// Deactivate removes the product from sale. Deactivation is driven by an
// external batch process; the method exists so admin tooling shares one path.
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate puts the product back on sale
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
