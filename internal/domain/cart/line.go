package cart

import (
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// Line represents one (client, product, quantity) record in a client's cart.
// The structural invariant of the cart is that at most one Line exists per
// (client, product) pair; Consolidate repairs violations wherever they are
// observed.
type Line struct {
	shared.BaseAggregateRoot
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_lines_client_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_lines_client_product,priority:2"`
	Quantity  int64     `gorm:"not null;check:quantity >= 1"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "cart_lines"
}

// NewLine creates a new cart line
func NewLine(clientID, productID uuid.UUID, quantity int64) (*Line, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &Line{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		ProductID:         productID,
		Quantity:          quantity,
	}, nil
}

// IncreaseQuantity adds to the line quantity
func (l *Line) IncreaseQuantity(delta int64) error {
	if delta < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity delta must be at least 1")
	}
	l.Quantity += delta
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// SetQuantity replaces the line quantity. Dropping to zero is a removal,
// not an update, and is rejected here.
func (l *Line) SetQuantity(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1; remove the item instead")
	}
	l.Quantity = quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}
