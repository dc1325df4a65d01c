package order

import (
	"fmt"
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a purchase
type Status string

const (
	StatusCreated          Status = "CREATED"
	StatusPaymentConfirmed Status = "PAYMENT_CONFIRMED"
	StatusInTransit        Status = "IN_TRANSIT"
	StatusDelivered        Status = "DELIVERED"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaymentConfirmed, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo checks if transitioning to the target status is allowed.
// Orders only move forward, one step at a time; Delivered is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusCreated:          {StatusPaymentConfirmed},
		StatusPaymentConfirmed: {StatusInTransit},
		StatusInTransit:        {StatusDelivered},
		StatusDelivered:        {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

var ErrInvalidTransition = shared.NewDomainError("INVALID_TRANSITION", "Order status transition not allowed")

// Line is a frozen snapshot of one cart line at checkout time. Later catalog
// price changes or cart edits never touch it.
type Line struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Title     string          `gorm:"size:200;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int64           `gorm:"not null;check:quantity >= 1"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "order_lines"
}

// NewLine freezes a product snapshot into an order line
func NewLine(productID uuid.UUID, title string, unitPrice valueobject.Money, quantity int64) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Line title cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return &Line{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Title:      title,
		UnitPrice:  unitPrice.Amount(),
		Quantity:   quantity,
	}, nil
}

// UnitPriceMoney returns the frozen unit price as a Money value object
func (l *Line) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(l.UnitPrice)
}

// Total returns unit price times quantity
func (l *Line) Total() valueobject.Money {
	return l.UnitPriceMoney().MultiplyByInt(l.Quantity)
}

// AppliedCoupon records one coupon consumed by an order
type AppliedCoupon struct {
	shared.BaseEntity
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CouponID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (AppliedCoupon) TableName() string {
	return "order_coupons"
}

// Order is a purchase with a frozen line snapshot. Stock was reserved while
// the lines sat in the cart, so status transitions never touch the ledger.
type Order struct {
	shared.BaseAggregateRoot
	ClientID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status         Status          `gorm:"size:30;not null;index"`
	Lines          []Line          `gorm:"foreignKey:OrderID"`
	AppliedCoupons []AppliedCoupon `gorm:"foreignKey:OrderID"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CardAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ChangeAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order in the Created state from frozen lines. The card
// amount starts at the full total until a discount is applied.
func NewOrder(clientID uuid.UUID, lines []Line) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Status:            StatusCreated,
		Lines:             lines,
	}

	total := valueobject.ZeroBRL()
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
		total = total.MustAdd(o.Lines[i].Total())
	}
	o.TotalAmount = total.Amount()
	o.CardAmount = total.Amount()
	return o, nil
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(o.TotalAmount)
}

// ApplyDiscount records the coupons consumed by this order together with the
// resulting card remainder and change owed. Only a freshly created order can
// take a discount.
func (o *Order) ApplyDiscount(couponIDs []uuid.UUID, discount, remainder, change valueobject.Money) error {
	if o.Status != StatusCreated {
		return shared.NewDomainError("INVALID_ORDER_STATE",
			fmt.Sprintf("Cannot apply a discount to an order in status %s", o.Status))
	}
	if discount.IsNegative() || remainder.IsNegative() || change.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount amounts cannot be negative")
	}

	o.AppliedCoupons = o.AppliedCoupons[:0]
	for _, id := range couponIDs {
		o.AppliedCoupons = append(o.AppliedCoupons, AppliedCoupon{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			CouponID:   id,
		})
	}
	o.DiscountAmount = discount.Amount()
	o.CardAmount = remainder.Amount()
	o.ChangeAmount = change.Amount()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Advance moves the order to the target status, enforcing the forward-only
// transition table
func (o *Order) Advance(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// IsDelivered returns true once the order reached its terminal state
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// LineByID finds a frozen line on the order
func (o *Order) LineByID(lineID uuid.UUID) (*Line, error) {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i], nil
		}
	}
	return nil, shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}
