package coupon

import (
	"fmt"
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a coupon
type Kind string

const (
	KindTradeRefund Kind = "TRADE_REFUND"
	KindPromotional Kind = "PROMOTIONAL"
)

// IsValid checks if the kind is valid
func (k Kind) IsValid() bool {
	return k == KindTradeRefund || k == KindPromotional
}

// Status represents the lifecycle state of a coupon
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusConsumed  Status = "CONSUMED"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusConsumed:
		return true
	}
	return false
}

// CanTransitionTo checks if transitioning to the target status is allowed.
// Consumed is terminal; Reserved can roll back to Available when the checkout
// backing the reservation is abandoned.
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusAvailable: {StatusReserved},
		StatusReserved:  {StatusConsumed, StatusAvailable},
		StatusConsumed:  {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

var (
	ErrCouponAlreadyUsed        = shared.NewDomainError("COUPON_ALREADY_USED", "Coupon is not available for use")
	ErrPromotionalLimitExceeded = shared.NewDomainError("PROMOTIONAL_LIMIT_EXCEEDED", "At most one promotional coupon may be applied per order")
)

// Coupon is a monetary voucher owned by a client. Trade-refund coupons are
// minted by the trade workflow; promotional coupons are loaded externally.
type Coupon struct {
	shared.BaseAggregateRoot
	Code           string          `gorm:"size:50;not null;uniqueIndex"`
	Value          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Kind           Kind            `gorm:"size:20;not null"`
	Status         Status          `gorm:"size:20;not null;index"`
	ClientID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TradeRequestID *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a new coupon in the Available state
func NewCoupon(code string, value valueobject.Money, kind Kind, clientID uuid.UUID) (*Coupon, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Invalid coupon kind: %s", kind))
	}
	if !value.IsPositive() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Coupon value must be positive")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Value:             value.Amount(),
		Kind:              kind,
		Status:            StatusAvailable,
		ClientID:          clientID,
	}, nil
}

// NewTradeRefundCoupon mints the coupon compensating an approved trade
func NewTradeRefundCoupon(code string, value valueobject.Money, clientID, tradeRequestID uuid.UUID) (*Coupon, error) {
	c, err := NewCoupon(code, value, KindTradeRefund, clientID)
	if err != nil {
		return nil, err
	}
	if tradeRequestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRADE", "Trade request ID cannot be empty")
	}
	c.TradeRequestID = &tradeRequestID
	return c, nil
}

// ValueMoney returns the coupon value as a Money value object
func (c *Coupon) ValueMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(c.Value)
}

// IsAvailable returns true if the coupon can be applied to a checkout
func (c *Coupon) IsAvailable() bool {
	return c.Status == StatusAvailable
}

// Reserve marks the coupon as tentatively applied to an in-progress checkout
func (c *Coupon) Reserve() error {
	if !c.Status.CanTransitionTo(StatusReserved) {
		return ErrCouponAlreadyUsed
	}
	c.Status = StatusReserved
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Consume finalizes the coupon on checkout completion
func (c *Coupon) Consume() error {
	if !c.Status.CanTransitionTo(StatusConsumed) {
		return shared.NewDomainError("INVALID_COUPON_STATE",
			fmt.Sprintf("Cannot consume coupon in status %s", c.Status))
	}
	c.Status = StatusConsumed
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ReleaseToAvailable returns a reserved coupon to circulation when the cart
// backing its checkout is emptied
func (c *Coupon) ReleaseToAvailable() error {
	if !c.Status.CanTransitionTo(StatusAvailable) {
		return shared.NewDomainError("INVALID_COUPON_STATE",
			fmt.Sprintf("Cannot release coupon in status %s", c.Status))
	}
	c.Status = StatusAvailable
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
