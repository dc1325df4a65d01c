package order

import (
	"fmt"
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TradeStatus represents the lifecycle state of a trade (refund) request
type TradeStatus string

const (
	TradeStatusPending         TradeStatus = "PENDING"
	TradeStatusApproved        TradeStatus = "APPROVED"
	TradeStatusCouponGenerated TradeStatus = "COUPON_GENERATED"
)

// IsValid checks if the trade status is valid
func (s TradeStatus) IsValid() bool {
	switch s {
	case TradeStatusPending, TradeStatusApproved, TradeStatusCouponGenerated:
		return true
	}
	return false
}

// CanTransitionTo checks if transitioning to the target status is allowed
func (s TradeStatus) CanTransitionTo(target TradeStatus) bool {
	transitions := map[TradeStatus][]TradeStatus{
		TradeStatusPending:         {TradeStatusApproved},
		TradeStatusApproved:        {TradeStatusCouponGenerated},
		TradeStatusCouponGenerated: {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

var (
	ErrTradeNotAllowed  = shared.NewDomainError("TRADE_NOT_ALLOWED", "Trades can only be opened on delivered orders")
	ErrTradeNotApproved = shared.NewDomainError("TRADE_NOT_APPROVED", "Trade must be approved before a coupon can be generated")
)

// TradeRequest is a client's request to return part of a delivered order
// line. Approval restocks the returned quantity exactly once; the generated
// coupon compensates the client at the frozen line price.
type TradeRequest struct {
	shared.BaseAggregateRoot
	OrderID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	OrderLineID uuid.UUID   `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID   `gorm:"type:uuid;not null"`
	Quantity    int64       `gorm:"not null;check:quantity >= 1"`
	Status      TradeStatus `gorm:"size:30;not null;index"`
	CouponID    *uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (TradeRequest) TableName() string {
	return "trade_requests"
}

// NewTradeRequest opens a trade on a delivered order line. Quantity already
// claimed by earlier trades on the same line, whatever their status, is no
// longer eligible.
func NewTradeRequest(o *Order, lineID uuid.UUID, quantity int64, priorTrades []TradeRequest) (*TradeRequest, error) {
	if o == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if !o.IsDelivered() {
		return nil, ErrTradeNotAllowed
	}
	line, err := o.LineByID(lineID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Trade quantity must be at least 1")
	}
	eligible := EligibleTradeQuantity(*line, priorTrades)
	if quantity > eligible {
		return nil, shared.NewDomainError("QUANTITY_EXCEEDS_ELIGIBLE",
			fmt.Sprintf("Requested quantity %d exceeds the %d still eligible on this line", quantity, eligible))
	}

	return &TradeRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           o.ID,
		OrderLineID:       line.ID,
		ClientID:          o.ClientID,
		ProductID:         line.ProductID,
		Quantity:          quantity,
		Status:            TradeStatusPending,
	}, nil
}

// EligibleTradeQuantity returns how much of a line can still be traded.
// Every prior trade on the line counts against eligibility regardless of its
// status, so a pending request already blocks the quantity it claims.
func EligibleTradeQuantity(line Line, trades []TradeRequest) int64 {
	remaining := line.Quantity
	for _, tr := range trades {
		if tr.OrderLineID == line.ID {
			remaining -= tr.Quantity
		}
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Approve moves the trade to Approved. The returned flag tells the caller
// whether this call performed the transition: the stock release must happen
// only when it did, so approving twice never restocks twice.
func (t *TradeRequest) Approve() (bool, error) {
	switch t.Status {
	case TradeStatusApproved, TradeStatusCouponGenerated:
		return false, nil
	case TradeStatusPending:
		t.Status = TradeStatusApproved
		t.UpdatedAt = time.Now()
		t.IncrementVersion()
		return true, nil
	}
	return false, shared.NewDomainError("INVALID_TRADE_STATE",
		fmt.Sprintf("Cannot approve trade in status %s", t.Status))
}

// AttachCoupon records the generated refund coupon on an approved trade.
// Attaching to a trade that already carries a coupon is a no-op so repeated
// generation requests return the existing coupon.
func (t *TradeRequest) AttachCoupon(couponID uuid.UUID) error {
	if t.CouponID != nil {
		return nil
	}
	if t.Status != TradeStatusApproved {
		return ErrTradeNotApproved
	}
	if couponID == uuid.Nil {
		return shared.NewDomainError("INVALID_COUPON", "Coupon ID cannot be empty")
	}
	t.CouponID = &couponID
	t.Status = TradeStatusCouponGenerated
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// HasCoupon returns true once a refund coupon was generated for this trade
func (t *TradeRequest) HasCoupon() bool {
	return t.CouponID != nil
}

// RefundValue computes the coupon value owed for this trade from the frozen
// line price
func (t *TradeRequest) RefundValue(line Line) valueobject.Money {
	return line.UnitPriceMoney().MultiplyByInt(t.Quantity)
}
