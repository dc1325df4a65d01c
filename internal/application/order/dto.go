package order

import (
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	domainorder "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvanceStatusRequest represents a request to move an order forward
type AdvanceStatusRequest struct {
	Status domainorder.Status `json:"status" binding:"required,orderstatus"`
}

// RequestTradeRequest represents a client's request to return part of a line
type RequestTradeRequest struct {
	OrderID     uuid.UUID `json:"order_id" binding:"required"`
	OrderLineID uuid.UUID `json:"order_line_id" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"required,min=1"`
}

// LineResponse represents a frozen order line
type LineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order with its frozen snapshot and amounts
type OrderResponse struct {
	ID             uuid.UUID          `json:"id"`
	ClientID       uuid.UUID          `json:"client_id"`
	Status         domainorder.Status `json:"status"`
	Lines          []LineResponse     `json:"lines"`
	CouponIDs      []uuid.UUID        `json:"coupon_ids"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	CardAmount     decimal.Decimal    `json:"card_amount"`
	ChangeAmount   decimal.Decimal    `json:"change_amount"`
	CreatedAt      time.Time          `json:"created_at"`
}

// TradeResponse represents a trade request
type TradeResponse struct {
	ID          uuid.UUID               `json:"id"`
	OrderID     uuid.UUID               `json:"order_id"`
	OrderLineID uuid.UUID               `json:"order_line_id"`
	ProductID   uuid.UUID               `json:"product_id"`
	Quantity    int64                   `json:"quantity"`
	Status      domainorder.TradeStatus `json:"status"`
	CouponID    *uuid.UUID              `json:"coupon_id,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// CouponResponse represents a coupon generated for an approved trade
type CouponResponse struct {
	ID       uuid.UUID       `json:"id"`
	Code     string          `json:"code"`
	Value    decimal.Decimal `json:"value"`
	Kind     coupon.Kind     `json:"kind"`
	Status   coupon.Status   `json:"status"`
	ClientID uuid.UUID       `json:"client_id"`
}

// ToOrderResponse converts an order aggregate to its response form
func ToOrderResponse(o *domainorder.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		ClientID:       o.ClientID,
		Status:         o.Status,
		Lines:          make([]LineResponse, 0, len(o.Lines)),
		CouponIDs:      make([]uuid.UUID, 0, len(o.AppliedCoupons)),
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		CardAmount:     o.CardAmount,
		ChangeAmount:   o.ChangeAmount,
		CreatedAt:      o.CreatedAt,
	}
	for i := range o.Lines {
		line := &o.Lines[i]
		resp.Lines = append(resp.Lines, LineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.Total().Amount(),
		})
	}
	for _, ac := range o.AppliedCoupons {
		resp.CouponIDs = append(resp.CouponIDs, ac.CouponID)
	}
	return resp
}

// ToTradeResponse converts a trade request to its response form
func ToTradeResponse(t *domainorder.TradeRequest) TradeResponse {
	return TradeResponse{
		ID:          t.ID,
		OrderID:     t.OrderID,
		OrderLineID: t.OrderLineID,
		ProductID:   t.ProductID,
		Quantity:    t.Quantity,
		Status:      t.Status,
		CouponID:    t.CouponID,
		CreatedAt:   t.CreatedAt,
	}
}

// ToCouponResponse converts a coupon to its response form
func ToCouponResponse(c *coupon.Coupon) CouponResponse {
	return CouponResponse{
		ID:       c.ID,
		Code:     c.Code,
		Value:    c.Value,
		Kind:     c.Kind,
		Status:   c.Status,
		ClientID: c.ClientID,
	}
}
