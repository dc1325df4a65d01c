package checkout

import (
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectCouponsRequest asks for a coupon selection against the current cart
// total. CouponCode optionally forces one coupon into the selection.
type SelectCouponsRequest struct {
	CouponCode string `json:"coupon_code"`
}

// CouponSummary represents one selected coupon
type CouponSummary struct {
	ID    uuid.UUID       `json:"id"`
	Code  string          `json:"code"`
	Value decimal.Decimal `json:"value"`
	Kind  coupon.Kind     `json:"kind"`
}

// SelectCouponsResponse represents the chosen coupon set and the resulting
// amounts: Remainder is still payable by card, Change is owed back.
type SelectCouponsResponse struct {
	Coupons    []CouponSummary `json:"coupons"`
	OrderTotal decimal.Decimal `json:"order_total"`
	Discount   decimal.Decimal `json:"discount"`
	Remainder  decimal.Decimal `json:"remainder"`
	Change     decimal.Decimal `json:"change"`
	Exact      bool            `json:"exact"`
}

// ToCouponSummary converts a coupon to its summary form
func ToCouponSummary(c *coupon.Coupon) CouponSummary {
	return CouponSummary{
		ID:    c.ID,
		Code:  c.Code,
		Value: c.Value,
		Kind:  c.Kind,
	}
}
