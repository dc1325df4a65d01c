package order

import (
	"context"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	domainorder "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]domainorder.Order
}

func newFakeOrderRepo(orders ...*domainorder.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uuid.UUID]domainorder.Order)}
	for _, o := range orders {
		r.orders[o.ID] = *o
	}
	return r
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domainorder.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) FindByClient(_ context.Context, clientID uuid.UUID, _ shared.Filter) ([]domainorder.Order, error) {
	var out []domainorder.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]domainorder.Order, error) {
	var out []domainorder.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o *domainorder.Order) error {
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) SaveWithLock(_ context.Context, o *domainorder.Order) error {
	stored, ok := r.orders[o.ID]
	if !ok || stored.Version != o.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.orders[o.ID] = *o
	return nil
}

type fakeTradeRepo struct {
	trades map[uuid.UUID]domainorder.TradeRequest
}

func newFakeTradeRepo() *fakeTradeRepo {
	return &fakeTradeRepo{trades: make(map[uuid.UUID]domainorder.TradeRequest)}
}

func (r *fakeTradeRepo) FindByID(_ context.Context, id uuid.UUID) (*domainorder.TradeRequest, error) {
	t, ok := r.trades[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTradeRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]domainorder.TradeRequest, error) {
	var out []domainorder.TradeRequest
	for _, t := range r.trades {
		if t.OrderID == orderID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTradeRepo) FindByOrderLine(_ context.Context, orderLineID uuid.UUID) ([]domainorder.TradeRequest, error) {
	var out []domainorder.TradeRequest
	for _, t := range r.trades {
		if t.OrderLineID == orderLineID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTradeRepo) FindByClient(_ context.Context, clientID uuid.UUID, _ shared.Filter) ([]domainorder.TradeRequest, error) {
	var out []domainorder.TradeRequest
	for _, t := range r.trades {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTradeRepo) Save(_ context.Context, t *domainorder.TradeRequest) error {
	r.trades[t.ID] = *t
	return nil
}

func (r *fakeTradeRepo) SaveWithLock(_ context.Context, t *domainorder.TradeRequest) error {
	stored, ok := r.trades[t.ID]
	if !ok || stored.Version != t.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.trades[t.ID] = *t
	return nil
}

type fakeCouponRepo struct {
	coupons map[uuid.UUID]coupon.Coupon
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[uuid.UUID]coupon.Coupon)}
}

func (r *fakeCouponRepo) FindByID(_ context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	c, ok := r.coupons[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCouponRepo) FindByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	for _, c := range r.coupons {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCouponRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]coupon.Coupon, error) {
	var out []coupon.Coupon
	for _, id := range ids {
		if c, ok := r.coupons[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) FindByClient(_ context.Context, clientID uuid.UUID) ([]coupon.Coupon, error) {
	var out []coupon.Coupon
	for _, c := range r.coupons {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) FindByClientAndStatus(_ context.Context, clientID uuid.UUID, status coupon.Status) ([]coupon.Coupon, error) {
	var out []coupon.Coupon
	for _, c := range r.coupons {
		if c.ClientID == clientID && c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) FindByTradeRequest(_ context.Context, tradeRequestID uuid.UUID) (*coupon.Coupon, error) {
	for _, c := range r.coupons {
		if c.TradeRequestID != nil && *c.TradeRequestID == tradeRequestID {
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCouponRepo) Save(_ context.Context, c *coupon.Coupon) error {
	r.coupons[c.ID] = *c
	return nil
}

func (r *fakeCouponRepo) SaveWithLock(_ context.Context, c *coupon.Coupon) error {
	stored, ok := r.coupons[c.ID]
	if !ok || stored.Version != c.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.coupons[c.ID] = *c
	return nil
}

type fakeLedger struct {
	stock    map[uuid.UUID]int64
	releases map[uuid.UUID]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{stock: make(map[uuid.UUID]int64), releases: make(map[uuid.UUID]int)}
}

func (l *fakeLedger) Reserve(_ context.Context, productID uuid.UUID, quantity int64) error {
	if l.stock[productID] < quantity {
		return shared.ErrInsufficientStock
	}
	l.stock[productID] -= quantity
	return nil
}

func (l *fakeLedger) Release(_ context.Context, productID uuid.UUID, quantity int64) error {
	l.stock[productID] += quantity
	l.releases[productID]++
	return nil
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
