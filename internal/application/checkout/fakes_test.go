package checkout

import (
	"context"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	domaincart "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/cart"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	domainorder "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

type fakeLineRepo struct {
	lines map[uuid.UUID]domaincart.Line
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{lines: make(map[uuid.UUID]domaincart.Line)}
}

func (r *fakeLineRepo) seed(line domaincart.Line) {
	r.lines[line.ID] = line
}

func (r *fakeLineRepo) FindByClient(_ context.Context, clientID uuid.UUID) ([]domaincart.Line, error) {
	var out []domaincart.Line
	for _, l := range r.lines {
		if l.ClientID == clientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) FindByClientAndProduct(_ context.Context, clientID, productID uuid.UUID) ([]domaincart.Line, error) {
	var out []domaincart.Line
	for _, l := range r.lines {
		if l.ClientID == clientID && l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) Save(_ context.Context, line *domaincart.Line) error {
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) SaveWithLock(_ context.Context, line *domaincart.Line) error {
	stored, ok := r.lines[line.ID]
	if !ok || stored.Version != line.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.lines, id)
	return nil
}

func (r *fakeLineRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.lines, id)
	}
	return nil
}

func (r *fakeLineRepo) DeleteByClient(_ context.Context, clientID uuid.UUID) error {
	for id, l := range r.lines {
		if l.ClientID == clientID {
			delete(r.lines, id)
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]catalog.Product
}

func newFakeProductRepo(products ...*catalog.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]catalog.Product)}
	for _, p := range products {
		r.products[p.ID] = *p
	}
	return r
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = *p
	return nil
}

type fakeCouponRepo struct {
	coupons map[uuid.UUID]coupon.Coupon
}

func newFakeCouponRepo(coupons ...*coupon.Coupon) *fakeCouponRepo {
	r := &fakeCouponRepo{coupons: make(map[uuid.UUID]coupon.Coupon)}
	for _, c := range coupons {
		r.coupons[c.ID] = *c
	}
	return r
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

type fakeOrderRepo struct {
	orders map[uuid.UUID]domainorder.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]domainorder.Order)}
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

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
