package cart

import (
	"context"
	"sync"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	domaincart "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/cart"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// In-memory fakes backing the service tests. They emulate the optimistic
// lock check the real repositories perform so version discipline bugs
// surface here instead of in integration tests.

type fakeLineRepo struct {
	mu          sync.Mutex
	lines       map[uuid.UUID]domaincart.Line
	failLockN   int
	lockFailers int
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{lines: make(map[uuid.UUID]domaincart.Line)}
}

func (r *fakeLineRepo) seed(line domaincart.Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[line.ID] = line
}

func (r *fakeLineRepo) FindByClient(_ context.Context, clientID uuid.UUID) ([]domaincart.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domaincart.Line
	for _, l := range r.lines {
		if l.ClientID == clientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) FindByClientAndProduct(_ context.Context, clientID, productID uuid.UUID) ([]domaincart.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domaincart.Line
	for _, l := range r.lines {
		if l.ClientID == clientID && l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) Save(_ context.Context, line *domaincart.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) SaveWithLock(_ context.Context, line *domaincart.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLockN > 0 {
		r.failLockN--
		r.lockFailers++
		return shared.ErrConcurrencyConflict
	}
	stored, ok := r.lines[line.ID]
	if !ok || stored.Version != line.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, id)
	return nil
}

func (r *fakeLineRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.lines, id)
	}
	return nil
}

func (r *fakeLineRepo) DeleteByClient(_ context.Context, clientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

type fakeLedger struct {
	mu       sync.Mutex
	stock    map[uuid.UUID]int64
	reserves map[uuid.UUID]int
	releases map[uuid.UUID]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		stock:    make(map[uuid.UUID]int64),
		reserves: make(map[uuid.UUID]int),
		releases: make(map[uuid.UUID]int),
	}
}

func (l *fakeLedger) Reserve(_ context.Context, productID uuid.UUID, quantity int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stock[productID] < quantity {
		return shared.ErrInsufficientStock
	}
	l.stock[productID] -= quantity
	l.reserves[productID]++
	return nil
}

func (l *fakeLedger) Release(_ context.Context, productID uuid.UUID, quantity int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stock[productID] += quantity
	l.releases[productID]++
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

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
