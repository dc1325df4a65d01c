package checkout

import (
	"context"

	orderapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	domaincart "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/cart"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	domainorder "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Service runs the checkout: coupon selection against the live cart total,
// then order placement freezing the cart into an immutable snapshot. The
// stock reserved while lines sat in the cart carries over to the order, so
// placement itself never touches the ledger.
type Service struct {
	lines    domaincart.LineRepository
	products catalog.ProductRepository
	coupons  coupon.Repository
	orders   domainorder.Repository
	selector *coupon.Selector
	tx       shared.TransactionManager
}

// NewService creates a new checkout Service
func NewService(
	lines domaincart.LineRepository,
	products catalog.ProductRepository,
	coupons coupon.Repository,
	orders domainorder.Repository,
	selector *coupon.Selector,
	tx shared.TransactionManager,
) *Service {
	return &Service{
		lines:    lines,
		products: products,
		coupons:  coupons,
		orders:   orders,
		selector: selector,
		tx:       tx,
	}
}

// cartSnapshot is the consolidated cart priced at current catalog values
type cartSnapshot struct {
	total    valueobject.Money
	products map[uuid.UUID]*catalog.Product
	groups   map[uuid.UUID][]domaincart.Line
}

func (s *Service) snapshotCart(ctx context.Context, clientID uuid.UUID) (*cartSnapshot, error) {
	lines, err := s.lines.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	ids, groups := domaincart.GroupByProduct(lines)
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	total := valueobject.ZeroBRL()
	for productID, group := range groups {
		product, ok := byID[productID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found for cart line")
		}
		var qty int64
		for _, l := range group {
			qty += l.Quantity
		}
		total = total.MustAdd(product.UnitPriceMoney().MultiplyByInt(qty))
	}

	return &cartSnapshot{total: total, products: byID, groups: groups}, nil
}

// SelectCoupons computes the coupon subset for the client's current cart
// total and reserves it. Re-selection first frees any previously reserved
// coupons, so repeated calls converge on the latest choice.
func (s *Service) SelectCoupons(ctx context.Context, clientID uuid.UUID, req SelectCouponsRequest) (*SelectCouponsResponse, error) {
	var resp *SelectCouponsResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		snap, err := s.snapshotCart(ctx, clientID)
		if err != nil {
			return err
		}

		previouslyReserved, err := s.coupons.FindByClientAndStatus(ctx, clientID, coupon.StatusReserved)
		if err != nil {
			return err
		}
		for i := range previouslyReserved {
			if err := previouslyReserved[i].ReleaseToAvailable(); err != nil {
				return err
			}
			if err := s.coupons.SaveWithLock(ctx, &previouslyReserved[i]); err != nil {
				return err
			}
		}

		available, err := s.coupons.FindByClientAndStatus(ctx, clientID, coupon.StatusAvailable)
		if err != nil {
			return err
		}

		var pinned []coupon.Coupon
		if req.CouponCode != "" {
			c, err := s.coupons.FindByCode(ctx, req.CouponCode)
			if err != nil {
				return err
			}
			if c.ClientID != clientID {
				return shared.ErrNotFound
			}
			if !c.IsAvailable() {
				return coupon.ErrCouponAlreadyUsed
			}
			pinned = []coupon.Coupon{*c}
		}

		sel, err := s.selector.Select(snap.total, available, pinned)
		if err != nil {
			return err
		}

		out := &SelectCouponsResponse{
			Coupons:    make([]CouponSummary, 0, len(sel.Coupons)),
			OrderTotal: snap.total.Amount(),
			Discount:   sel.Total.Amount(),
			Remainder:  sel.Remainder.Amount(),
			Change:     sel.Change.Amount(),
			Exact:      sel.Exact,
		}
		for i := range sel.Coupons {
			c := sel.Coupons[i]
			if err := c.Reserve(); err != nil {
				return err
			}
			if err := s.coupons.SaveWithLock(ctx, &c); err != nil {
				return err
			}
			out.Coupons = append(out.Coupons, ToCouponSummary(&c))
		}
		resp = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// PlaceOrder freezes the consolidated cart into an order, consumes the
// reserved coupons and deletes the cart lines. Stock is not released: the
// order inherits the cart's reservation.
func (s *Service) PlaceOrder(ctx context.Context, clientID uuid.UUID) (*orderapp.OrderResponse, error) {
	var resp *orderapp.OrderResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		snap, err := s.snapshotCart(ctx, clientID)
		if err != nil {
			return err
		}

		orderLines := make([]domainorder.Line, 0, len(snap.groups))
		for productID, group := range snap.groups {
			product := snap.products[productID]
			var qty int64
			for _, l := range group {
				qty += l.Quantity
			}
			line, err := domainorder.NewLine(productID, product.Title, product.UnitPriceMoney(), qty)
			if err != nil {
				return err
			}
			orderLines = append(orderLines, *line)
		}

		o, err := domainorder.NewOrder(clientID, orderLines)
		if err != nil {
			return err
		}

		reserved, err := s.coupons.FindByClientAndStatus(ctx, clientID, coupon.StatusReserved)
		if err != nil {
			return err
		}
		if len(reserved) > 0 {
			discount := valueobject.ZeroBRL()
			couponIDs := make([]uuid.UUID, 0, len(reserved))
			for i := range reserved {
				if err := reserved[i].Consume(); err != nil {
					return err
				}
				if err := s.coupons.SaveWithLock(ctx, &reserved[i]); err != nil {
					return err
				}
				discount = discount.MustAdd(reserved[i].ValueMoney())
				couponIDs = append(couponIDs, reserved[i].ID)
			}

			remainder := valueobject.ZeroBRL()
			change := valueobject.ZeroBRL()
			diff := snap.total.MustSubtract(discount)
			if diff.IsPositive() {
				remainder = diff
			} else if diff.IsNegative() {
				change = diff.Abs()
			}
			if err := o.ApplyDiscount(couponIDs, discount, remainder, change); err != nil {
				return err
			}
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		if err := s.lines.DeleteByClient(ctx, clientID); err != nil {
			return err
		}

		r := orderapp.ToOrderResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
