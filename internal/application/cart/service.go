package cart

import (
	"context"
	"errors"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	domaincart "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/cart"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles cart operations. Every read and write path consolidates
// duplicate lines for a product before acting, so a pre-existing anomaly is
// repaired by whichever operation observes it first.
type Service struct {
	lines    domaincart.LineRepository
	products catalog.ProductRepository
	ledger   catalog.StockLedger
	coupons  coupon.Repository
	tx       shared.TransactionManager
}

// NewService creates a new cart Service
func NewService(
	lines domaincart.LineRepository,
	products catalog.ProductRepository,
	ledger catalog.StockLedger,
	coupons coupon.Repository,
	tx shared.TransactionManager,
) *Service {
	return &Service{
		lines:    lines,
		products: products,
		ledger:   ledger,
		coupons:  coupons,
		tx:       tx,
	}
}

// withConflictRetry reruns the unit of work once after an optimistic-lock
// conflict; the second conflict surfaces to the caller.
func withConflictRetry(fn func() error) error {
	err := fn()
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		return fn()
	}
	return err
}

// AddItem reserves stock for the requested quantity and adds it to the
// client's line for the product, creating the line on first add. It returns
// the updated cart with its recomputed total.
func (s *Service) AddItem(ctx context.Context, clientID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available for sale")
	}

	err = withConflictRetry(func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			if err := s.ledger.Reserve(ctx, req.ProductID, req.Quantity); err != nil {
				return err
			}

			existing, err := s.lines.FindByClientAndProduct(ctx, clientID, req.ProductID)
			if err != nil {
				return err
			}

			var line *domaincart.Line
			if len(existing) == 0 {
				line, err = domaincart.NewLine(clientID, req.ProductID, req.Quantity)
				if err != nil {
					return err
				}
				if err := s.lines.Save(ctx, line); err != nil {
					return err
				}
			} else {
				line, err = s.repairGroup(ctx, existing)
				if err != nil {
					return err
				}
				if err := line.IncreaseQuantity(req.Quantity); err != nil {
					return err
				}
				if err := s.lines.SaveWithLock(ctx, line); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, clientID)
}

// UpdateQuantity sets the consolidated quantity for a product, reserving or
// releasing the stock difference. A failed reservation leaves the cart
// untouched. It returns the updated cart with its recomputed total.
func (s *Service) UpdateQuantity(ctx context.Context, clientID uuid.UUID, req UpdateQuantityRequest) (*CartResponse, error) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	err := withConflictRetry(func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			existing, err := s.lines.FindByClientAndProduct(ctx, clientID, req.ProductID)
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				return shared.NewDomainError("NOT_FOUND", "Cart line not found for product")
			}

			var currentTotal int64
			for _, l := range existing {
				currentTotal += l.Quantity
			}

			delta := req.TargetQuantity - currentTotal
			if delta > 0 {
				if err := s.ledger.Reserve(ctx, req.ProductID, delta); err != nil {
					return err
				}
			} else if delta < 0 {
				if err := s.ledger.Release(ctx, req.ProductID, -delta); err != nil {
					return err
				}
			}

			line, err := s.repairGroup(ctx, existing)
			if err != nil {
				return err
			}
			if err := line.SetQuantity(req.TargetQuantity); err != nil {
				return err
			}
			if err := s.lines.SaveWithLock(ctx, line); err != nil {
				return err
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, clientID)
}

// RemoveItem deletes the client's line(s) for a product and releases the
// summed quantity back to stock. It returns the updated cart with its
// recomputed total.
func (s *Service) RemoveItem(ctx context.Context, clientID uuid.UUID, req RemoveItemRequest) (*CartResponse, error) {
	err := withConflictRetry(func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			existing, err := s.lines.FindByClientAndProduct(ctx, clientID, req.ProductID)
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				return shared.NewDomainError("NOT_FOUND", "Cart line not found for product")
			}

			var currentTotal int64
			ids := make([]uuid.UUID, 0, len(existing))
			for _, l := range existing {
				currentTotal += l.Quantity
				ids = append(ids, l.ID)
			}

			if err := s.lines.DeleteByIDs(ctx, ids); err != nil {
				return err
			}
			return s.ledger.Release(ctx, req.ProductID, currentTotal)
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, clientID)
}

// EmptyCart releases every line's stock, deletes all lines and returns the
// client's reserved coupons to circulation, as one atomic unit of work.
func (s *Service) EmptyCart(ctx context.Context, clientID uuid.UUID) error {
	return withConflictRetry(func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			lines, err := s.lines.FindByClient(ctx, clientID)
			if err != nil {
				return err
			}

			order, groups := domaincart.GroupByProduct(lines)
			for _, productID := range order {
				var total int64
				for _, l := range groups[productID] {
					total += l.Quantity
				}
				if err := s.ledger.Release(ctx, productID, total); err != nil {
					return err
				}
			}

			if err := s.lines.DeleteByClient(ctx, clientID); err != nil {
				return err
			}

			reserved, err := s.coupons.FindByClientAndStatus(ctx, clientID, coupon.StatusReserved)
			if err != nil {
				return err
			}
			for i := range reserved {
				if err := reserved[i].ReleaseToAvailable(); err != nil {
					return err
				}
				if err := s.coupons.SaveWithLock(ctx, &reserved[i]); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// GetCart returns the client's consolidated cart with its recomputed total,
// repairing any duplicate lines it finds along the way
func (s *Service) GetCart(ctx context.Context, clientID uuid.UUID) (*CartResponse, error) {
	var resp *CartResponse
	err := withConflictRetry(func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			lines, err := s.lines.FindByClient(ctx, clientID)
			if err != nil {
				return err
			}

			productIDs, groups := domaincart.GroupByProduct(lines)
			consolidated := make([]*domaincart.Line, 0, len(productIDs))
			for _, productID := range productIDs {
				line, err := s.repairGroup(ctx, groups[productID])
				if err != nil {
					return err
				}
				consolidated = append(consolidated, line)
			}

			products, err := s.products.FindByIDs(ctx, productIDs)
			if err != nil {
				return err
			}
			byID := make(map[uuid.UUID]*catalog.Product, len(products))
			for i := range products {
				byID[products[i].ID] = &products[i]
			}

			out := &CartResponse{
				ClientID: clientID,
				Lines:    make([]LineResponse, 0, len(consolidated)),
				Total:    decimal.Zero,
			}
			for _, line := range consolidated {
				product, ok := byID[line.ProductID]
				if !ok {
					return shared.NewDomainError("NOT_FOUND", "Product not found for cart line")
				}
				lr := ToLineResponse(line, product)
				out.Lines = append(out.Lines, lr)
				out.Total = out.Total.Add(lr.LineTotal)
			}
			resp = out
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Total recomputes the priced total of the client's consolidated cart
func (s *Service) Total(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	resp, err := s.GetCart(ctx, clientID)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.Total, nil
}

// repairGroup collapses duplicate lines for one product into the surviving
// line, persisting the repair. Stock is untouched: the survivor carries the
// group's summed quantity.
func (s *Service) repairGroup(ctx context.Context, group []domaincart.Line) (*domaincart.Line, error) {
	result, err := domaincart.Consolidate(group)
	if err != nil {
		return nil, err
	}
	if result.IsNoop() {
		return &result.Surviving, nil
	}

	if err := s.lines.DeleteByIDs(ctx, result.Surplus); err != nil {
		return nil, err
	}
	survivor := result.Surviving
	survivor.IncrementVersion()
	if err := s.lines.SaveWithLock(ctx, &survivor); err != nil {
		return nil, err
	}
	return &survivor, nil
}
