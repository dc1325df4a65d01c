package order

import (
	"context"
	"strings"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	domainorder "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// Service drives the order and trade lifecycle. Status transitions never
// touch the stock ledger except trade approval, which restocks the returned
// quantity exactly once.
type Service struct {
	orders  domainorder.Repository
	trades  domainorder.TradeRepository
	coupons coupon.Repository
	ledger  catalog.StockLedger
	tx      shared.TransactionManager
}

// NewService creates a new order Service
func NewService(
	orders domainorder.Repository,
	trades domainorder.TradeRepository,
	coupons coupon.Repository,
	ledger catalog.StockLedger,
	tx shared.TransactionManager,
) *Service {
	return &Service{
		orders:  orders,
		trades:  trades,
		coupons: coupons,
		ledger:  ledger,
		tx:      tx,
	}
}

// GetByID retrieves an order
func (s *Service) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListByClient retrieves a client's orders
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orders.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out, nil
}

// AdvanceStatus moves an order one step forward along its lifecycle
func (s *Service) AdvanceStatus(ctx context.Context, orderID uuid.UUID, req AdvanceStatusRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Advance(req.Status); err != nil {
		return nil, err
	}
	if err := s.orders.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// RequestTrade opens a trade on a delivered order line owned by the client
func (s *Service) RequestTrade(ctx context.Context, clientID uuid.UUID, req RequestTradeRequest) (*TradeResponse, error) {
	o, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.ClientID != clientID {
		return nil, shared.ErrNotFound
	}

	prior, err := s.trades.FindByOrderLine(ctx, req.OrderLineID)
	if err != nil {
		return nil, err
	}

	tr, err := domainorder.NewTradeRequest(o, req.OrderLineID, req.Quantity, prior)
	if err != nil {
		return nil, err
	}
	if err := s.trades.Save(ctx, tr); err != nil {
		return nil, err
	}
	resp := ToTradeResponse(tr)
	return &resp, nil
}

// GetTrade retrieves a trade request
func (s *Service) GetTrade(ctx context.Context, tradeID uuid.UUID) (*TradeResponse, error) {
	tr, err := s.trades.FindByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	resp := ToTradeResponse(tr)
	return &resp, nil
}

// ListTradesByClient retrieves a client's trade requests
func (s *Service) ListTradesByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]TradeResponse, error) {
	trades, err := s.trades.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]TradeResponse, 0, len(trades))
	for i := range trades {
		out = append(out, ToTradeResponse(&trades[i]))
	}
	return out, nil
}

// ListCouponsByClient retrieves every coupon a client holds
func (s *Service) ListCouponsByClient(ctx context.Context, clientID uuid.UUID) ([]CouponResponse, error) {
	held, err := s.coupons.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]CouponResponse, 0, len(held))
	for i := range held {
		out = append(out, ToCouponResponse(&held[i]))
	}
	return out, nil
}

// ApproveTrade approves a pending trade and restocks the returned quantity.
// Approving an already-approved trade is a no-op: the lock-checked save runs
// inside the same transaction as the release, so the restock happens at most
// once even under concurrent approvals.
func (s *Service) ApproveTrade(ctx context.Context, tradeID uuid.UUID) (*TradeResponse, error) {
	var resp *TradeResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		tr, err := s.trades.FindByID(ctx, tradeID)
		if err != nil {
			return err
		}

		transitioned, err := tr.Approve()
		if err != nil {
			return err
		}
		if transitioned {
			if err := s.trades.SaveWithLock(ctx, tr); err != nil {
				return err
			}
			if err := s.ledger.Release(ctx, tr.ProductID, tr.Quantity); err != nil {
				return err
			}
		}

		r := ToTradeResponse(tr)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GenerateTradeCoupon mints the refund coupon for an approved trade, valued
// at the frozen line price times the traded quantity. Calling it again
// returns the existing coupon.
func (s *Service) GenerateTradeCoupon(ctx context.Context, tradeID uuid.UUID) (*CouponResponse, error) {
	var resp *CouponResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		tr, err := s.trades.FindByID(ctx, tradeID)
		if err != nil {
			return err
		}

		if tr.HasCoupon() {
			existing, err := s.coupons.FindByID(ctx, *tr.CouponID)
			if err != nil {
				return err
			}
			r := ToCouponResponse(existing)
			resp = &r
			return nil
		}
		if tr.Status != domainorder.TradeStatusApproved {
			return domainorder.ErrTradeNotApproved
		}

		o, err := s.orders.FindByID(ctx, tr.OrderID)
		if err != nil {
			return err
		}
		line, err := o.LineByID(tr.OrderLineID)
		if err != nil {
			return err
		}

		c, err := coupon.NewTradeRefundCoupon(newTradeCouponCode(), tr.RefundValue(*line), tr.ClientID, tr.ID)
		if err != nil {
			return err
		}
		if err := s.coupons.Save(ctx, c); err != nil {
			return err
		}
		if err := tr.AttachCoupon(c.ID); err != nil {
			return err
		}
		if err := s.trades.SaveWithLock(ctx, tr); err != nil {
			return err
		}

		r := ToCouponResponse(c)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func newTradeCouponCode() string {
	return "TRC-" + strings.ToUpper(uuid.NewString()[:8])
}
