package coupon

import (
	"fmt"
	"testing"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoupon(t *testing.T, code string, value float64, kind Kind) Coupon {
	t.Helper()
	c, err := NewCoupon(code, valueobject.NewMoneyBRLFromFloat(value), kind, uuid.New())
	require.NoError(t, err)
	return *c
}

func codesOf(sel Selection) []string {
	codes := make([]string, 0, len(sel.Coupons))
	for _, c := range sel.Coupons {
		codes = append(codes, c.Code)
	}
	return codes
}

func TestSelector_DocumentedOutcomes(t *testing.T) {
	selector, err := NewSelector(PolicyPreferPromotional)
	require.NoError(t, err)

	t.Run("no exact match prefers the promotional coupon", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "A", 20, KindTradeRefund),
			testCoupon(t, "B", 40, KindTradeRefund),
			testCoupon(t, "C", 35, KindPromotional),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"C"}, codesOf(sel))
		assert.False(t, sel.Exact)
		assert.Equal(t, "15.00", sel.Remainder.StringFixed(2))
		assert.True(t, sel.Change.IsZero())
	})

	t.Run("exact match wins and spares the promotional coupon", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "D", 30, KindTradeRefund),
			testCoupon(t, "E", 50, KindTradeRefund),
			testCoupon(t, "F", 25, KindPromotional),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(80), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"D", "E"}, codesOf(sel))
		assert.True(t, sel.Exact)
		assert.True(t, sel.Remainder.IsZero())
		assert.True(t, sel.Change.IsZero())
	})

	t.Run("combines promotional with trade refund under the total", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "G", 60, KindTradeRefund),
			testCoupon(t, "H", 45, KindTradeRefund),
			testCoupon(t, "I", 30, KindPromotional),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(100), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"G", "I"}, codesOf(sel))
		assert.Equal(t, "90.00", sel.Total.StringFixed(2))
		assert.Equal(t, "10.00", sel.Remainder.StringFixed(2))
	})

	t.Run("rejects two pinned promotional coupons", func(t *testing.T) {
		pinned := []Coupon{
			testCoupon(t, "P1", 10, KindPromotional),
			testCoupon(t, "P2", 15, KindPromotional),
		}

		_, err := selector.Select(valueobject.NewMoneyBRLFromFloat(100), nil, pinned)
		assert.ErrorIs(t, err, ErrPromotionalLimitExceeded)
	})
}

func TestSelector_ExactMatch(t *testing.T) {
	selector, err := NewSelector(PolicyPreferPromotional)
	require.NoError(t, err)

	t.Run("prefers fewest coupons", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "A", 50, KindTradeRefund),
			testCoupon(t, "B", 30, KindTradeRefund),
			testCoupon(t, "C", 20, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A"}, codesOf(sel))
		assert.True(t, sel.Exact)
	})

	t.Run("handles fractional cent values", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "A", 19.99, KindTradeRefund),
			testCoupon(t, "B", 30.01, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A", "B"}, codesOf(sel))
		assert.True(t, sel.Exact)
	})

	t.Run("never selects two promotional coupons", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "P1", 30, KindPromotional),
			testCoupon(t, "P2", 20, KindPromotional),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.Len(t, sel.Coupons, 1)
		assert.False(t, sel.Exact)
	})
}

func TestSelector_Pinned(t *testing.T) {
	selector, err := NewSelector(PolicyPreferPromotional)
	require.NoError(t, err)

	t.Run("pinned coupon is always in the selection", func(t *testing.T) {
		pinnedCoupon := testCoupon(t, "PIN", 10, KindTradeRefund)
		coupons := []Coupon{
			pinnedCoupon,
			testCoupon(t, "A", 40, KindTradeRefund),
			testCoupon(t, "B", 50, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, []Coupon{pinnedCoupon})
		require.NoError(t, err)
		assert.Contains(t, codesOf(sel), "PIN")
		assert.ElementsMatch(t, []string{"PIN", "A"}, codesOf(sel))
		assert.True(t, sel.Exact)
	})

	t.Run("pinned promotional excludes other promotionals", func(t *testing.T) {
		pinnedCoupon := testCoupon(t, "PIN", 10, KindPromotional)
		coupons := []Coupon{
			testCoupon(t, "P", 40, KindPromotional),
			testCoupon(t, "T", 25, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, []Coupon{pinnedCoupon})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"PIN", "T"}, codesOf(sel))
	})

	t.Run("pinned coupon exceeding the total produces change", func(t *testing.T) {
		pinnedCoupon := testCoupon(t, "PIN", 80, KindTradeRefund)

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), nil, []Coupon{pinnedCoupon})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"PIN"}, codesOf(sel))
		assert.Equal(t, "30.00", sel.Change.StringFixed(2))
		assert.True(t, sel.Remainder.IsZero())
	})

	t.Run("rejects a reserved pinned coupon", func(t *testing.T) {
		pinnedCoupon := testCoupon(t, "PIN", 10, KindTradeRefund)
		require.NoError(t, pinnedCoupon.Reserve())

		_, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), nil, []Coupon{pinnedCoupon})
		assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
	})
}

func TestSelector_MinimizeDeviation(t *testing.T) {
	selector, err := NewSelector(PolicyMinimizeDeviation)
	require.NoError(t, err)

	t.Run("overshoots when strictly closer", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "A", 30, KindTradeRefund),
			testCoupon(t, "B", 52, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"B"}, codesOf(sel))
		assert.Equal(t, "2.00", sel.Change.StringFixed(2))
	})

	t.Run("tie goes to not owing change", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "UNDER", 45, KindTradeRefund),
			testCoupon(t, "OVER", 55, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"UNDER"}, codesOf(sel))
		assert.Equal(t, "5.00", sel.Remainder.StringFixed(2))
	})

	t.Run("keeps an empty selection over a farther overshoot", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "BIG", 200, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.Empty(t, sel.Coupons)
		assert.False(t, sel.Exact)
		assert.Equal(t, "50.00", sel.Remainder.StringFixed(2))
		assert.True(t, sel.Change.IsZero())
	})

	t.Run("picks closest subset over promotional preference", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "A", 20, KindTradeRefund),
			testCoupon(t, "B", 40, KindTradeRefund),
			testCoupon(t, "C", 35, KindPromotional),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A", "C"}, codesOf(sel))
		assert.Equal(t, "5.00", sel.Change.StringFixed(2))
	})
}

func TestSelector_EdgeCases(t *testing.T) {
	selector, err := NewSelector(PolicyPreferPromotional)
	require.NoError(t, err)

	t.Run("no coupons yields an empty selection", func(t *testing.T) {
		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), nil, nil)
		require.NoError(t, err)
		assert.Empty(t, sel.Coupons)
		assert.Equal(t, "50.00", sel.Remainder.StringFixed(2))
	})

	t.Run("all coupons above the total yields an empty selection", func(t *testing.T) {
		coupons := []Coupon{
			testCoupon(t, "BIG", 200, KindTradeRefund),
		}

		sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), coupons, nil)
		require.NoError(t, err)
		assert.Empty(t, sel.Coupons)
	})

	t.Run("rejects a non-positive target", func(t *testing.T) {
		_, err := selector.Select(valueobject.ZeroBRL(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects reserved coupons in the pool", func(t *testing.T) {
		c := testCoupon(t, "R", 10, KindTradeRefund)
		require.NoError(t, c.Reserve())

		_, err := selector.Select(valueobject.NewMoneyBRLFromFloat(50), []Coupon{c}, nil)
		assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
	})

	t.Run("rejects an unknown policy", func(t *testing.T) {
		_, err := NewSelector(Policy("CHEAPEST"))
		assert.Error(t, err)
	})
}

func TestSelector_GreedyFallback(t *testing.T) {
	selector, err := NewSelector(PolicyPreferPromotional)
	require.NoError(t, err)

	// A target this large pushes the DP past its work budget.
	coupons := []Coupon{
		testCoupon(t, "T1", 400_000, KindTradeRefund),
		testCoupon(t, "T2", 150_000, KindTradeRefund),
		testCoupon(t, "P", 50_000, KindPromotional),
	}

	sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(600_000), coupons, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"T1", "T2", "P"}, codesOf(sel))
	assert.True(t, sel.Exact)
}

func TestSelector_ManyCoupons(t *testing.T) {
	selector, err := NewSelector(PolicyPreferPromotional)
	require.NoError(t, err)

	coupons := make([]Coupon, 0, 40)
	for i := 0; i < 40; i++ {
		coupons = append(coupons, testCoupon(t, fmt.Sprintf("T%d", i), float64(i%7+1), KindTradeRefund))
	}

	sel, err := selector.Select(valueobject.NewMoneyBRLFromFloat(37), coupons, nil)
	require.NoError(t, err)
	assert.True(t, sel.Exact)
	assert.Equal(t, "37.00", sel.Total.StringFixed(2))
}
